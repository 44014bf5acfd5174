package simplequery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnstrust/dnstrust/record"
	"github.com/dnstrust/dnstrust/report"
	"github.com/dnstrust/dnstrust/selector"
)

type fakeQuerier struct {
	failTypes map[record.Type]error
}

func (f *fakeQuerier) Query(_ context.Context, _ string, rdtype record.Type, _ bool, _ selector.Resolver) (record.RRSet, error) {
	if err, ok := f.failTypes[rdtype]; ok {
		return record.RRSet{}, err
	}

	return record.RRSet{Type: rdtype, Records: []record.Record{record.NewA("example.", nil)}}, nil
}

func TestRunProducesOneTestCasePerResolver(t *testing.T) {
	q := &fakeQuerier{failTypes: map[record.Type]error{}}

	cases, err := Run(context.Background(), q, "example.")
	require.NoError(t, err)
	assert.Len(t, cases, len(Resolvers()))

	for _, tc := range cases {
		assert.Equal(t, report.StatusSuccess, tc.Status)
		assert.Len(t, tc.Steps, len(Types))
	}
}

func TestRunAggregatesPerResolverFailures(t *testing.T) {
	boom := errors.New("boom")
	q := &fakeQuerier{failTypes: map[record.Type]error{record.TypeAAAA: boom}}

	cases, err := Run(context.Background(), q, "example.")
	require.Error(t, err)
	assert.Len(t, cases, len(Resolvers()))

	for _, tc := range cases {
		assert.Equal(t, report.StatusWarning, tc.Status, "a single failing type warns rather than aborting the resolver's case")
	}
}

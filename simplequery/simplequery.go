// Package simplequery implements the trivial multi-resolver probe family:
// fire the same handful of record-type queries at a small fixed pool of
// public resolvers and report whether each answered.
package simplequery

import (
	"context"
	"fmt"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/dnstrust/dnstrust/dnsclient"
	"github.com/dnstrust/dnstrust/log"
	"github.com/dnstrust/dnstrust/record"
	"github.com/dnstrust/dnstrust/report"
	"github.com/dnstrust/dnstrust/selector"
)

//nolint:gochecknoglobals
var logger = log.PrefixedLog("simplequery")

// Resolvers is the fixed pool probed for every domain: the system
// resolver plus three well-known public resolvers.
func Resolvers() []selector.Resolver {
	return []selector.Resolver{
		selector.Default(),
		selector.FromIPAndName("8.8.8.8", "google-public-dns"),
		selector.FromIPAndName("9.9.9.9", "quad9"),
		selector.FromIPAndName("1.1.1.1", "cloudflare"),
	}
}

// Types is the set of record types queried per resolver.
var Types = []record.Type{
	record.TypeSOA, record.TypeNS, record.TypeA, record.TypeAAAA, record.TypeMX, record.TypeTXT,
}

// Run queries every (resolver, type) pair for qname and returns one
// TestCase per resolver. Independent resolver failures are aggregated with
// go-multierror rather than aborting the whole probe.
func Run(ctx context.Context, querier dnsclient.Querier, qname string) ([]*report.TestCase, error) {
	logger.Debugf("simple query probe requested for %s", qname)

	var cases []*report.TestCase

	var errs *multierror.Error

	for _, resolver := range Resolvers() {
		tc := report.NewTestCase(fmt.Sprintf("simple query via %s", resolver.DisplayName))

		for _, t := range Types {
			set, err := querier.Query(ctx, qname, t, false, resolver)
			if err != nil {
				logger.Warnf("simple query %s %s via %s failed: %v", qname, t, resolver.DisplayName, err)
				tc.Warning(fmt.Sprintf("query %s %s", qname, t), err.Error())
				errs = multierror.Append(errs, fmt.Errorf("%s via %s: %w", t, resolver.DisplayName, err))

				continue
			}

			logger.Debugf("simple query %s %s via %s returned %d record(s)", qname, t, resolver.DisplayName, len(set.Records))
			tc.Success(fmt.Sprintf("query %s %s", qname, t), fmt.Sprintf("%d record(s)", len(set.Records)))
		}

		cases = append(cases, tc)
	}

	return cases, errs.ErrorOrNil()
}

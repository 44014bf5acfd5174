package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Appending a step never decreases status; final status equals the max
// over step statuses.
func TestTestCaseStatusMonotonicity(t *testing.T) {
	tc := NewTestCase("example case")
	assert.Equal(t, StatusSuccess, tc.Status)

	tc.Success("step one", "ok")
	assert.Equal(t, StatusSuccess, tc.Status)

	tc.Warning("step two", "hmm")
	assert.Equal(t, StatusWarning, tc.Status)

	tc.Success("step three", "ok")
	assert.Equal(t, StatusWarning, tc.Status, "a later SUCCESS step must not lower an already-WARNING case")

	tc.Error("step four", "boom")
	assert.Equal(t, StatusError, tc.Status)

	tc.Success("step five", "ok")
	assert.Equal(t, StatusError, tc.Status, "a later SUCCESS step must not lower an already-ERROR case")
}

func TestStatusJSONRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusSuccess, StatusWarning, StatusError} {
		b, err := json.Marshal(s)
		require.NoError(t, err)

		var got Status

		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, s, got)
	}
}

func TestStatusStringsMatchReportFormat(t *testing.T) {
	assert.Equal(t, "SUCCESS", StatusSuccess.String())
	assert.Equal(t, "WARNING", StatusWarning.String())
	assert.Equal(t, "ERROR", StatusError.String())
}

package report

import (
	"encoding/json"

	"github.com/dnstrust/dnstrust/evt"
)

// TestSuite accumulates the TestCases produced by one probe run (the
// simple-query, recursive-NS, and DNSSEC families) and renders them as
// the JSON document consumed by the external reporter.
type TestSuite struct {
	RunID string `json:"runId"`

	cases []*TestCase
}

// NewTestSuite starts an empty suite tagged with runID.
func NewTestSuite(runID string) *TestSuite {
	return &TestSuite{RunID: runID}
}

// AddTestCase appends tc and publishes TestCaseCompleted on the global bus.
func (s *TestSuite) AddTestCase(tc *TestCase) {
	s.cases = append(s.cases, tc)
	evt.Bus().Publish(evt.TestCaseCompleted, tc)
}

// Successes returns every case whose status is SUCCESS.
func (s *TestSuite) Successes() []*TestCase {
	return s.filter(func(tc *TestCase) bool { return !tc.Failed() })
}

// Failures returns every case whose status is WARNING or ERROR.
func (s *TestSuite) Failures() []*TestCase {
	return s.filter(func(tc *TestCase) bool { return tc.Failed() })
}

func (s *TestSuite) filter(pred func(*TestCase) bool) []*TestCase {
	var out []*TestCase

	for _, tc := range s.cases {
		if pred(tc) {
			out = append(out, tc)
		}
	}

	return out
}

type suiteDoc struct {
	Success    int           `json:"success"`
	Failures   int           `json:"failures"`
	RunID      string        `json:"runId"`
	DurationMs int64         `json:"durationMs"`
	TestCases  suiteDocCases `json:"testcases"`
}

type suiteDocCases struct {
	Failures []*TestCase `json:"failures"`
	Success  []*TestCase `json:"success,omitempty"`
}

// ToJSON renders the suite as JSON. When includeSuccess is false, the
// "success" key under "testcases" is omitted entirely (the --failures CLI
// mode); when true it lists every passing case (the --all mode).
func (s *TestSuite) ToJSON(includeSuccess bool, durationMs int64) ([]byte, error) {
	doc := suiteDoc{
		Success:    len(s.Successes()),
		Failures:   len(s.Failures()),
		RunID:      s.RunID,
		DurationMs: durationMs,
		TestCases: suiteDocCases{
			Failures: nonNil(s.Failures()),
		},
	}

	if includeSuccess {
		doc.TestCases.Success = nonNil(s.Successes())
	}

	// Publish once the counts are computed, so subscribers see the final suite.
	evt.Bus().Publish(evt.TestSuiteCompleted, s)

	return json.Marshal(doc)
}

func nonNil(cases []*TestCase) []*TestCase {
	if cases == nil {
		return []*TestCase{}
	}

	return cases
}

package report

// TestStep is one recorded observation within a TestCase: a human
// description, the concrete result text, and its outcome.
type TestStep struct {
	Description string `json:"description"`
	Result      string `json:"result"`
	Status      Status `json:"status"`
}

// TestCase groups the ordered steps of one probe (the whole DNSSEC walk,
// the NS walk, or one resolver's simple queries) under a single status, which
// rises monotonically as steps are appended: Status == max(step.Status).
type TestCase struct {
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Steps       []TestStep `json:"steps"`
}

// NewTestCase starts an empty, SUCCESS-status case.
func NewTestCase(description string) *TestCase {
	return &TestCase{Description: description, Status: StatusSuccess}
}

// AddStep appends step and raises Status if step's outcome is worse than
// the case's current status.
func (c *TestCase) AddStep(description, result string, status Status) {
	c.Steps = append(c.Steps, TestStep{Description: description, Result: result, Status: status})

	if status > c.Status {
		c.Status = status
	}
}

// Success records a SUCCESS step.
func (c *TestCase) Success(description, result string) {
	c.AddStep(description, result, StatusSuccess)
}

// Warning records a WARNING step.
func (c *TestCase) Warning(description, result string) {
	c.AddStep(description, result, StatusWarning)
}

// Error records an ERROR step. Callers treat this as terminal for the
// case: the walker stops driving further steps once it has recorded one.
func (c *TestCase) Error(description, result string) {
	c.AddStep(description, result, StatusError)
}

// Failed reports whether the case's status is worse than SUCCESS.
func (c *TestCase) Failed() bool {
	return c.Status != StatusSuccess
}

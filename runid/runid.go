// Package runid generates identifiers for individual probe runs.
//
// Unlike a process-wide instance id, a run id is minted once per CLI
// invocation or per HTTP request so that concurrent checks against the
// same process can be told apart in logs and reports.
package runid

import (
	"github.com/google/uuid"
)

// New returns a fresh run identifier.
func New() string {
	return uuid.New().String()
}

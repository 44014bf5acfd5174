package dnsclient

import "errors"

// Sentinel errors for the DNS client. The walker inspects these
// with errors.Is to decide the TestStep status.
var (
	ErrQueryTimeout    = errors.New("query timed out")
	ErrQueryError      = errors.New("query failed")
	ErrQueryNoResponse = errors.New("DNSSEC requested but no signature companion returned")
)

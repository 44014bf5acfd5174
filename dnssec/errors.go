package dnssec

import "errors"

// Sentinel error kinds per the error taxonomy; the walker maps these to
// TestStep status (always ERROR for the ones defined here — WARNING
// decisions are made by the walker itself, not by this package).
var (
	ErrUnsupportedAlgorithm = errors.New("unsupported DNSSEC algorithm")
	ErrUnsupportedDigest    = errors.New("unsupported DS digest type")
	ErrCrypto               = errors.New("signature verification failed")
	ErrChainOfTrustMismatch = errors.New("DNSKEY digest does not match parent DS")
	ErrKeyTagNotInChain     = errors.New("RRSIG key tag not found in chain of trust or RRSet")
)

package dnssec

import (
	"fmt"

	"github.com/dnstrust/dnstrust/record"
)

// VerifyResult reports the outcome of verifying an RRSet against a chain
// of trust: which key tag matched, and whether the algorithm used is
// considered weak (MD5).
type VerifyResult struct {
	Verified   bool
	MatchedTag uint16
	Weak       bool
}

// VerifyRRSet tries every RRSIG covering set and succeeds if any one
// verifies, rather than stopping at the first signature tried. The signing
// DNSKEY is looked up first in chain, then — for the DNSKEY self-signing
// case — among the KSKs in set's own records, since a zone's KSK validates
// its own DNSKEY RRSet. A ZSK in set is never used as a signer unless it is
// already in chain.
func VerifyRRSet(set record.RRSet, chain *ChainOfTrust) (VerifyResult, error) {
	if len(set.RRSIGs) == 0 {
		return VerifyResult{}, fmt.Errorf("%w: no RRSIG covering %s/%s", ErrCrypto, set.Owner, set.Type)
	}

	var lastErr error

	for _, sig := range set.RRSIGs {
		key, ok := chain.GetDNSKEY(sig.KeyTag)
		if !ok && set.Type == record.TypeDNSKEY {
			key, ok = findKeyInSet(set, sig.KeyTag)
		}

		if !ok {
			lastErr = fmt.Errorf("%w: tag %d", ErrKeyTagNotInChain, sig.KeyTag)
			continue
		}

		message := set.CanonicalMessage(sig)

		ok, err := VerifySignature(key, message, sig.Signature)
		if err != nil {
			lastErr = err
			continue
		}

		if ok {
			return VerifyResult{Verified: true, MatchedTag: sig.KeyTag, Weak: key.Algorithm == AlgRSAMD5}, nil
		}

		lastErr = fmt.Errorf("%w: RRSIG from key tag %d did not verify", ErrCrypto, sig.KeyTag)
	}

	return VerifyResult{}, lastErr
}

func findKeyInSet(set record.RRSet, tag uint16) (record.DNSKEY, bool) {
	for _, r := range set.Records {
		if k, ok := r.(record.DNSKEY); ok && k.IsKSK() && KeyTag(k) == tag {
			return k, true
		}
	}

	return record.DNSKEY{}, false
}

// BindKSKToDS checks that at least one DS in chain with k's key tag
// produces a matching digest. A key tag with no DS at all in chain is
// reported as (false, nil) — the caller distinguishes "nothing to bind
// against" from "binding attempted and failed"; the latter, when every
// candidate DS digest was computable but none matched, is reported as
// (false, ErrChainOfTrustMismatch).
func BindKSKToDS(qname string, k record.DNSKEY, chain *ChainOfTrust) (bool, error) {
	candidates := chain.GetDS(KeyTag(k))
	if len(candidates) == 0 {
		return false, nil
	}

	var lastErr error

	for _, ds := range candidates {
		ok, err := MatchesDS(qname, k, ds)
		if err != nil {
			lastErr = err
			continue
		}

		if ok {
			return true, nil
		}

		lastErr = ErrChainOfTrustMismatch
	}

	return false, lastErr
}

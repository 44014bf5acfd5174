// Package walker implements the DNSSEC chain-of-trust descent: the
// top-level algorithm that walks the delegation hierarchy from the root to
// a target name, fetching DS and DNSKEY RRSets at each label and verifying
// that every signature chains back to the hard-coded root anchors.
package walker

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/dnstrust/dnstrust/dnsclient"
	"github.com/dnstrust/dnstrust/dnssec"
	"github.com/dnstrust/dnstrust/log"
	"github.com/dnstrust/dnstrust/record"
	"github.com/dnstrust/dnstrust/report"
	"github.com/dnstrust/dnstrust/selector"
)

//nolint:gochecknoglobals
var logger = log.PrefixedLog("walker")

// Walker drives the descent for a target qname. It is not safe for
// concurrent use, since its *rand.Rand is shared across calls. Within one
// walk the ChainOfTrust is mutated in place across labels, matching the
// strictly sequential dependency of each label's DNSKEY validation on the
// parent label's DS.
type Walker struct {
	Querier dnsclient.Querier
	Rand    *rand.Rand
}

// New returns a Walker; each Walk call starts from a fresh root-seeded
// chain of trust.
func New(querier dnsclient.Querier, rng *rand.Rand) *Walker {
	return &Walker{Querier: querier, Rand: rng}
}

// Walk descends split_qname(qname) and returns the single TestCase
// recording the outcome at each state transition.
func (w *Walker) Walk(ctx context.Context, qname string) *report.TestCase {
	return w.WalkChain(ctx, qname, dnssec.NewChainOfTrust())
}

// WalkChain is Walk with an injectable starting chain of trust, letting
// tests substitute their own fabricated anchors instead of the real
// IANA root keys so the full multi-label descent can be exercised without
// live network captures.
func (w *Walker) WalkChain(ctx context.Context, qname string, chain *dnssec.ChainOfTrust) *report.TestCase {
	logger.Debugf("DNSSEC validation requested for %s", qname)

	tc := report.NewTestCase(fmt.Sprintf("DNSSEC validation for %s", qname))

	resolver := selector.Default()

	labels := record.SplitQname(qname)
	target := record.CanonicalName(qname)

	for _, subqname := range labels {
		stop, warned := w.checkLabel(ctx, tc, chain, &resolver, subqname, subqname == target)
		if stop {
			logger.Warnf("DNSSEC validation failed for %s at label %s", qname, subqname)
			return tc
		}

		if warned {
			logger.Debugf("DNSSEC validation for %s stopped early at %s: %s", qname, subqname, "zone is not signed")
			return tc
		}
	}

	logger.Debugf("DNSSEC validation succeeded for %s", qname)

	return tc
}

// checkLabel runs one label's PICK_NS -> (FETCH_DS -> VERIFY_DS)? ->
// FETCH_DNSKEY -> BIND_KSK_TO_DS -> VERIFY_DNSKEY_RRSIG -> VERIFY_TARGET?
// sequence. It returns stop=true on any ERROR (case is terminal) and
// warned=true when the DS fetch finds the zone unsigned, which ends the walk
// without an ERROR (the case's status is then WARNING).
func (w *Walker) checkLabel(ctx context.Context, tc *report.TestCase, chain *dnssec.ChainOfTrust,
	resolver *selector.Resolver, subqname string, isTarget bool,
) (stop, warned bool) {
	// 1. PICK_NS
	nsResolver, ok := w.pickNS(ctx, tc, *resolver, subqname)
	if !ok {
		return true, false
	}

	*resolver = nsResolver

	// 2. FETCH_DS / VERIFY_DS, skipped at the root.
	hasParentDS := false

	if subqname != "." {
		outcome := w.fetchAndVerifyDS(ctx, tc, chain, *resolver, subqname)
		switch outcome {
		case dsOutcomeError:
			return true, false
		case dsOutcomeWarning:
			return false, true
		case dsOutcomeSuccess:
			hasParentDS = true
		}
	}

	// 3. FETCH_DNSKEY
	dnskeySet, ok := w.fetchDNSKEY(ctx, tc, *resolver, subqname, hasParentDS)
	if !ok {
		return true, false
	}

	// 4. BIND_KSK_TO_DS
	if !w.bindKSKsToDS(tc, chain, subqname, dnskeySet) {
		return true, false
	}

	// 5. VERIFY_DNSKEY_RRSIG
	if !w.verifyDNSKEYRRSet(tc, chain, dnskeySet) {
		return true, false
	}

	// 6. VERIFY_TARGET, only on the last label.
	if isTarget {
		if !w.verifyTarget(ctx, tc, chain, *resolver, subqname) {
			return true, false
		}
	}

	return false, false
}

func (w *Walker) pickNS(ctx context.Context, tc *report.TestCase, resolver selector.Resolver, subqname string) (selector.Resolver, bool) {
	set, err := w.Querier.Query(ctx, subqname, record.TypeNS, false, resolver)
	if err != nil {
		logger.Warnf("NS query failed for %s via %s: %v", subqname, resolver, err)
		tc.Error("pick authoritative nameserver for "+subqname, err.Error())

		return selector.Resolver{}, false
	}

	if set.Type != record.TypeNS || len(set.Records) == 0 {
		logger.Warnf("no NS entry returned for %s via %s", subqname, resolver)
		tc.Error("pick authoritative nameserver for "+subqname, "no NS entry")

		return selector.Resolver{}, false
	}

	chosen := set.Records[w.Rand.Intn(len(set.Records))].(record.NS)

	lookup, ok := w.Querier.(selector.AddressLookup)
	if !ok {
		// Fakes used in tests may not implement address resolution; fall
		// back to treating the NS name itself as the resolver address.
		next := selector.FromIPAndName(chosen.Target, chosen.Target)
		tc.Success("pick authoritative nameserver for "+subqname, next.String())

		return next, true
	}

	next, err := selector.FromName(ctx, lookup, resolver, chosen.Target, w.Rand)
	if err != nil {
		logger.Warnf("address lookup failed for nameserver %s: %v", chosen.Target, err)
		tc.Error("pick authoritative nameserver for "+subqname, err.Error())

		return selector.Resolver{}, false
	}

	tc.Success("pick authoritative nameserver for "+subqname, next.String())

	return next, true
}

type dsOutcome int

const (
	dsOutcomeSuccess dsOutcome = iota
	dsOutcomeWarning
	dsOutcomeError
)

func (w *Walker) fetchAndVerifyDS(ctx context.Context, tc *report.TestCase, chain *dnssec.ChainOfTrust,
	resolver selector.Resolver, subqname string,
) dsOutcome {
	set, err := w.Querier.Query(ctx, subqname, record.TypeDS, true, resolver)
	if errors.Is(err, dnsclient.ErrQueryNoResponse) {
		logger.Debugf("no DS records for %s - zone is unsigned", subqname)
		tc.Warning("fetch DS for "+subqname, "zone is not signed")

		return dsOutcomeWarning
	}

	if err != nil {
		logger.Warnf("DS query failed for %s: %v", subqname, err)
		tc.Error("fetch DS for "+subqname, err.Error())

		return dsOutcomeError
	}

	if set.Type != record.TypeDS {
		logger.Debugf("no DS records for %s - zone is unsigned", subqname)
		tc.Warning("fetch DS for "+subqname, "zone is not signed")

		return dsOutcomeWarning
	}

	result, err := dnssec.VerifyRRSet(set, chain)
	if err != nil || !result.Verified {
		msg := "DS records received are not valid (RRSIG not verified)"
		if err != nil {
			msg = err.Error()
		}

		logger.Warnf("DS RRSIG verification failed for %s: %s", subqname, msg)
		tc.Error("verify DS for "+subqname, msg)

		return dsOutcomeError
	}

	for _, r := range set.Records {
		if ds, ok := r.(record.DS); ok {
			chain.AddDS(ds)
		}
	}

	if result.Weak {
		logger.Warnf("DS records for %s signed with a weak algorithm (MD5), key tag %d", subqname, result.MatchedTag)
		tc.Warning("verify DS for "+subqname, "signed with a weak algorithm (MD5)")
	} else {
		logger.Debugf("DS records validated for %s using key tag %d", subqname, result.MatchedTag)
		tc.Success("verify DS for "+subqname, fmt.Sprintf("signed by key tag %d", result.MatchedTag))
	}

	return dsOutcomeSuccess
}

func (w *Walker) fetchDNSKEY(ctx context.Context, tc *report.TestCase,
	resolver selector.Resolver, subqname string, hasParentDS bool,
) (record.RRSet, bool) {
	set, err := w.Querier.Query(ctx, subqname, record.TypeDNSKEY, true, resolver)
	if errors.Is(err, dnsclient.ErrQueryNoResponse) {
		if hasParentDS {
			logger.Warnf("%s has a parent DS but returned no DNSKEY", subqname)
			tc.Error("fetch DNSKEY for "+subqname, "zone has parent DS but no DNSKEY")
		} else {
			logger.Warnf("DNSKEY query failed for %s: %v", subqname, err)
			tc.Error("fetch DNSKEY for "+subqname, err.Error())
		}

		return record.RRSet{}, false
	}

	if err != nil {
		logger.Warnf("DNSKEY query failed for %s: %v", subqname, err)
		tc.Error("fetch DNSKEY for "+subqname, err.Error())

		return record.RRSet{}, false
	}

	if set.Type != record.TypeDNSKEY {
		logger.Warnf("no DNSKEY entry returned for %s", subqname)
		tc.Error("fetch DNSKEY for "+subqname, "no DNSKEY entry")

		return record.RRSet{}, false
	}

	logger.Debugf("fetched %d DNSKEY record(s) for %s", len(set.Records), subqname)
	tc.Success("fetch DNSKEY for "+subqname, fmt.Sprintf("%d key(s)", len(set.Records)))

	return set, true
}

func (w *Walker) bindKSKsToDS(tc *report.TestCase, chain *dnssec.ChainOfTrust, subqname string, set record.RRSet) bool {
	for _, r := range set.Records {
		k, ok := r.(record.DNSKEY)
		if !ok || !k.IsKSK() {
			continue
		}

		bound, err := dnssec.BindKSKToDS(subqname, k, chain)
		if err != nil {
			logger.Warnf("KSK bind failed for %s key tag %d: %v", subqname, dnssec.KeyTag(k), err)
			tc.Error("bind KSK to parent DS for "+subqname, err.Error())

			return false
		}

		if !bound {
			logger.Warnf("KSK %d for %s has no matching parent DS", dnssec.KeyTag(k), subqname)
			tc.Error("bind KSK to parent DS for "+subqname, "DNSKEY cannot be validated through parent DS")

			return false
		}

		logger.Debugf("KSK %d bound to parent DS for %s", dnssec.KeyTag(k), subqname)
		tc.Success("bind KSK to parent DS for "+subqname, fmt.Sprintf("key tag %d", dnssec.KeyTag(k)))
	}

	return true
}

func (w *Walker) verifyDNSKEYRRSet(tc *report.TestCase, chain *dnssec.ChainOfTrust, set record.RRSet) bool {
	result, err := dnssec.VerifyRRSet(set, chain)
	if err != nil || !result.Verified {
		msg := "DNSKEY RRSet did not verify"
		if err != nil {
			msg = err.Error()
		}

		logger.Warnf("DNSKEY RRSet verification failed for %s: %s", set.Owner, msg)
		tc.Error("verify DNSKEY RRSet for "+set.Owner, msg)

		return false
	}

	for _, r := range set.Records {
		if k, ok := r.(record.DNSKEY); ok {
			chain.AddDNSKEY(k)
		}
	}

	if result.Weak {
		logger.Warnf("DNSKEY RRSet for %s signed with a weak algorithm (MD5), key tag %d", set.Owner, result.MatchedTag)
		tc.Warning("verify DNSKEY RRSet for "+set.Owner, "signed with a weak algorithm (MD5)")
	} else {
		logger.Debugf("DNSKEY RRSet verified for %s using key tag %d", set.Owner, result.MatchedTag)
		tc.Success("verify DNSKEY RRSet for "+set.Owner, fmt.Sprintf("signed by key tag %d", result.MatchedTag))
	}

	return true
}

func (w *Walker) verifyTarget(ctx context.Context, tc *report.TestCase, chain *dnssec.ChainOfTrust, resolver selector.Resolver, qname string) bool {
	set, err := w.Querier.Query(ctx, qname, record.TypeA, true, resolver)
	if err != nil {
		logger.Warnf("target A query failed for %s: %v", qname, err)
		tc.Error("verify target A RRSet for "+qname, err.Error())

		return false
	}

	result, err := dnssec.VerifyRRSet(set, chain)
	if err != nil || !result.Verified {
		msg := "target RRSet did not verify"
		if err != nil {
			msg = err.Error()
		}

		logger.Warnf("target A RRSet verification failed for %s: %s", qname, msg)
		tc.Error("verify target A RRSet for "+qname, msg)

		return false
	}

	if result.Weak {
		logger.Warnf("target A RRSet for %s signed with a weak algorithm (MD5), key tag %d", qname, result.MatchedTag)
		tc.Warning("verify target A RRSet for "+qname, "signed with a weak algorithm (MD5)")
	} else {
		logger.Debugf("target A RRSet verified for %s using key tag %d", qname, result.MatchedTag)
		tc.Success("verify target A RRSet for "+qname, fmt.Sprintf("signed by key tag %d", result.MatchedTag))
	}

	return true
}

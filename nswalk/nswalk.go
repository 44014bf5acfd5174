// Package nswalk implements the trivial recursive NS-walk probe family:
// descend split_qname picking an authoritative nameserver at each label,
// the same delegation traversal the DNSSEC walker performs but without
// any signature verification.
package nswalk

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/dnstrust/dnstrust/dnsclient"
	"github.com/dnstrust/dnstrust/log"
	"github.com/dnstrust/dnstrust/record"
	"github.com/dnstrust/dnstrust/report"
	"github.com/dnstrust/dnstrust/selector"
)

//nolint:gochecknoglobals
var logger = log.PrefixedLog("nswalk")

// Run produces one TestCase with a step per label of split_qname(qname),
// recording the NS and the authoritative A address chosen at each step.
func Run(ctx context.Context, querier dnsclient.Querier, rng *rand.Rand, qname string) *report.TestCase {
	logger.Debugf("recursive NS walk requested for %s", qname)

	tc := report.NewTestCase(fmt.Sprintf("recursive NS walk for %s", qname))

	resolver := selector.Default()

	for _, subqname := range record.SplitQname(qname) {
		next, err := queryNS(ctx, querier, resolver, subqname)
		if err != nil {
			logger.Warnf("NS walk stopped at %s: %v", subqname, err)
			tc.Error("walk NS for "+subqname, err.Error())

			return tc
		}

		ns := next.Records[rng.Intn(len(next.Records))].(record.NS)

		addrSet, err := querier.Query(ctx, ns.Target, record.TypeA, false, resolver)
		if err != nil || len(addrSet.Records) == 0 {
			logger.Warnf("address resolution failed for nameserver %s: %s", ns.Target, errString(err))
			tc.Error("resolve nameserver address for "+ns.Target, errString(err))

			return tc
		}

		addr := addrSet.Records[rng.Intn(len(addrSet.Records))].(record.A)
		resolver = selector.FromIPAndName(addr.Address.String(), ns.Target)

		logger.Debugf("NS walk at %s chose %s", subqname, resolver)
		tc.Success("walk NS for "+subqname, resolver.String())
	}

	logger.Debugf("recursive NS walk for %s reached %s", qname, resolver)

	return tc
}

func queryNS(ctx context.Context, querier dnsclient.Querier, resolver selector.Resolver, subqname string) (record.RRSet, error) {
	set, err := querier.Query(ctx, subqname, record.TypeNS, false, resolver)
	if err != nil {
		return record.RRSet{}, err
	}

	if set.Type != record.TypeNS || len(set.Records) == 0 {
		return record.RRSet{}, fmt.Errorf("no NS entry for %s", subqname)
	}

	return set, nil
}

func errString(err error) string {
	if err == nil {
		return "no address records"
	}

	return err.Error()
}

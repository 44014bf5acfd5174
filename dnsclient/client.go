// Package dnsclient wraps the miekg/dns wire codec as a narrow facade:
// query(qname, rdtype, wantDNSSEC, resolver) -> RRSet. It owns transport
// concerns only — timeouts, EDNS0, rcode handling — and never touches
// signature verification, key tags, or DS digests; those live in dnssec.
package dnsclient

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/dnstrust/dnstrust/evt"
	"github.com/dnstrust/dnstrust/log"
	"github.com/dnstrust/dnstrust/metrics"
	"github.com/dnstrust/dnstrust/record"
	"github.com/dnstrust/dnstrust/selector"
)

//nolint:gochecknoglobals
var logger = log.PrefixedLog("dnsclient")

// DefaultTimeout is the per-query UDP timeout.
const DefaultTimeout = 5 * time.Second

// DefaultUDPSize is the EDNS0 payload size advertised on every query.
const DefaultUDPSize = 4096

// Querier is the interface the walker and trivial probes depend on,
// allowing tests to substitute a fake transport with no real network I/O.
type Querier interface {
	Query(ctx context.Context, qname string, rdtype record.Type, wantDNSSEC bool, resolver selector.Resolver) (record.RRSet, error)
}

// Client is the default Querier, built on miekg/dns over UDP.
type Client struct {
	Timeout time.Duration
	UDPSize uint16
	Rand    *rand.Rand
}

// NewClient returns a Client configured with the package defaults.
func NewClient(rng *rand.Rand) *Client {
	return &Client{Timeout: DefaultTimeout, UDPSize: DefaultUDPSize, Rand: rng}
}

// Query sends a single query and maps the answer to a record.RRSet.
func (c *Client) Query(ctx context.Context, qname string, rdtype record.Type, wantDNSSEC bool, resolver selector.Resolver) (set record.RRSet, err error) {
	logger.Debugf("querying %s %s via %s", qname, rdtype, resolver)

	defer func() {
		result := "success"
		if err != nil {
			result = "error"
			logger.Warnf("query failed for %s %s via %s: %v", qname, rdtype, resolver, err)
		}

		metrics.RecordQuery(rdtype.String(), result)
		evt.Bus().Publish(evt.QueryPerformed, qname, rdtype.String(), err)
	}()

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(qname), uint16(rdtype))
	msg.SetEdns0(c.UDPSize, wantDNSSEC)

	client := &dns.Client{Net: "udp", Timeout: c.Timeout}

	server := resolver.IPAddr
	if server == "" {
		// The default selector carries no address: use the first nameserver
		// of the platform's resolver configuration.
		conf, confErr := dns.ClientConfigFromFile("/etc/resolv.conf")
		if confErr != nil || len(conf.Servers) == 0 {
			return record.RRSet{}, fmt.Errorf("%w: %s %s via %s: no system resolver configured", ErrQueryError, qname, rdtype, resolver)
		}

		server = conf.Servers[0]
	}

	addr := net.JoinHostPort(server, "53")

	in, _, err := client.ExchangeContext(ctx, msg, addr)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil || isTimeout(err) {
			return record.RRSet{}, fmt.Errorf("%w: %s %s via %s: %v", ErrQueryTimeout, qname, rdtype, resolver, err)
		}

		return record.RRSet{}, fmt.Errorf("%w: %s %s via %s: %v", ErrQueryError, qname, rdtype, resolver, err)
	}

	if in.Rcode != dns.RcodeSuccess {
		return record.RRSet{}, fmt.Errorf("%w: %s %s via %s: rcode %s", ErrQueryError, qname, rdtype, resolver, dns.RcodeToString[in.Rcode])
	}

	section := in.Answer
	if len(section) == 0 {
		section = in.Ns
	}

	if len(section) == 0 {
		return record.RRSet{}, fmt.Errorf("%w: %s %s via %s: no answer", ErrQueryError, qname, rdtype, resolver)
	}

	groups, order := splitByType(section)

	if wantDNSSEC && len(groups) < 2 {
		return record.RRSet{}, fmt.Errorf("%w: %s %s via %s", ErrQueryNoResponse, qname, rdtype, resolver)
	}

	primaryType := order[0]

	set = record.RRSet{
		Owner: qname,
		Type:  primaryType,
	}

	for _, rr := range groups[primaryType] {
		rec, err := mapRR(rr)
		if err != nil {
			return record.RRSet{}, err
		}

		set.Records = append(set.Records, rec)
	}

	if wantDNSSEC {
		for _, t := range order[1:] {
			for _, rr := range groups[t] {
				sigRR, ok := rr.(*dns.RRSIG)
				if !ok {
					continue
				}

				set.RRSIGs = append(set.RRSIGs, mapRRSIG(sigRR))
			}
		}
	}

	return set, nil
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }

	te, ok := err.(timeouter)

	return ok && te.Timeout()
}

// splitByType groups a DNS section by rdtype, preserving first-seen order
// so the "first RRset" / "second RRset" ordering rule is well defined.
func splitByType(section []dns.RR) (map[record.Type][]dns.RR, []record.Type) {
	groups := make(map[record.Type][]dns.RR)

	var order []record.Type

	for _, rr := range section {
		t := record.Type(rr.Header().Rrtype)
		if _, seen := groups[t]; !seen {
			order = append(order, t)
		}

		groups[t] = append(groups[t], rr)
	}

	return groups, order
}

// LookupA implements selector.AddressLookup.
func (c *Client) LookupA(ctx context.Context, name string, resolver selector.Resolver) ([]net.IP, error) {
	set, err := c.Query(ctx, name, record.TypeA, false, resolver)
	if err != nil {
		return nil, err
	}

	addrs := make([]net.IP, 0, len(set.Records))

	for _, r := range set.Records {
		if a, ok := r.(record.A); ok {
			addrs = append(addrs, a.Address)
		}
	}

	return addrs, nil
}

// LookupPTR implements selector.NameLookup.
func (c *Client) LookupPTR(ctx context.Context, ip string, resolver selector.Resolver) (string, error) {
	arpa, err := dns.ReverseAddr(ip)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrQueryError, err)
	}

	set, err := c.Query(ctx, arpa, record.TypePTR, false, resolver)
	if err != nil {
		return "", err
	}

	for _, r := range set.Records {
		if p, ok := r.(record.PTR); ok {
			return p.Target, nil
		}
	}

	return "", fmt.Errorf("%w: no PTR record for %s", ErrQueryError, ip)
}

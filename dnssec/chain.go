package dnssec

import (
	"github.com/dnstrust/dnstrust/evt"
	"github.com/dnstrust/dnstrust/metrics"
	"github.com/dnstrust/dnstrust/record"
)

// ChainOfTrust is an append-only store mapping key tag to the DS records
// and DNSKEY that have been validated so far in a single walker run. It is
// owned by exactly one walker invocation and is never shared across
// goroutines; its zero value is not usable, construct with NewChainOfTrust.
type ChainOfTrust struct {
	dsRecords map[uint16][]record.DS
	dnskeys   map[uint16]record.DNSKEY
}

// rootAnchors are the IANA-published root zone KSK DS records, hard-coded
// these MUST be compiled in, never loaded from a file.
func rootAnchors() []record.DS {
	return []record.DS{
		record.NewDS(".", 19036, AlgRSASHA256, DigestSHA256, mustHex(
			"49AAC11D7B6F6446702E54A1607371607A1A41855200FD2CE1CDDE32F24E8FB5")),
		record.NewDS(".", 20326, AlgRSASHA256, DigestSHA256, mustHex(
			"E06D44B80B8F1D39A95C0B0D7C65D08458E880409BBC683457104237C7F8EC8D")),
	}
}

func mustHex(s string) []byte {
	buf := make([]byte, len(s)/2)

	for i := range buf {
		hi := hexVal(s[i*2])
		lo := hexVal(s[i*2+1])
		buf[i] = hi<<4 | lo
	}

	return buf
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// NewChainOfTrust constructs a chain seeded with the root KSK anchors.
func NewChainOfTrust() *ChainOfTrust {
	c := NewEmptyChainOfTrust()

	for _, ds := range rootAnchors() {
		c.AddDS(ds)
	}

	return c
}

// NewEmptyChainOfTrust constructs a chain with no pre-seeded anchors, for
// tests that substitute their own fabricated trust anchors instead of the
// real IANA root keys.
func NewEmptyChainOfTrust() *ChainOfTrust {
	return &ChainOfTrust{
		dsRecords: make(map[uint16][]record.DS),
		dnskeys:   make(map[uint16]record.DNSKEY),
	}
}

// AddDS appends ds to the set of DS records known under its key tag.
// Multiple DS records per tag are legal (algorithm/digest-type rollover).
func (c *ChainOfTrust) AddDS(ds record.DS) {
	c.dsRecords[ds.KeyTag] = append(c.dsRecords[ds.KeyTag], ds)

	metrics.RecordChainEntry("ds")
	evt.Bus().Publish(evt.ChainOfTrustEntryAdded, ds.Owner(), "ds")
}

// AddDNSKEY records k under its own key tag, overwriting any previous
// entry for that tag.
func (c *ChainOfTrust) AddDNSKEY(k record.DNSKEY) {
	c.dnskeys[KeyTag(k)] = k

	metrics.RecordChainEntry("dnskey")
	evt.Bus().Publish(evt.ChainOfTrustEntryAdded, k.Owner(), "dnskey")
}

// GetDS returns every DS known for tag, or nil if none.
func (c *ChainOfTrust) GetDS(tag uint16) []record.DS {
	return c.dsRecords[tag]
}

// GetDNSKEY returns the DNSKEY known for tag, if any.
func (c *ChainOfTrust) GetDNSKEY(tag uint16) (record.DNSKEY, bool) {
	k, ok := c.dnskeys[tag]
	return k, ok
}

// DSCount and DNSKEYCount support the walker-monotonicity property test:
// both counters must never decrease across a chain's lifetime.
func (c *ChainOfTrust) DSCount() int {
	n := 0
	for _, v := range c.dsRecords {
		n += len(v)
	}

	return n
}

func (c *ChainOfTrust) DNSKEYCount() int { return len(c.dnskeys) }

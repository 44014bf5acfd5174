package record

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Two RRSets built from the same records in different order, carrying
// different (received) TTLs, must produce an identical canonical message
// once the RRSIG's OriginalTTL stands in for both (canonicalization
// round-trip property).
func TestCanonicalMessageRoundTrip(t *testing.T) {
	a1 := NewA("example.", net.ParseIP("192.0.2.1"))
	a2 := NewA("example.", net.ParseIP("192.0.2.2"))

	sig := NewRRSIG("example.", TypeA, 8, 1, 3600, 2000000000, 1000000000, 1234, "example.", []byte("sig"))

	setForward := RRSet{Owner: "example.", Type: TypeA, Records: []Record{a1, a2}, RRSIGs: []RRSIG{sig}}
	setReverse := RRSet{Owner: "example.", Type: TypeA, Records: []Record{a2, a1}, RRSIGs: []RRSIG{sig}}

	assert.Equal(t, setForward.CanonicalMessage(sig), setReverse.CanonicalMessage(sig))
}

func TestCanonicalMessageUsesOriginalTTLNotRecordTTL(t *testing.T) {
	a := NewA("example.", net.ParseIP("192.0.2.1"))

	sigLow := NewRRSIG("example.", TypeA, 8, 1, 300, 2000000000, 1000000000, 1234, "example.", []byte("sig"))
	sigHigh := NewRRSIG("example.", TypeA, 8, 1, 3600, 2000000000, 1000000000, 1234, "example.", []byte("sig"))

	set := RRSet{Owner: "example.", Type: TypeA, Records: []Record{a}}

	assert.NotEqual(t, set.CanonicalMessage(sigLow), set.CanonicalMessage(sigHigh))
}

func TestRRSIGRdataPrefixExcludesSignature(t *testing.T) {
	sig := NewRRSIG("example.", TypeDNSKEY, 8, 1, 3600, 200, 100, 9999, "example.", []byte("the-signature"))

	prefix := sig.RdataPrefix()

	assert.NotContains(t, string(prefix), "the-signature")
	assert.Equal(t, sig.CanonicalRdata(), append(prefix, sig.Signature...))
}

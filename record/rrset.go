package record

import (
	"bytes"
	"encoding/binary"
	"sort"
)

const classIN uint16 = 1

// RRSet groups every record sharing the same owner, type, and class, plus
// the RRSIGs (if any) covering it. Every entry in Records must share Owner
// and Type; that invariant is established by the caller (dnsclient maps one
// answer section into one RRSet) and is not re-checked here.
type RRSet struct {
	Owner   string
	Type    Type
	Records []Record
	RRSIGs  []RRSIG
}

// CanonicalMessage builds the signed message for a given covering RRSIG:
// the RRSIG's rdata prefix concatenated with the canonical RRSet.
// The RRSIG's OriginalTTL stands in for the TTL in each record's canonical
// wire form, not whatever TTL the transport actually received.
func (s RRSet) CanonicalMessage(sig RRSIG) []byte {
	buf := sig.RdataPrefix()

	return append(buf, s.canonicalWire(sig.OriginalTTL)...)
}

// canonicalWire sorts Records by canonical rdata ascending and concatenates
// each record's canonical per-record wire form (RFC 4034 §6.2-§6.3).
func (s RRSet) canonicalWire(originalTTL uint32) []byte {
	rdatas := make([][]byte, len(s.Records))
	for i, r := range s.Records {
		rdatas[i] = r.CanonicalRdata()
	}

	sort.Slice(rdatas, func(i, j int) bool {
		return bytes.Compare(rdatas[i], rdatas[j]) < 0
	})

	owner := EncodeName(CanonicalName(s.Owner))

	var buf []byte
	for _, rdata := range rdatas {
		buf = append(buf, owner...)

		head := make([]byte, 10)
		binary.BigEndian.PutUint16(head[0:], uint16(s.Type))
		binary.BigEndian.PutUint16(head[2:], classIN)
		binary.BigEndian.PutUint32(head[4:], originalTTL)
		binary.BigEndian.PutUint16(head[8:], uint16(len(rdata)))

		buf = append(buf, head...)
		buf = append(buf, rdata...)
	}

	return buf
}

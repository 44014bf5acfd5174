// Package dnssec hand-implements the RFC 4034/4035 arithmetic the probe's
// validator depends on: DNSKEY key tags, DS digests, signature verification,
// and the chain-of-trust store tying them together. None of this delegates
// to a transport library's own verification helpers — the wire codec (see
// dnsclient) is the only part of the DNSSEC stack treated as a black box.
package dnssec

import "github.com/dnstrust/dnstrust/record"

// KeyTag computes the RFC 4034 Appendix B.1 key tag of a DNSKEY: sum the
// RDATA octets as big-endian 16-bit words (odd-length RDATA pads the last
// word with a zero low byte), fold the carry from bit 16 back in, and take
// the bottom 16 bits.
func KeyTag(k record.DNSKEY) uint16 {
	rdata := k.CanonicalRdata()

	var sum uint32

	for i, b := range rdata {
		if i%2 == 0 {
			sum += uint32(b) << 8
		} else {
			sum += uint32(b)
		}
	}

	sum += (sum >> 16) & 0xFFFF

	return uint16(sum & 0xFFFF)
}

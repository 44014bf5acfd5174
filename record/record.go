package record

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Type is the DNS RR type, using the same numeric values as RFC 1035/4034.
type Type uint16

const (
	TypeA      Type = 1
	TypeNS     Type = 2
	TypeSOA    Type = 6
	TypePTR    Type = 12
	TypeMX     Type = 15
	TypeTXT    Type = 16
	TypeAAAA   Type = 28
	TypeDS     Type = 43
	TypeRRSIG  Type = 46
	TypeDNSKEY Type = 48
)

func (t Type) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeNS:
		return "NS"
	case TypeSOA:
		return "SOA"
	case TypePTR:
		return "PTR"
	case TypeMX:
		return "MX"
	case TypeTXT:
		return "TXT"
	case TypeAAAA:
		return "AAAA"
	case TypeDS:
		return "DS"
	case TypeRRSIG:
		return "RRSIG"
	case TypeDNSKEY:
		return "DNSKEY"
	default:
		return fmt.Sprintf("TYPE%d", uint16(t))
	}
}

// Record is implemented by every typed RR variant. CanonicalRdata returns
// the RFC 4034 §6.2 canonical rdata encoding, used both as the tail of a
// record's canonical wire form and, for DNSKEY, as the input to the key-tag
// and DS-digest algorithms. Owner and a display String are used for report
// rendering and sorting diagnostics; they are not part of the signed bytes.
type Record interface {
	Type() Type
	Owner() string
	CanonicalRdata() []byte
	String() string
}

type base struct {
	owner string
}

func (b base) Owner() string { return b.owner }

// A is an IPv4 address record.
type A struct {
	base
	Address net.IP
}

func NewA(owner string, address net.IP) A { return A{base{owner}, address.To4()} }
func (r A) Type() Type                    { return TypeA }
func (r A) CanonicalRdata() []byte        { return r.Address.To4() }
func (r A) String() string                { return r.Address.String() }

// AAAA is an IPv6 address record.
type AAAA struct {
	base
	Address net.IP
}

func NewAAAA(owner string, address net.IP) AAAA { return AAAA{base{owner}, address.To16()} }
func (r AAAA) Type() Type                       { return TypeAAAA }
func (r AAAA) CanonicalRdata() []byte           { return r.Address.To16() }
func (r AAAA) String() string                   { return r.Address.String() }

// NS delegates a zone to an authoritative nameserver.
type NS struct {
	base
	Target string
}

func NewNS(owner, target string) NS   { return NS{base{owner}, target} }
func (r NS) Type() Type               { return TypeNS }
func (r NS) CanonicalRdata() []byte   { return EncodeName(r.Target) }
func (r NS) String() string           { return r.Target }

// PTR maps an address (in in-addr.arpa/ip6.arpa form) back to a name.
type PTR struct {
	base
	Target string
}

func NewPTR(owner, target string) PTR { return PTR{base{owner}, target} }
func (r PTR) Type() Type              { return TypePTR }
func (r PTR) CanonicalRdata() []byte  { return EncodeName(r.Target) }
func (r PTR) String() string          { return r.Target }

// TXT carries free-form text.
type TXT struct {
	base
	Value string
}

func NewTXT(owner, value string) TXT { return TXT{base{owner}, value} }
func (r TXT) Type() Type             { return TypeTXT }

func (r TXT) CanonicalRdata() []byte {
	// Each TXT character-string is length-prefixed; a single string is the
	// common case and is sufficient for this probe's purposes.
	chunks := splitTXT(r.Value, 255)
	buf := make([]byte, 0, len(r.Value)+len(chunks))

	for _, c := range chunks {
		buf = append(buf, byte(len(c)))
		buf = append(buf, c...)
	}

	return buf
}

func (r TXT) String() string { return r.Value }

func splitTXT(s string, max int) []string {
	if len(s) <= max {
		return []string{s}
	}

	var out []string
	for len(s) > max {
		out = append(out, s[:max])
		s = s[max:]
	}

	return append(out, s)
}

// MX is a mail exchanger record.
type MX struct {
	base
	Preference uint16
	Target     string
}

func NewMX(owner string, preference uint16, target string) MX {
	return MX{base{owner}, preference, target}
}
func (r MX) Type() Type { return TypeMX }

func (r MX) CanonicalRdata() []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, r.Preference)

	return append(buf, EncodeName(r.Target)...)
}

func (r MX) String() string { return fmt.Sprintf("%d %s", r.Preference, r.Target) }

// SOA is the start-of-authority record.
type SOA struct {
	base
	Mname   string
	Rname   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func NewSOA(owner, mname, rname string, serial, refresh, retry, expire, minimum uint32) SOA {
	return SOA{base{owner}, mname, rname, serial, refresh, retry, expire, minimum}
}

func (r SOA) Type() Type { return TypeSOA }

func (r SOA) CanonicalRdata() []byte {
	buf := EncodeName(r.Mname)
	buf = append(buf, EncodeName(r.Rname)...)

	tail := make([]byte, 20)
	binary.BigEndian.PutUint32(tail[0:], r.Serial)
	binary.BigEndian.PutUint32(tail[4:], r.Refresh)
	binary.BigEndian.PutUint32(tail[8:], r.Retry)
	binary.BigEndian.PutUint32(tail[12:], r.Expire)
	binary.BigEndian.PutUint32(tail[16:], r.Minimum)

	return append(buf, tail...)
}

func (r SOA) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d", r.Mname, r.Rname, r.Serial, r.Refresh, r.Retry, r.Expire, r.Minimum)
}

// DNSKEY is a DNSSEC public key record.
type DNSKEY struct {
	base
	Flags     uint16
	Protocol  uint8
	Algorithm uint8
	PublicKey []byte
}

func NewDNSKEY(owner string, flags uint16, protocol, algorithm uint8, publicKey []byte) DNSKEY {
	return DNSKEY{base{owner}, flags, protocol, algorithm, publicKey}
}

func (r DNSKEY) Type() Type { return TypeDNSKEY }

// IsKSK reports whether the SEP (key-signing key) bit is set, flags == 257
// in the common case.
func (r DNSKEY) IsKSK() bool { return r.Flags&0x0001 != 0 }

func (r DNSKEY) CanonicalRdata() []byte {
	buf := make([]byte, 4, 4+len(r.PublicKey))
	binary.BigEndian.PutUint16(buf[0:], r.Flags)
	buf[2] = r.Protocol
	buf[3] = r.Algorithm

	return append(buf, r.PublicKey...)
}

func (r DNSKEY) String() string {
	return fmt.Sprintf("%d %d %d %x", r.Flags, r.Protocol, r.Algorithm, r.PublicKey)
}

// DS is a delegation-signer record, committing to a child zone's KSK.
type DS struct {
	base
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     []byte
}

func NewDS(owner string, keyTag uint16, algorithm, digestType uint8, digest []byte) DS {
	return DS{base{owner}, keyTag, algorithm, digestType, digest}
}

func (r DS) Type() Type { return TypeDS }

func (r DS) CanonicalRdata() []byte {
	buf := make([]byte, 4, 4+len(r.Digest))
	binary.BigEndian.PutUint16(buf[0:], r.KeyTag)
	buf[2] = r.Algorithm
	buf[3] = r.DigestType

	return append(buf, r.Digest...)
}

func (r DS) String() string {
	return fmt.Sprintf("%d %d %d %x", r.KeyTag, r.Algorithm, r.DigestType, r.Digest)
}

// RRSIG is a signature covering an RRSet at a given (owner, type).
type RRSIG struct {
	base
	TypeCovered  Type
	Algorithm    uint8
	Labels       uint8
	OriginalTTL  uint32
	Expiration   uint32
	Inception    uint32
	KeyTag       uint16
	Signer       string
	Signature    []byte
}

func NewRRSIG(owner string, typeCovered Type, algorithm, labels uint8, originalTTL, expiration,
	inception uint32, keyTag uint16, signer string, signature []byte,
) RRSIG {
	return RRSIG{base{owner}, typeCovered, algorithm, labels, originalTTL, expiration, inception, keyTag, signer, signature}
}

func (r RRSIG) Type() Type { return TypeRRSIG }

func (r RRSIG) CanonicalRdata() []byte {
	buf := make([]byte, 18)
	binary.BigEndian.PutUint16(buf[0:], uint16(r.TypeCovered))
	buf[2] = r.Algorithm
	buf[3] = r.Labels
	binary.BigEndian.PutUint32(buf[4:], r.OriginalTTL)
	binary.BigEndian.PutUint32(buf[8:], r.Expiration)
	binary.BigEndian.PutUint32(buf[12:], r.Inception)
	binary.BigEndian.PutUint16(buf[16:], r.KeyTag)

	buf = append(buf, EncodeName(r.Signer)...)

	return append(buf, r.Signature...)
}

// RdataPrefix returns the packed RRSIG rdata header used as the prefix of
// the signed message: everything up to and including the signer
// name, but excluding the signature.
func (r RRSIG) RdataPrefix() []byte {
	full := r.CanonicalRdata()

	return full[:len(full)-len(r.Signature)]
}

func (r RRSIG) String() string {
	return fmt.Sprintf("%s %d %d %d %d %d %d %s", r.TypeCovered, r.Algorithm, r.Labels,
		r.OriginalTTL, r.Expiration, r.Inception, r.KeyTag, r.Signer)
}

// Package record defines the typed DNS record variants and the RRSet
// container the DNSSEC validator operates on, plus the RFC 4034 wire
// encoding primitives shared by canonicalization, key-tag, and DS digest
// computation.
package record

import "strings"

// EncodeName renders a presentation-form domain name (optionally
// trailing-dot, mixed case) as its RFC 1035 wire form: length-prefixed
// labels terminated by a zero octet. The root name "." encodes as the
// single zero octet.
func EncodeName(name string) []byte {
	name = strings.ToLower(strings.TrimSuffix(name, "."))

	if name == "" {
		return []byte{0}
	}

	labels := strings.Split(name, ".")

	buf := make([]byte, 0, len(name)+2)
	for _, label := range labels {
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}

	return append(buf, 0)
}

// CanonicalName lowercases and ensures a trailing dot, per RFC 4034 §6.2's
// requirement that owner names be canonicalized before encoding.
func CanonicalName(name string) string {
	name = strings.ToLower(name)
	if !strings.HasSuffix(name, ".") {
		name += "."
	}

	return name
}

// SplitQname decomposes a fully-qualified, trailing-dot-normalized name
// into the ordered list of zones the DNSSEC walker descends through, from
// the root to the name itself: split_qname("a.b.c.") == [".", "c.",
// "b.c.", "a.b.c."].
func SplitQname(qname string) []string {
	qname = CanonicalName(qname)

	if qname == "." {
		return []string{"."}
	}

	labels := strings.Split(strings.TrimSuffix(qname, "."), ".")

	out := make([]string, 0, len(labels)+1)
	out = append(out, ".")

	for i := len(labels) - 1; i >= 0; i-- {
		out = append(out, strings.Join(labels[i:], ".")+".")
	}

	return out
}

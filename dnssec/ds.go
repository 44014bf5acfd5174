package dnssec

import (
	"crypto/sha1" //nolint:gosec // DS digest type 1 is SHA-1 by RFC 4509
	"crypto/sha256"

	"github.com/dnstrust/dnstrust/record"
)

// DigestType identifies the hash algorithm a DS record commits to a
// DNSKEY with (RFC 4509 §2.2).
type DigestType = uint8

const (
	DigestSHA1   DigestType = 1
	DigestSHA256 DigestType = 2
)

// ComputeDigest hashes qname's wire form
// concatenated with the DNSKEY's canonical rdata, under the requested
// digest algorithm. The wire form of qname follows EncodeName exactly,
// including the trailing empty label that results for every name other
// than the root — this is required by RFC 4034 and must not be special
// cased away.
func ComputeDigest(qname string, k record.DNSKEY, digestType DigestType) ([]byte, error) {
	buf := record.EncodeName(qname)
	buf = append(buf, k.CanonicalRdata()...)

	switch digestType {
	case DigestSHA1:
		sum := sha1.Sum(buf) //nolint:gosec
		return sum[:], nil
	case DigestSHA256:
		sum := sha256.Sum256(buf)
		return sum[:], nil
	default:
		return nil, ErrUnsupportedDigest
	}
}

// MatchesDS reports whether k's digest under ds's own DigestType equals
// ds.Digest.
func MatchesDS(qname string, k record.DNSKEY, ds record.DS) (bool, error) {
	digest, err := ComputeDigest(qname, k, ds.DigestType)
	if err != nil {
		return false, err
	}

	if len(digest) != len(ds.Digest) {
		return false, nil
	}

	for i := range digest {
		if digest[i] != ds.Digest[i] {
			return false, nil
		}
	}

	return true, nil
}

package walker

import (
	"context"
	"crypto"
	"crypto/md5" //nolint:gosec // exercising the weak-algorithm warning path
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"math/big"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dnstrust/dnstrust/dnssec"
	"github.com/dnstrust/dnstrust/record"
	"github.com/dnstrust/dnstrust/selector"
)

// fakeQuerier answers canned RRSets keyed by (qname, rdtype), with no real
// network I/O, so the walker's label-by-label decisions can be driven
// deterministically from a test.
type fakeQuerier struct {
	responses map[string]record.RRSet
	errs      map[string]error
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		responses: make(map[string]record.RRSet),
		errs:      make(map[string]error),
	}
}

func fakeKey(qname string, rdtype record.Type) string {
	return fmt.Sprintf("%s/%s", qname, rdtype)
}

func (f *fakeQuerier) set(qname string, rdtype record.Type, set record.RRSet) {
	f.responses[fakeKey(qname, rdtype)] = set
}

func (f *fakeQuerier) fail(qname string, rdtype record.Type, err error) {
	f.errs[fakeKey(qname, rdtype)] = err
}

func (f *fakeQuerier) Query(_ context.Context, qname string, rdtype record.Type, _ bool, _ selector.Resolver) (record.RRSet, error) {
	key := fakeKey(qname, rdtype)

	if err, ok := f.errs[key]; ok {
		return record.RRSet{}, err
	}

	set, ok := f.responses[key]
	if !ok {
		return record.RRSet{}, fmt.Errorf("fakeQuerier: no response programmed for %s", key)
	}

	return set, nil
}

// rsaKeyPair bundles a generated RSA key with the DNSKEY record form used
// to populate fabricated responses, alongside the helpers needed to sign
// an RRSet with it.
type rsaKeyPair struct {
	priv   *rsa.PrivateKey
	dnskey record.DNSKEY
}

func newRSAKeyPair(owner string, flags uint16) rsaKeyPair {
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		panic(err)
	}

	e := big.NewInt(int64(priv.PublicKey.E)).Bytes()
	pub := append([]byte{byte(len(e))}, e...)
	pub = append(pub, priv.PublicKey.N.Bytes()...)

	return rsaKeyPair{
		priv:   priv,
		dnskey: record.NewDNSKEY(owner, flags, 3, dnssec.AlgRSASHA256, pub),
	}
}

// sign produces the RRSIG covering set, signed by this key pair. signer is
// the zone apex owning the key, which for a DS RRset (living in the parent
// zone) differs from set.Owner.
func (k rsaKeyPair) sign(set record.RRSet, signer string, expiration, inception uint32) record.RRSIG {
	sig := record.NewRRSIG(set.Owner, set.Type, dnssec.AlgRSASHA256, 1, 3600,
		expiration, inception, dnssec.KeyTag(k.dnskey), signer, nil)

	message := set.CanonicalMessage(sig)
	digest := sha256.Sum256(message)

	signature, err := rsa.SignPKCS1v15(rand.Reader, k.priv, crypto.SHA256, digest[:])
	if err != nil {
		panic(err)
	}

	return record.NewRRSIG(set.Owner, set.Type, dnssec.AlgRSASHA256, 1, 3600,
		expiration, inception, dnssec.KeyTag(k.dnskey), signer, signature)
}

func dsFor(qname string, k rsaKeyPair) record.DS {
	digest, err := dnssec.ComputeDigest(qname, k.dnskey, dnssec.DigestSHA256)
	if err != nil {
		panic(err)
	}

	return record.NewDS(qname, dnssec.KeyTag(k.dnskey), dnssec.AlgRSASHA256, dnssec.DigestSHA256, digest)
}

func addrOf(ip string) net.IP { return net.ParseIP(ip) }

// signWithAlgorithm signs set with k but under an explicitly chosen
// algorithm number, used to exercise the MD5 weak-algorithm warning path
// (k.dnskey.Algorithm must already be set to match).
func signWithAlgorithm(k rsaKeyPair, set record.RRSet, signer string, algorithm uint8) record.RRSIG {
	sig := record.NewRRSIG(set.Owner, set.Type, algorithm, 1, 3600, 2000000000, 1,
		dnssec.KeyTag(k.dnskey), signer, nil)

	message := set.CanonicalMessage(sig)

	var (
		hashType crypto.Hash
		digest   []byte
	)

	switch algorithm {
	case dnssec.AlgRSAMD5:
		hashType = crypto.MD5
		sum := md5.Sum(message) //nolint:gosec
		digest = sum[:]
	default:
		hashType = crypto.SHA256
		sum := sha256.Sum256(message)
		digest = sum[:]
	}

	signature, err := rsa.SignPKCS1v15(rand.Reader, k.priv, hashType, digest)
	if err != nil {
		panic(err)
	}

	return record.NewRRSIG(set.Owner, set.Type, algorithm, 1, 3600, 2000000000, 1,
		dnssec.KeyTag(k.dnskey), signer, signature)
}

func mustDigest(t *testing.T, qname string, k record.DNSKEY) []byte {
	t.Helper()

	digest, err := dnssec.ComputeDigest(qname, k, dnssec.DigestSHA256)
	require.NoError(t, err)

	return digest
}

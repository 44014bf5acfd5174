package dnssec

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnstrust/dnstrust/record"
)

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b
	}

	out := make([]byte, 32)
	copy(out[32-len(b):], b)

	return out
}

// A self-signed DNSKEY RRSet verifies by finding the signer inside the
// RRSet itself, without any prior chain entry.
func TestVerifyRRSetSelfSignedDNSKEY(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	pubBytes := append(leftPad32(priv.PublicKey.X.Bytes()), leftPad32(priv.PublicKey.Y.Bytes())...)
	ksk := record.NewDNSKEY("example.", 257, 3, AlgECDSAP256SHA256, pubBytes)
	tag := KeyTag(ksk)

	set := record.RRSet{Owner: "example.", Type: record.TypeDNSKEY, Records: []record.Record{ksk}}

	sig := record.NewRRSIG("example.", record.TypeDNSKEY, AlgECDSAP256SHA256, 1, 3600, 2000000000, 1000000000, tag, "example.", nil)
	message := set.CanonicalMessage(sig)
	digest := sha256.Sum256(message)

	r, s, err := ecdsa.Sign(rand.Reader, priv, digest[:])
	require.NoError(t, err)

	sig.Signature = append(leftPad32(r.Bytes()), leftPad32(s.Bytes())...)
	set.RRSIGs = []record.RRSIG{sig}

	chain := NewChainOfTrust()

	result, err := VerifyRRSet(set, chain)
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, tag, result.MatchedTag)
}

func TestVerifyRRSetNoRRSIG(t *testing.T) {
	set := record.RRSet{Owner: "example.", Type: record.TypeA}

	_, err := VerifyRRSet(set, NewChainOfTrust())
	assert.ErrorIs(t, err, ErrCrypto)
}

func TestVerifyRRSetUnknownKeyTag(t *testing.T) {
	sig := record.NewRRSIG("example.", record.TypeA, AlgRSASHA256, 1, 3600, 200, 100, 4242, "example.", []byte("sig"))
	set := record.RRSet{Owner: "example.", Type: record.TypeA, RRSIGs: []record.RRSIG{sig}}

	_, err := VerifyRRSet(set, NewChainOfTrust())
	assert.ErrorIs(t, err, ErrKeyTagNotInChain)
}

func TestBindKSKToDSNoCandidates(t *testing.T) {
	k := record.NewDNSKEY("example.", 257, 3, 8, []byte{1, 2, 3, 4})

	ok, err := BindKSKToDS("example.", k, NewChainOfTrust())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBindKSKToDSMatches(t *testing.T) {
	k := record.NewDNSKEY("example.", 257, 3, 8, []byte{1, 2, 3, 4})

	digest, err := ComputeDigest("example.", k, DigestSHA256)
	require.NoError(t, err)

	chain := NewChainOfTrust()
	chain.AddDS(record.NewDS("example.", KeyTag(k), 8, DigestSHA256, digest))

	ok, err := BindKSKToDS("example.", k, chain)
	require.NoError(t, err)
	assert.True(t, ok)
}

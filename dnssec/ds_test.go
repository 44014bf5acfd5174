package dnssec

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnstrust/dnstrust/record"
)

func fixedDNSKEY() record.DNSKEY {
	return record.NewDNSKEY("example.", 257, 3, 8, []byte{1, 2, 3, 4, 5, 6, 7, 8})
}

// Fixed digest vectors for a deterministic DNSKEY, precomputed independently
// against the same wire-encoding rule as record.EncodeName + compute_sig.
func TestComputeDigestFixedVectors(t *testing.T) {
	k := fixedDNSKEY()

	sha1Digest, err := ComputeDigest("example.", k, DigestSHA1)
	require.NoError(t, err)
	assert.Equal(t, "e9fe9902faacc5fb4d2b3fbb85145f03a661160d", hex.EncodeToString(sha1Digest))

	sha256Digest, err := ComputeDigest("example.", k, DigestSHA256)
	require.NoError(t, err)
	assert.Equal(t, "1768105b855d470d19115efabaf0a9d00b20540e6df0c64b0a06de240daafd08", hex.EncodeToString(sha256Digest))
}

func TestComputeDigestUnsupportedType(t *testing.T) {
	_, err := ComputeDigest("example.", fixedDNSKEY(), 99)
	assert.ErrorIs(t, err, ErrUnsupportedDigest)
}

func TestMatchesDS(t *testing.T) {
	k := fixedDNSKEY()

	digest, err := ComputeDigest("example.", k, DigestSHA256)
	require.NoError(t, err)

	ds := record.NewDS("example.", KeyTag(k), 8, DigestSHA256, digest)

	ok, err := MatchesDS("example.", k, ds)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatchesDSFailsOnBitFlip(t *testing.T) {
	k := fixedDNSKEY()

	digest, err := ComputeDigest("example.", k, DigestSHA256)
	require.NoError(t, err)

	flipped := append([]byte(nil), digest...)
	flipped[0] ^= 0xFF

	ds := record.NewDS("example.", KeyTag(k), 8, DigestSHA256, flipped)

	ok, err := MatchesDS("example.", k, ds)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRootAnchorsHardcoded(t *testing.T) {
	chain := NewChainOfTrust()

	ds19036 := chain.GetDS(19036)
	require.Len(t, ds19036, 1)
	assert.Equal(t, "49aac11d7b6f6446702e54a1607371607a1a41855200fd2ce1cdde32f24e8fb5", hex.EncodeToString(ds19036[0].Digest))

	ds20326 := chain.GetDS(20326)
	require.Len(t, ds20326, 1)
	assert.Equal(t, "e06d44b80b8f1d39a95c0b0d7c65d08458e880409bbc683457104237c7f8ec8d", hex.EncodeToString(ds20326[0].Digest))
}

package dnssec

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnstrust/dnstrust/record"
)

// Fixed key-tag vector, precomputed independently from the RFC 4034
// Appendix B.1 "example." KSK bytes.
func TestKeyTagFixedVector(t *testing.T) {
	pub, err := base64.StdEncoding.DecodeString(
		"AQPSKmynfzW4kyBv015MUG2DeIQ3Cbl+BBZH4b/0PY1kxkmvHjcZc8nokfzj31Ga" +
			"jIQKY+5CptLr3buXA10hWqTkF7j1RQo2pe7pJz7LJzaCCZJwOGhOfq8wqpdFhQ/u" +
			"9o+9BGRoD6l5mGmtnG/TShjLofFoBwGEhTRZUTNfx0nlvpw==")
	require.NoError(t, err)

	k := record.NewDNSKEY("example.", 257, 3, 5, pub)

	assert.Equal(t, uint16(16671), KeyTag(k))
}

func TestKeyTagChangesWithKeyBytes(t *testing.T) {
	k1 := record.NewDNSKEY("example.", 256, 3, 8, []byte{1, 2, 3, 4})
	k2 := record.NewDNSKEY("example.", 256, 3, 8, []byte{1, 2, 3, 5})

	assert.NotEqual(t, KeyTag(k1), KeyTag(k2))
}

func TestKeyTagOddLengthRdata(t *testing.T) {
	// Exercises the odd-length-RDATA padding branch of the fold.
	k := record.NewDNSKEY("example.", 256, 3, 8, []byte{1, 2, 3})
	assert.NotPanics(t, func() { KeyTag(k) })
}

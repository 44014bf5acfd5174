package dnssec

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/md5" //nolint:gosec // algorithm 1 (RSAMD5) is explicitly in scope for interop
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // algorithms 5,7 hash with SHA-1
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"math/big"

	"github.com/dnstrust/dnstrust/record"
)

// Algorithm is a DNSSEC signing algorithm number (RFC 8624 registry).
type Algorithm = uint8

const (
	AlgRSAMD5     Algorithm = 1
	AlgRSASHA1    Algorithm = 5
	AlgRSASHA1NSEC3 Algorithm = 7
	AlgRSASHA256  Algorithm = 8
	AlgRSASHA512  Algorithm = 10
	AlgECDSAP256SHA256 Algorithm = 13
	AlgECDSAP384SHA384 Algorithm = 14
)

// VerifySignature checks signature against message using the public key
// material in k. It never panics: malformed key or signature
// bytes are reported as ErrCrypto, and algorithms outside the implemented
// set are reported as ErrUnsupportedAlgorithm.
func VerifySignature(k record.DNSKEY, message, signature []byte) (bool, error) {
	switch k.Algorithm {
	case AlgRSAMD5, AlgRSASHA1, AlgRSASHA1NSEC3, AlgRSASHA256, AlgRSASHA512:
		return verifyRSA(k, message, signature)
	case AlgECDSAP256SHA256, AlgECDSAP384SHA384:
		return verifyECDSA(k, message, signature)
	default:
		return false, fmt.Errorf("%w: algorithm %d", ErrUnsupportedAlgorithm, k.Algorithm)
	}
}

func verifyRSA(k record.DNSKEY, message, signature []byte) (bool, error) {
	pub, err := parseRSAPublicKey(k.PublicKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCrypto, err)
	}

	var hashType crypto.Hash

	var digest []byte

	switch k.Algorithm {
	case AlgRSAMD5:
		hashType = crypto.MD5
		sum := md5.Sum(message) //nolint:gosec
		digest = sum[:]
	case AlgRSASHA1, AlgRSASHA1NSEC3:
		hashType = crypto.SHA1
		sum := sha1.Sum(message) //nolint:gosec
		digest = sum[:]
	case AlgRSASHA256:
		hashType = crypto.SHA256
		sum := sha256.Sum256(message)
		digest = sum[:]
	case AlgRSASHA512:
		hashType = crypto.SHA512
		sum := sha512.Sum512(message)
		digest = sum[:]
	}

	if err := rsa.VerifyPKCS1v15(pub, hashType, digest, signature); err != nil {
		return false, nil
	}

	return true, nil
}

// parseRSAPublicKey decodes the RFC 3110 wire format: a one-octet exponent
// length (or, if zero, a two-octet length following it), the exponent, and
// the modulus filling the remainder.
func parseRSAPublicKey(buf []byte) (*rsa.PublicKey, error) {
	if len(buf) < 1 {
		return nil, fmt.Errorf("public key too short")
	}

	expLen := int(buf[0])
	offset := 1

	if expLen == 0 {
		if len(buf) < 3 {
			return nil, fmt.Errorf("public key too short for extended exponent length")
		}

		expLen = int(buf[1])<<8 | int(buf[2])
		offset = 3
	}

	if len(buf) < offset+expLen {
		return nil, fmt.Errorf("public key truncated before exponent")
	}

	exponent := new(big.Int).SetBytes(buf[offset : offset+expLen])
	modulus := new(big.Int).SetBytes(buf[offset+expLen:])

	if modulus.Sign() == 0 {
		return nil, fmt.Errorf("empty modulus")
	}

	return &rsa.PublicKey{N: modulus, E: int(exponent.Int64())}, nil
}

func verifyECDSA(k record.DNSKEY, message, signature []byte) (bool, error) {
	curve, hashType, coordSize, err := ecdsaParams(k.Algorithm)
	if err != nil {
		return false, err
	}

	if len(k.PublicKey) != 2*coordSize {
		return false, fmt.Errorf("%w: unexpected ECDSA key length %d", ErrCrypto, len(k.PublicKey))
	}

	if len(signature) != 2*coordSize {
		// Wrong signature length for this algorithm: fail without calling
		// the primitive.
		return false, nil
	}

	x := new(big.Int).SetBytes(k.PublicKey[:coordSize])
	y := new(big.Int).SetBytes(k.PublicKey[coordSize:])

	pub := &ecdsa.PublicKey{Curve: curve, X: x, Y: y}

	r := new(big.Int).SetBytes(signature[:coordSize])
	s := new(big.Int).SetBytes(signature[coordSize:])

	var digest []byte

	switch hashType {
	case crypto.SHA256:
		sum := sha256.Sum256(message)
		digest = sum[:]
	case crypto.SHA384:
		sum := sha512.Sum384(message)
		digest = sum[:]
	}

	return ecdsa.Verify(pub, digest, r, s), nil
}

func ecdsaParams(alg Algorithm) (elliptic.Curve, crypto.Hash, int, error) {
	switch alg {
	case AlgECDSAP256SHA256:
		return elliptic.P256(), crypto.SHA256, 32, nil
	case AlgECDSAP384SHA384:
		return elliptic.P384(), crypto.SHA384, 48, nil
	default:
		return nil, 0, 0, fmt.Errorf("%w: algorithm %d", ErrUnsupportedAlgorithm, alg)
	}
}

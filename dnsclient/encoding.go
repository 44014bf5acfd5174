package dnsclient

import (
	"encoding/base64"
	"errors"
)

func base64Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

func hexDecode(s string) ([]byte, error) {
	buf := make([]byte, len(s)/2)

	for i := range buf {
		hi, err := hexNibble(s[i*2])
		if err != nil {
			return nil, err
		}

		lo, err := hexNibble(s[i*2+1])
		if err != nil {
			return nil, err
		}

		buf[i] = hi<<4 | lo
	}

	return buf, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, errInvalidHex
	}
}

var errInvalidHex = errors.New("invalid hex digit")

package cbor

import (
	"encoding/base32"
	"encoding/base64"
	"strings"
)

// atjson is a text-tree mirror of DAG-CBOR in which byte strings become
// {"$bytes": "<base64-nopad>"} and links become {"$link": "<b-multibase-base32>"}.
// These two alphabets are only ever touched when atjson mode is engaged.

const base32LowerAlphabet = "abcdefghijklmnopqrstuvwxyz234567"

var base32Nopad = base32.NewEncoding(base32LowerAlphabet).WithPadding(base32.NoPadding)

// encodeBase64Nopad returns the unpadded standard base64 encoding of data.
func encodeBase64Nopad(data []byte) string {
	return base64.RawStdEncoding.EncodeToString(data)
}

// decodeBase64Lenient decodes s as unpadded (optionally '='-padded) base64.
// Stray low bits in the final quantum are tolerated; only the alphabet and
// length are validated. This is intentionally looser than
// decodeBase32Multibase, which rejects them.
func decodeBase64Lenient(s string) ([]byte, error) {
	trimmed := strings.TrimRight(s, "=")
	switch len(trimmed) % 4 {
	case 0, 2, 3:
	default:
		return nil, ErrInvalidBase64
	}
	data, err := base64.RawStdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, ErrInvalidBase64
	}
	return data, nil
}

// encodeBase32Multibase returns the 'b'-prefixed, unpadded, lowercase base32
// multibase encoding of data.
func encodeBase32Multibase(data []byte) string {
	return "b" + base32Nopad.EncodeToString(data)
}

// decodeBase32Multibase decodes a 'b'-prefixed multibase base32 string,
// strictly rejecting non-zero padding bits in the terminal group (unlike
// decodeBase64Lenient). A string that decodes but does not re-encode to
// itself carries stray low bits and gets ErrNonCanonicalBase32, distinct
// from the ErrInvalidBase32 of a bad alphabet or length.
func decodeBase32Multibase(s string) ([]byte, error) {
	if len(s) < 1 || s[0] != 'b' {
		return nil, ErrInvalidBase32
	}
	body := s[1:]
	switch len(body) % 8 {
	case 0, 2, 4, 5, 7:
	default:
		return nil, ErrInvalidBase32
	}

	data, err := base32Nopad.DecodeString(body)
	if err != nil {
		return nil, ErrInvalidBase32
	}
	if base32Nopad.EncodeToString(data) != body {
		return nil, ErrNonCanonicalBase32
	}
	return data, nil
}

package cbor

import "errors"

// Error kinds returned by Decode and Encode. Each is a distinct sentinel so
// callers can branch with errors.Is; Encode wraps these with positional
// context but never replaces them, and Decode returns them unwrapped.
var (
	ErrTruncatedInput              = errors.New("dagcbor: truncated input")
	ErrNonMinimalInteger           = errors.New("dagcbor: integer is not minimally encoded")
	ErrInvalidArgument             = errors.New("dagcbor: reserved argument encoding")
	ErrIndefiniteLengthUnsupported = errors.New("dagcbor: indefinite-length items are not supported")
	ErrInvalidSimpleValue          = errors.New("dagcbor: invalid simple value")
	ErrInvalidFloatWidth           = errors.New("dagcbor: only 64-bit floats are supported")
	ErrNonFiniteFloat              = errors.New("dagcbor: NaN and infinite floats are not allowed")
	ErrInvalidUtf8                 = errors.New("dagcbor: text string is not valid UTF-8")
	ErrUnsupportedTag              = errors.New("dagcbor: only tag 42 (CID) is supported")
	ErrInvalidCidFraming           = errors.New("dagcbor: invalid CID framing")
	ErrNonCanonicalMapOrder        = errors.New("dagcbor: map keys are not in strictly increasing canonical order")
	ErrInvalidMapKeyType           = errors.New("dagcbor: map keys must be text strings")
	ErrIntegerOutOfRange           = errors.New("dagcbor: integer outside [-2^64, 2^64-1]")
	ErrUnsupportedType             = errors.New("dagcbor: unsupported value type")
	ErrUnexpectedBytes             = errors.New("dagcbor: raw byte strings are not allowed in atjson mode")
	ErrUnexpectedLink              = errors.New("dagcbor: raw links are not allowed in atjson mode")
	ErrInvalidBase64               = errors.New("dagcbor: invalid base64")
	ErrInvalidBase32               = errors.New("dagcbor: invalid base32")
	ErrNonCanonicalBase32          = errors.New("dagcbor: non-canonical base32 (stray low bits)")
	ErrAllocationFailure           = errors.New("dagcbor: allocation failure")

	// ErrTrailingBytes is returned by DecodeExact, a convenience wrapper
	// around Decode that enforces full buffer consumption; Decode itself
	// never returns it, since the caller decides whether trailing bytes
	// are acceptable.
	ErrTrailingBytes = errors.New("dagcbor: trailing bytes after top-level item")
)

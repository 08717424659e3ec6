package cbor

import (
	"encoding/binary"
	"math"
	"math/big"
	"unicode/utf8"
)

// containerKind distinguishes the two container shapes a token can open.
type containerKind int

const (
	containerArray containerKind = iota
	containerMap
)

// token is the result of parsing exactly one CBOR head plus any inline
// payload. A finished scalar, string, or link sets value and opened false;
// an array or map header sets opened true and count to the number of child
// items (key/value pairs, for a map).
type token struct {
	value  any
	opened bool
	kind   containerKind
	count  uint64
}

// tokenReader parses one CBOR token at a time off a fixed buffer. It never
// looks beyond the bytes a single item needs.
type tokenReader struct {
	buf         []byte
	pos         int
	atjson      bool
	linkFactory LinkFactory
}

func (r *tokenReader) remaining() int { return len(r.buf) - r.pos }

func (r *tokenReader) ensure(n int) error {
	if n < 0 || n > r.remaining() {
		return ErrTruncatedInput
	}
	return nil
}

func (r *tokenReader) readByte() (byte, error) {
	if err := r.ensure(1); err != nil {
		return 0, err
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *tokenReader) readN(n int) ([]byte, error) {
	if err := r.ensure(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// readHead reads the single head byte and splits it into major type and info.
func (r *tokenReader) readHead() (major, info byte, err error) {
	b, err := r.readByte()
	if err != nil {
		return 0, 0, err
	}
	return b >> 5, b & 0x1f, nil
}

func (r *tokenReader) readArg(info byte) (uint64, error) {
	arg, n, err := readArgument(info, r.buf[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return arg, nil
}

func (r *tokenReader) readFloat() (float64, error) {
	b, err := r.readN(8)
	if err != nil {
		return 0, err
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(b))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFiniteFloat
	}
	return v, nil
}

func (r *tokenReader) readByteString(length uint64) ([]byte, error) {
	if length > uint64(r.remaining()) {
		return nil, ErrTruncatedInput
	}
	raw, err := r.readN(int(length))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (r *tokenReader) readTextString(length uint64) (string, error) {
	raw, err := r.readByteString(length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUtf8
	}
	return string(raw), nil
}

// readKey parses one token that must be a text string, for use as a map
// key. It refuses every other major type outright rather than delegating
// to next.
func (r *tokenReader) readKey() (string, error) {
	major, info, err := r.readHead()
	if err != nil {
		return "", err
	}
	if major != 3 {
		return "", ErrInvalidMapKeyType
	}
	length, err := r.readArg(info)
	if err != nil {
		return "", err
	}
	return r.readTextString(length)
}

// readCidTail reads a tag-42 payload: a byte string of length >= 1 whose
// first byte is 0x00, returning the bytes after that prefix ("tail").
func (r *tokenReader) readCidTail() ([]byte, error) {
	major, info, err := r.readHead()
	if err != nil {
		return nil, err
	}
	if major != 2 {
		return nil, ErrInvalidCidFraming
	}
	length, err := r.readArg(info)
	if err != nil {
		return nil, err
	}
	if length < 1 {
		return nil, ErrInvalidCidFraming
	}
	body, err := r.readByteString(length)
	if err != nil {
		return nil, err
	}
	if body[0] != 0x00 {
		return nil, ErrInvalidCidFraming
	}
	return body[1:], nil
}

// next parses exactly one token: a finished value, or a container header
// ("opened") carrying the remaining child count.
func (r *tokenReader) next() (token, error) {
	major, info, err := r.readHead()
	if err != nil {
		return token{}, err
	}

	if major == 7 {
		return r.nextSimpleOrFloat(info)
	}

	if major == 4 || major == 5 {
		arg, err := r.readArg(info)
		if err != nil {
			return token{}, err
		}
		if arg > uint64(r.remaining()) {
			return token{}, ErrTruncatedInput
		}
		kind := containerArray
		if major == 5 {
			kind = containerMap
		}
		return token{opened: true, kind: kind, count: arg}, nil
	}

	if major == 6 {
		return r.nextTag(info)
	}

	arg, err := r.readArg(info)
	if err != nil {
		return token{}, err
	}

	switch major {
	case 0, 1:
		return token{value: r.integerFromArg(major, arg)}, nil
	case 2:
		raw, err := r.readByteString(arg)
		if err != nil {
			return token{}, err
		}
		if r.atjson {
			return token{value: map[string]any{"$bytes": encodeBase64Nopad(raw)}}, nil
		}
		return token{value: raw}, nil
	case 3:
		s, err := r.readTextString(arg)
		if err != nil {
			return token{}, err
		}
		return token{value: s}, nil
	default:
		return token{}, ErrInvalidArgument
	}
}

// integerFromArg converts a decoded major-0/1 argument into the abstract
// Integer value: plain uint64 for nonnegative values, int64 for negative
// values representable in it, and *big.Int for the remaining negative range
// down to -2^64 (there is no native Go integer type spanning [-2^64, -2^63-1]).
func (r *tokenReader) integerFromArg(major byte, arg uint64) any {
	if major == 0 {
		return arg
	}
	if arg <= math.MaxInt64 {
		return -1 - int64(arg)
	}
	v := new(big.Int).SetUint64(arg)
	v.Add(v, big.NewInt(1))
	v.Neg(v)
	return v
}

func (r *tokenReader) nextSimpleOrFloat(info byte) (token, error) {
	switch info {
	case 20:
		return token{value: false}, nil
	case 21:
		return token{value: true}, nil
	case 22:
		return token{value: nil}, nil
	case 23, 24:
		return token{}, ErrInvalidSimpleValue
	case 25, 26:
		return token{}, ErrInvalidFloatWidth
	case 27:
		f, err := r.readFloat()
		if err != nil {
			return token{}, err
		}
		return token{value: f}, nil
	default:
		return token{}, ErrInvalidArgument
	}
}

func (r *tokenReader) nextTag(info byte) (token, error) {
	tag, err := r.readArg(info)
	if err != nil {
		return token{}, err
	}
	if tag != 42 {
		return token{}, ErrUnsupportedTag
	}
	tail, err := r.readCidTail()
	if err != nil {
		return token{}, err
	}
	if r.atjson {
		return token{value: map[string]any{"$link": encodeBase32Multibase(tail)}}, nil
	}
	if r.linkFactory == nil {
		return token{}, ErrInvalidCidFraming
	}
	link, err := r.linkFactory(tail)
	if err != nil {
		return token{}, err
	}
	return token{value: link}, nil
}

package cbor

import (
	"encoding/binary"
	"math"
	"math/big"

	pkgerrors "github.com/pkg/errors"
)

// writer is the encoder's single owned output buffer, grown with append.
type writer struct {
	buf []byte
}

func (w *writer) writeHead(mt byte, arg uint64) {
	w.buf = appendTypeArgument(w.buf, mt, arg)
}

func (w *writer) writeByte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) writeRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) writeFloat64(v float64) {
	w.writeByte(0xe0 | 27)
	w.buf = binary.BigEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// encFrame is one level of the encoder's explicit stack. Either array is set
// (walking a sequence in order) or keys+object are set (walking a mapping in
// the canonical order fixed at push time). Driving the walk from an explicit
// stack instead of recursion bounds stack usage on deeply nested input.
type encFrame struct {
	array  []any
	keys   []string
	object map[string]any
	index  int
	next   *encFrame
}

type encodeState struct {
	w      writer
	stack  *encFrame
	atjson bool
}

// run walks value through the stack machine. The synthetic root frame is an
// array of one element, symmetric with the decoder's synthetic root.
func (e *encodeState) run(value any) error {
	e.stack = &encFrame{array: []any{value}}

	for e.stack != nil {
		frame := e.stack

		if frame.object != nil || frame.keys != nil {
			if frame.index >= len(frame.keys) {
				e.stack = frame.next
				continue
			}
			key := frame.keys[frame.index]
			frame.index++
			e.w.writeHead(3, uint64(len(key)))
			e.w.writeRaw([]byte(key))
			if err := e.visit(frame.object[key]); err != nil {
				return pkgerrors.Wrapf(err, "map key %q", key)
			}
			continue
		}

		if frame.index >= len(frame.array) {
			e.stack = frame.next
			continue
		}
		idx := frame.index
		v := frame.array[idx]
		frame.index++
		if err := e.visit(v); err != nil {
			return pkgerrors.Wrapf(err, "array element %d", idx)
		}
	}

	return nil
}

// visit emits value's head (and, for scalars, its body) and, for containers,
// pushes a new frame for run to continue with on its next iteration.
func (e *encodeState) visit(value any) error {
	switch v := value.(type) {
	case nil:
		e.w.writeByte(0xf6)
		return nil
	case bool:
		if v {
			e.w.writeByte(0xf5)
		} else {
			e.w.writeByte(0xf4)
		}
		return nil
	case string:
		e.w.writeHead(3, uint64(len(v)))
		e.w.writeRaw([]byte(v))
		return nil
	case []byte:
		if e.atjson {
			return ErrUnexpectedBytes
		}
		e.w.writeHead(2, uint64(len(v)))
		e.w.writeRaw(v)
		return nil
	case float32:
		return e.visitFloat(float64(v))
	case float64:
		return e.visitFloat(v)
	case int:
		return e.visitSignedInt(int64(v))
	case int8:
		return e.visitSignedInt(int64(v))
	case int16:
		return e.visitSignedInt(int64(v))
	case int32:
		return e.visitSignedInt(int64(v))
	case int64:
		return e.visitSignedInt(v)
	case uint:
		e.w.writeHead(0, uint64(v))
		return nil
	case uint8:
		e.w.writeHead(0, uint64(v))
		return nil
	case uint16:
		e.w.writeHead(0, uint64(v))
		return nil
	case uint32:
		e.w.writeHead(0, uint64(v))
		return nil
	case uint64:
		e.w.writeHead(0, v)
		return nil
	case *big.Int:
		return e.visitBigInt(v)
	case Link:
		if e.atjson {
			return ErrUnexpectedLink
		}
		return e.visitLink(v)
	case []any:
		e.w.writeHead(4, uint64(len(v)))
		e.stack = &encFrame{array: v, next: e.stack}
		return nil
	case map[string]any:
		return e.visitMap(v)
	default:
		return ErrUnsupportedType
	}
}

func (e *encodeState) visitFloat(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrNonFiniteFloat
	}
	e.w.writeFloat64(v)
	return nil
}

func (e *encodeState) visitSignedInt(v int64) error {
	if v >= 0 {
		e.w.writeHead(0, uint64(v))
	} else {
		e.w.writeHead(1, uint64(-1-v))
	}
	return nil
}

var (
	maxUint64Big = new(big.Int).SetUint64(math.MaxUint64)
	minInt65Big  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 64)) // -2^64
)

// visitBigInt encodes the part of the Integer range that doesn't fit any
// native Go integer type: [-2^64, -2^63-1]. See integerFromArg in token.go
// for the matching decode-side fallback.
func (e *encodeState) visitBigInt(v *big.Int) error {
	if v.Sign() >= 0 {
		if v.Cmp(maxUint64Big) > 0 {
			return ErrIntegerOutOfRange
		}
		e.w.writeHead(0, v.Uint64())
		return nil
	}
	if v.Cmp(minInt65Big) < 0 {
		return ErrIntegerOutOfRange
	}
	arg := new(big.Int).Neg(v)
	arg.Sub(arg, big.NewInt(1))
	e.w.writeHead(1, arg.Uint64())
	return nil
}

func (e *encodeState) visitLink(link Link) error {
	raw := link.LinkBytes()
	e.w.writeHead(6, 42)
	e.w.writeHead(2, uint64(len(raw))+1)
	e.w.writeByte(0x00)
	e.w.writeRaw(raw)
	return nil
}

// visitMap dispatches atjson's two wrapper shapes ({"$link": ...},
// {"$bytes": ...}) before falling through to a canonical sorted map.
func (e *encodeState) visitMap(m map[string]any) error {
	if e.atjson {
		if v, ok := singleStringKey(m, "$link"); ok {
			// The $link string is the multibase encoding of the CID bytes
			// with the leading 0x00 byte stripped; the wire form always
			// carries that 0x00 byte in front of the CID, so it is added
			// back here to match what decode strips off.
			raw, err := decodeBase32Multibase(v)
			if err != nil {
				return err
			}
			e.w.writeHead(6, 42)
			e.w.writeHead(2, uint64(len(raw))+1)
			e.w.writeByte(0x00)
			e.w.writeRaw(raw)
			return nil
		}
		if v, ok := singleStringKey(m, "$bytes"); ok {
			raw, err := decodeBase64Lenient(v)
			if err != nil {
				return err
			}
			e.w.writeHead(2, uint64(len(raw)))
			e.w.writeRaw(raw)
			return nil
		}
	}

	keys := sortedKeys(m)
	e.w.writeHead(5, uint64(len(m)))
	e.stack = &encFrame{keys: keys, object: m, next: e.stack}
	return nil
}

func singleStringKey(m map[string]any, key string) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Encode serializes value as strict, canonical DAG-CBOR. Map keys are sorted
// on entry regardless of the input map's (nonexistent) iteration order, so
// two value trees that are equal as abstract values always produce
// byte-identical output.
//
// WithAtjson switches to the atjson mirror: []byte and Link values are
// rejected (ErrUnexpectedBytes / ErrUnexpectedLink) since atjson represents
// them as {"$bytes": ...} / {"$link": ...} maps instead.
func Encode(value any, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	e := &encodeState{atjson: o.atjson}
	if err := e.run(value); err != nil {
		o.logger.V(1).Info("dagcbor encode failed", "error", err.Error())
		return nil, pkgerrors.Wrap(err, "dagcbor encode failed")
	}
	return e.w.buf, nil
}

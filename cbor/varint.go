package cbor

import "encoding/binary"

// appendTypeArgument appends the canonical CBOR head for major type mt
// carrying argument arg to buf and returns the grown slice: the inline 5-bit
// form when arg < 24, otherwise the smallest of the 1/2/4/8-byte
// big-endian widths whose unsigned range holds arg.
func appendTypeArgument(buf []byte, mt byte, arg uint64) []byte {
	switch {
	case arg < 24:
		return append(buf, mt<<5|byte(arg))
	case arg < 1<<8:
		return append(buf, mt<<5|24, byte(arg))
	case arg < 1<<16:
		buf = append(buf, mt<<5|25)
		return binary.BigEndian.AppendUint16(buf, uint16(arg))
	case arg < 1<<32:
		buf = append(buf, mt<<5|26)
		return binary.BigEndian.AppendUint32(buf, uint32(arg))
	default:
		buf = append(buf, mt<<5|27)
		return binary.BigEndian.AppendUint64(buf, arg)
	}
}

// readArgument decodes the argument that follows a head byte carrying the
// given 5-bit info field, enforcing minimal-width encoding. It returns the
// decoded argument and the number of additional bytes consumed from buf.
func readArgument(info byte, buf []byte) (arg uint64, consumed int, err error) {
	if info < 24 {
		return uint64(info), 0, nil
	}

	switch info {
	case 24:
		if len(buf) < 1 {
			return 0, 0, ErrTruncatedInput
		}
		v := uint64(buf[0])
		if v < 24 {
			return 0, 0, ErrNonMinimalInteger
		}
		return v, 1, nil
	case 25:
		if len(buf) < 2 {
			return 0, 0, ErrTruncatedInput
		}
		v := uint64(binary.BigEndian.Uint16(buf))
		if v < 1<<8 {
			return 0, 0, ErrNonMinimalInteger
		}
		return v, 2, nil
	case 26:
		if len(buf) < 4 {
			return 0, 0, ErrTruncatedInput
		}
		v := uint64(binary.BigEndian.Uint32(buf))
		if v < 1<<16 {
			return 0, 0, ErrNonMinimalInteger
		}
		return v, 4, nil
	case 27:
		if len(buf) < 8 {
			return 0, 0, ErrTruncatedInput
		}
		v := binary.BigEndian.Uint64(buf)
		if v < 1<<32 {
			return 0, 0, ErrNonMinimalInteger
		}
		return v, 8, nil
	case 28, 29, 30:
		return 0, 0, ErrInvalidArgument
	case 31:
		return 0, 0, ErrIndefiniteLengthUnsupported
	default:
		return 0, 0, ErrInvalidArgument
	}
}

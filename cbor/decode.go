package cbor

// parseFrame is one level of the decoder's explicit stack: each frame owns
// the array or map under construction and, for maps, the previous key's
// bytes for the canonical ordering check.
type parseFrame struct {
	kind         containerKind
	array        []any
	object       map[string]any
	remaining    uint64
	pendingKey   *string
	havePrevKey  bool
	prevKeyBytes string
	next         *parseFrame
}

// decodeState runs the decoder driver: it feeds tokens from a tokenReader
// into a growable stack of parseFrames, threading through atjson
// translation and the canonical-order check shared with the encoder via
// compareKeys.
type decodeState struct {
	r     *tokenReader
	stack *parseFrame
}

// run drives the stack machine to completion and returns the single
// top-level value. The synthetic root frame sidesteps special-casing the
// very first token: it is an array of length 1 whose sole child is the
// actual result.
func (d *decodeState) run() (any, error) {
	d.stack = &parseFrame{kind: containerArray, array: make([]any, 0, 1), remaining: 1}

	for {
		if d.stack.remaining == 0 {
			if d.stack.next == nil {
				return d.stack.array[0], nil
			}
			if err := d.settle(); err != nil {
				return nil, err
			}
			continue
		}

		if d.stack.kind == containerMap && d.stack.pendingKey == nil {
			key, err := d.r.readKey()
			if err != nil {
				return nil, err
			}
			if d.stack.havePrevKey {
				cmp := compareKeys(key, d.stack.prevKeyBytes)
				if cmp <= 0 {
					return nil, ErrNonCanonicalMapOrder
				}
			}
			d.stack.prevKeyBytes = key
			d.stack.havePrevKey = true
			d.stack.pendingKey = &key
			continue
		}

		tok, err := d.r.next()
		if err != nil {
			return nil, err
		}

		if tok.opened {
			d.push(tok)
			continue
		}

		d.place(tok.value)
	}
}

// push opens a new container frame for an array or map header just read.
func (d *decodeState) push(tok token) {
	frame := &parseFrame{kind: tok.kind, next: d.stack}
	if tok.kind == containerArray {
		frame.array = make([]any, 0, tok.count)
		frame.remaining = tok.count
	} else {
		frame.object = make(map[string]any, tok.count)
		frame.remaining = tok.count // one decrement per completed key/value pair
	}
	d.stack = frame
}

// place stores a finished value into the current frame (an array slot, or
// the value half of a map pair) and decrements its remaining count. When a
// frame with no remaining children is itself the value just placed into its
// parent, settle performs that placement instead.
func (d *decodeState) place(value any) {
	if d.stack.kind == containerArray {
		d.stack.array = append(d.stack.array, value)
	} else {
		d.stack.object[*d.stack.pendingKey] = value
		d.stack.pendingKey = nil
	}
	d.stack.remaining--
}

// settle pops a finished container frame and places its assembled value into
// the parent frame, exactly as place does for a scalar.
func (d *decodeState) settle() error {
	var value any
	if d.stack.kind == containerArray {
		value = d.stack.array
	} else {
		value = d.stack.object
	}
	d.stack = d.stack.next
	d.place(value)
	return nil
}

// Decode parses exactly one top-level DAG-CBOR item from the front of buf
// and returns the number of bytes it consumed. The caller decides whether
// consumed == len(buf) is required; use DecodeExact to enforce that.
//
// WithLinkFactory supplies the callback used to turn tag-42 payloads into
// Link values; WithAtjson switches to the atjson mirror, in which links and
// byte strings decode to {"$link": ...} / {"$bytes": ...} maps instead.
func Decode(buf []byte, opts ...Option) (value any, consumed int, err error) {
	if len(buf) == 0 {
		return nil, 0, ErrTruncatedInput
	}
	o := newOptions(opts)
	r := &tokenReader{buf: buf, atjson: o.atjson, linkFactory: o.linkFactory}
	d := &decodeState{r: r}

	v, err := d.run()
	if err != nil {
		o.logger.V(1).Info("dagcbor decode failed", "offset", r.pos, "error", err.Error())
		return nil, r.pos, err
	}
	return v, r.pos, nil
}

// DecodeExact decodes buf as a single top-level DAG-CBOR item and requires
// that the whole buffer be consumed, returning ErrTrailingBytes otherwise.
func DecodeExact(buf []byte, opts ...Option) (any, error) {
	value, consumed, err := Decode(buf, opts...)
	if err != nil {
		return nil, err
	}
	if consumed != len(buf) {
		return value, ErrTrailingBytes
	}
	return value, nil
}

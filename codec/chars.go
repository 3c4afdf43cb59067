package codec

import (
	"fmt"

	"github.com/wippyai/binlayout/errors"
)

type charsKind uint8

const (
	kindBytes charsKind = iota
	kindString
	kindCString
)

// Chars is a fixed-size byte or text field. Pack zero-pads short values;
// values longer than the field are rejected.
type Chars struct {
	n     int
	kind  charsKind
	enc   Encoding
	align int
}

// FixedBytes is an n-byte raw field. Unpack returns all n bytes.
func FixedBytes(n int) Chars {
	return newChars(n, kindBytes, Encoding{})
}

// FixedString is an n-byte text field. Unpack decodes all n bytes, trailing
// NULs included.
func FixedString(n int, enc Encoding) Chars {
	return newChars(n, kindString, enc)
}

// CString is an n-byte NUL-padded text field. Trailing NULs are stripped on
// unpack only.
func CString(n int, enc Encoding) Chars {
	return newChars(n, kindCString, enc)
}

func newChars(n int, kind charsKind, enc Encoding) Chars {
	if n < 0 {
		panic(fmt.Sprintf("codec: negative field length %d", n))
	}
	return Chars{n: n, kind: kind, enc: enc}
}

func (c Chars) Size() int                    { return c.n }
func (c Chars) VariableSize() bool           { return false }
func (c Chars) Alignment() int               { return normalizeAlign(c.align, 1) }
func (c Chars) Arity() int                   { return 1 }
func (c Chars) ByteOrder() (ByteOrder, bool) { return 0, false }

// Encoding returns the text encoding; raw fields report the zero Encoding.
func (c Chars) Encoding() Encoding { return c.enc }

// WithAlignment returns c with alignment n.
func (c Chars) WithAlignment(n int) Chars {
	c.align = normalizeAlign(n, 1)
	return c
}

func (c Chars) Pack(values ...any) ([]byte, error) {
	if err := checkArity(c, values); err != nil {
		return nil, err
	}
	payload, err := c.encode(values[0])
	if err != nil {
		return nil, err
	}
	if len(payload) > c.n {
		return nil, errors.New(errors.PhasePack, errors.KindValueEncoding).
			Codec(c.String()).
			Value(values[0]).
			Detail("%d bytes do not fit in a %d-byte field", len(payload), c.n).
			Build()
	}
	buf := make([]byte, c.n)
	copy(buf, payload)
	return buf, nil
}

func (c Chars) encode(v any) ([]byte, error) {
	if c.kind == kindBytes {
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			return []byte(b), nil
		}
		return nil, errors.TypeMismatch(errors.PhasePack, nil, v, c.String())
	}
	switch s := v.(type) {
	case string:
		return c.enc.Encode(s)
	case []byte:
		return s, nil
	}
	return nil, errors.TypeMismatch(errors.PhasePack, nil, v, c.String())
}

func (c Chars) Unpack(data []byte) ([]any, error) {
	return unpackFixed(c, data)
}

func (c Chars) Decode(r *Reader) ([]any, error) {
	b, err := r.Read(c.n, c.Alignment())
	if err != nil {
		return nil, err
	}
	switch c.kind {
	case kindBytes:
		out := make([]byte, len(b))
		copy(out, b)
		return []any{out}, nil
	case kindCString:
		b = c.enc.trimNUL(b)
	}
	s, err := c.enc.Decode(b)
	if err != nil {
		return nil, err
	}
	return []any{s}, nil
}

func (c Chars) Equal(other TypeDef) bool {
	o, ok := other.(Chars)
	if !ok {
		return false
	}
	return c.n == o.n &&
		c.kind == o.kind &&
		c.enc.name == o.enc.name &&
		c.Alignment() == o.Alignment()
}

func (c Chars) String() string {
	var s string
	switch c.kind {
	case kindBytes:
		s = fmt.Sprintf("bytes[%d]", c.n)
	case kindString:
		s = fmt.Sprintf("string[%d]%s", c.n, c.enc.name)
	default:
		s = fmt.Sprintf("cstring[%d]%s", c.n, c.enc.name)
	}
	if c.Alignment() != 1 {
		s += fmt.Sprintf("/a%d", c.Alignment())
	}
	return s
}

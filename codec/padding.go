package codec

import (
	"fmt"

	"github.com/wippyai/binlayout/errors"
	"go.uber.org/zap"
)

// Padding is n filler bytes. It consumes and produces no values; unpack
// checks every byte against the pad byte.
type Padding struct {
	n     int
	pad   byte
	align int
}

// NewPadding returns an n-byte padding codec. WithPadByte selects the filler.
func NewPadding(n int, opts ...Option) Padding {
	if n < 0 {
		panic(fmt.Sprintf("codec: negative padding length %d", n))
	}
	cfg := newConfig(opts)
	return Padding{n: n, pad: cfg.padByte, align: normalizeAlign(cfg.align, 1)}
}

func (c Padding) Size() int                    { return c.n }
func (c Padding) VariableSize() bool           { return false }
func (c Padding) Alignment() int               { return normalizeAlign(c.align, 1) }
func (c Padding) Arity() int                   { return 0 }
func (c Padding) ByteOrder() (ByteOrder, bool) { return 0, false }
func (c Padding) PadByte() byte                { return c.pad }

// WithAlignment returns c with alignment n.
func (c Padding) WithAlignment(n int) Padding {
	c.align = normalizeAlign(n, 1)
	return c
}

func (c Padding) Pack(values ...any) ([]byte, error) {
	if err := checkArity(c, values); err != nil {
		return nil, err
	}
	buf := make([]byte, c.n)
	if c.pad != 0 {
		for i := range buf {
			buf[i] = c.pad
		}
	}
	return buf, nil
}

func (c Padding) Unpack(data []byte) ([]any, error) {
	return unpackFixed(c, data)
}

func (c Padding) Decode(r *Reader) ([]any, error) {
	b, err := r.Read(c.n, c.Alignment())
	if err != nil {
		return nil, err
	}
	for i, got := range b {
		if got != c.pad {
			Logger().Debug("padding mismatch",
				zap.String("codec", c.String()),
				zap.Int("index", i),
				zap.Int64("offset", r.Offset()-int64(c.n)+int64(i)))
			return nil, errors.PaddingMismatch(nil, c.String(), i, got, c.pad)
		}
	}
	return []any{}, nil
}

func (c Padding) Equal(other TypeDef) bool {
	o, ok := other.(Padding)
	if !ok {
		return false
	}
	return c.n == o.n && c.pad == o.pad && c.Alignment() == o.Alignment()
}

func (c Padding) String() string {
	s := fmt.Sprintf("pad[%d]", c.n)
	if c.pad != 0 {
		s += fmt.Sprintf("=0x%02x", c.pad)
	}
	if c.Alignment() != 1 {
		s += fmt.Sprintf("/a%d", c.Alignment())
	}
	return s
}

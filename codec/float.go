package codec

import (
	"fmt"
	"math"

	"github.com/wippyai/binlayout/errors"
	"github.com/wippyai/binlayout/internal/coerce"
	"github.com/x448/float16"
)

// Float is an IEEE-754 binary16, binary32 or binary64 value.
type Float struct {
	width int
	order ByteOrder
	align int
}

// NewFloat returns a float codec of width 2, 4 or 8 bytes.
func NewFloat(width int, opts ...Option) (Float, error) {
	switch width {
	case 2, 4, 8:
	default:
		return Float{}, errors.InvalidInput(errors.PhaseConstruct,
			fmt.Sprintf("float width must be 2, 4 or 8, got %d", width))
	}
	cfg := newConfig(opts)
	order := NativeEndian
	if cfg.hasOrder {
		order = cfg.order
	}
	return Float{width: width, order: order, align: normalizeAlign(cfg.align, width)}, nil
}

func (c Float) Size() int          { return c.width }
func (c Float) VariableSize() bool { return false }
func (c Float) Alignment() int     { return normalizeAlign(c.align, 1) }
func (c Float) Arity() int         { return 1 }

func (c Float) ByteOrder() (ByteOrder, bool) {
	return c.order, true
}

// WithByteOrder returns c with byte order o.
func (c Float) WithByteOrder(o ByteOrder) Float {
	c.order = o
	return c
}

// WithAlignment returns c with alignment n; n <= 0 restores the width.
func (c Float) WithAlignment(n int) Float {
	c.align = normalizeAlign(n, c.width)
	return c
}

func (c Float) Pack(values ...any) ([]byte, error) {
	if err := checkArity(c, values); err != nil {
		return nil, err
	}
	f, ok := coerce.Float64(values[0])
	if !ok {
		return nil, errors.TypeMismatch(errors.PhasePack, nil, values[0], c.String())
	}
	buf := make([]byte, c.width)
	bo := c.order.binary()
	switch c.width {
	case 2:
		h := toFloat16(f)
		if h.IsInf(0) && !math.IsInf(f, 0) {
			return nil, errors.Overflow(errors.PhasePack, nil, values[0], c.String())
		}
		bo.PutUint16(buf, h.Bits())
	case 4:
		s := float32(f)
		if math.IsInf(float64(s), 0) && !math.IsInf(f, 0) {
			return nil, errors.Overflow(errors.PhasePack, nil, values[0], c.String())
		}
		bo.PutUint32(buf, math.Float32bits(s))
	default:
		bo.PutUint64(buf, math.Float64bits(f))
	}
	return buf, nil
}

// toFloat16 rounds f to binary16 once. The intermediate float32 is rounded
// to odd so that the second rounding cannot land on a false tie.
func toFloat16(f float64) float16.Float16 {
	s := float32(f)
	if d := float64(s); d != f && !math.IsInf(d, 0) && math.Float32bits(s)&1 == 0 {
		if d > f {
			s = math.Nextafter32(s, float32(math.Inf(-1)))
		} else {
			s = math.Nextafter32(s, float32(math.Inf(1)))
		}
	}
	return float16.Fromfloat32(s)
}

func (c Float) Unpack(data []byte) ([]any, error) {
	return unpackFixed(c, data)
}

func (c Float) Decode(r *Reader) ([]any, error) {
	b, err := r.Read(c.width, c.Alignment())
	if err != nil {
		return nil, err
	}
	bo := c.order.binary()
	var f float64
	switch c.width {
	case 2:
		f = float64(float16.Frombits(bo.Uint16(b)).Float32())
	case 4:
		f = float64(math.Float32frombits(bo.Uint32(b)))
	default:
		f = math.Float64frombits(bo.Uint64(b))
	}
	return []any{f}, nil
}

func (c Float) Equal(other TypeDef) bool {
	o, ok := other.(Float)
	if !ok {
		return false
	}
	return c.width == o.width &&
		c.Alignment() == o.Alignment() &&
		c.order.Resolve() == o.order.Resolve()
}

func (c Float) String() string {
	s := fmt.Sprintf("float%d%s", c.width*8, c.order.suffix())
	if c.Alignment() != c.width {
		s += fmt.Sprintf("/a%d", c.Alignment())
	}
	return s
}

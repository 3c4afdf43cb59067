package codec

import (
	"fmt"

	"github.com/wippyai/binlayout/errors"
	"github.com/wippyai/binlayout/internal/coerce"
)

// Integer is a two's complement integer of 1 to 8 bytes.
type Integer struct {
	width  int
	signed bool
	order  ByteOrder
	align  int
}

// NewInteger returns an integer codec of width bytes. The default alignment
// is the width and the default order is NativeEndian.
func NewInteger(width int, signed bool, opts ...Option) (Integer, error) {
	if width < 1 || width > 8 {
		return Integer{}, errors.InvalidInput(errors.PhaseConstruct,
			fmt.Sprintf("integer width must be 1..8, got %d", width))
	}
	cfg := newConfig(opts)
	order := NativeEndian
	if cfg.hasOrder {
		order = cfg.order
	}
	return Integer{
		width:  width,
		signed: signed,
		order:  order,
		align:  normalizeAlign(cfg.align, width),
	}, nil
}

func (c Integer) Size() int          { return c.width }
func (c Integer) VariableSize() bool { return false }
func (c Integer) Alignment() int     { return normalizeAlign(c.align, 1) }
func (c Integer) Arity() int         { return 1 }
func (c Integer) Signed() bool       { return c.signed }

func (c Integer) ByteOrder() (ByteOrder, bool) {
	return c.order, true
}

// WithByteOrder returns c with byte order o.
func (c Integer) WithByteOrder(o ByteOrder) Integer {
	c.order = o
	return c
}

// WithAlignment returns c with alignment n; n <= 0 restores the width.
func (c Integer) WithAlignment(n int) Integer {
	c.align = normalizeAlign(n, c.width)
	return c
}

// WithSigned returns c with the given signedness.
func (c Integer) WithSigned(signed bool) Integer {
	c.signed = signed
	return c
}

func (c Integer) Pack(values ...any) ([]byte, error) {
	if err := checkArity(c, values); err != nil {
		return nil, err
	}
	buf := make([]byte, c.width)
	if err := c.put(buf, values[0]); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c Integer) Unpack(data []byte) ([]any, error) {
	return unpackFixed(c, data)
}

func (c Integer) Decode(r *Reader) ([]any, error) {
	b, err := r.Read(c.width, c.Alignment())
	if err != nil {
		return nil, err
	}
	return []any{c.value(b)}, nil
}

func (c Integer) Equal(other TypeDef) bool {
	o, ok := other.(Integer)
	if !ok {
		return false
	}
	return c.width == o.width &&
		c.signed == o.signed &&
		c.Alignment() == o.Alignment() &&
		(c.width == 1 || c.order.Resolve() == o.order.Resolve())
}

func (c Integer) String() string {
	prefix := "int"
	if !c.signed {
		prefix = "uint"
	}
	s := fmt.Sprintf("%s%d", prefix, c.width*8)
	if c.width > 1 {
		s += c.order.suffix()
	}
	if c.Alignment() != c.width {
		s += fmt.Sprintf("/a%d", c.Alignment())
	}
	return s
}

func (c Integer) put(dst []byte, v any) error {
	var u uint64
	if c.signed {
		i, ok := coerce.Int64(v)
		if !ok {
			if _, isUint := coerce.Uint64(v); isUint {
				return errors.Overflow(errors.PhasePack, nil, v, c.String())
			}
			return errors.TypeMismatch(errors.PhasePack, nil, v, c.String())
		}
		if !coerce.FitsSigned(i, c.width) {
			return errors.Overflow(errors.PhasePack, nil, v, c.String())
		}
		u = uint64(i)
	} else {
		var ok bool
		u, ok = coerce.Uint64(v)
		if !ok {
			if _, isInt := coerce.Int64(v); isInt {
				return errors.Overflow(errors.PhasePack, nil, v, c.String())
			}
			return errors.TypeMismatch(errors.PhasePack, nil, v, c.String())
		}
		if !coerce.FitsUnsigned(u, c.width) {
			return errors.Overflow(errors.PhasePack, nil, v, c.String())
		}
	}
	putUint(dst, u, c.width, c.order)
	return nil
}

func (c Integer) value(b []byte) any {
	u := getUint(b, c.width, c.order)
	if !c.signed {
		return u
	}
	shift := uint(64 - 8*c.width)
	return int64(u<<shift) >> shift
}

func putUint(dst []byte, u uint64, width int, order ByteOrder) {
	bo := order.binary()
	switch width {
	case 1:
		dst[0] = byte(u)
	case 2:
		bo.PutUint16(dst, uint16(u))
	case 4:
		bo.PutUint32(dst, uint32(u))
	case 8:
		bo.PutUint64(dst, u)
	default:
		big := order.Resolve() == BigEndian
		for i := 0; i < width; i++ {
			b := byte(u >> (8 * uint(i)))
			if big {
				dst[width-1-i] = b
			} else {
				dst[i] = b
			}
		}
	}
}

func getUint(src []byte, width int, order ByteOrder) uint64 {
	bo := order.binary()
	switch width {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(bo.Uint16(src))
	case 4:
		return uint64(bo.Uint32(src))
	case 8:
		return bo.Uint64(src)
	default:
		big := order.Resolve() == BigEndian
		var u uint64
		for i := 0; i < width; i++ {
			var b byte
			if big {
				b = src[width-1-i]
			} else {
				b = src[i]
			}
			u |= uint64(b) << (8 * uint(i))
		}
		return u
	}
}

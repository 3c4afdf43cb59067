package codec

import (
	"fmt"
	"strings"

	"github.com/wippyai/binlayout/errors"
	"github.com/wippyai/binlayout/internal/align"
	"go.uber.org/zap"
)

// Struct lays children out in order the way a C compiler would: each child
// starts at a multiple of its alignment measured from the start of the
// struct, and the total size is rounded up to the struct alignment.
//
// A child that is itself a Struct consumes and produces exactly one []any
// tuple; every other child consumes Arity() values in place.
type Struct struct {
	children []TypeDef
	align    int
	natural  int
	offsets  []int
	size     int
	arity    int
}

// NewStruct composes children into a struct aligned to the largest child
// alignment.
func NewStruct(children ...TypeDef) *Struct {
	s := &Struct{children: append([]TypeDef(nil), children...)}
	s.natural = 1
	for _, c := range s.children {
		s.natural = align.Max(s.natural, c.Alignment())
		s.arity += flatArity(c)
	}
	s.align = s.natural
	s.layout()
	Logger().Debug("struct layout",
		zap.String("struct", s.String()),
		zap.Int("size", s.size),
		zap.Int("align", s.align),
		zap.Int("arity", s.arity))
	return s
}

func (s *Struct) layout() {
	s.offsets = make([]int, len(s.children))
	var off int64
	variable := false
	for i, c := range s.children {
		if variable {
			s.offsets[i] = -1
			continue
		}
		off = align.To(off, c.Alignment())
		s.offsets[i] = int(off)
		if c.VariableSize() {
			variable = true
			continue
		}
		off += int64(c.Size())
	}
	if variable {
		s.size = -1
		return
	}
	s.size = int(align.To(off, s.align))
}

func (s *Struct) Size() int          { return s.size }
func (s *Struct) VariableSize() bool { return s.size < 0 }
func (s *Struct) Alignment() int     { return s.align }
func (s *Struct) Arity() int         { return s.arity }

// Children returns a copy of the child codecs.
func (s *Struct) Children() []TypeDef {
	out := make([]TypeDef, len(s.children))
	copy(out, s.children)
	return out
}

// Offsets returns each child's offset from the start of the struct. Children
// after the first variable-size child report -1.
func (s *Struct) Offsets() []int {
	out := make([]int, len(s.offsets))
	copy(out, s.offsets)
	return out
}

// ByteOrder reports the order shared by every child that has one.
func (s *Struct) ByteOrder() (ByteOrder, bool) {
	return commonOrder(s.children)
}

func commonOrder(children []TypeDef) (ByteOrder, bool) {
	var (
		order ByteOrder
		found bool
	)
	for _, c := range children {
		o, ok := c.ByteOrder()
		if !ok {
			continue
		}
		if found && o.Resolve() != order.Resolve() {
			return 0, false
		}
		order, found = o, true
	}
	return order, found
}

// WithByteOrder returns a struct whose children all use order o.
func (s *Struct) WithByteOrder(o ByteOrder) *Struct {
	children := make([]TypeDef, len(s.children))
	for i, c := range s.children {
		children[i] = Reorder(c, o)
	}
	return NewStruct(children...).withAlign(s.align)
}

// WithAlignment returns s with alignment n; n <= 0 restores the natural
// alignment.
func (s *Struct) WithAlignment(n int) *Struct {
	if normalizeAlign(n, s.natural) == s.align {
		return s
	}
	return NewStruct(s.children...).withAlign(n)
}

// withAlign sets the alignment of a freshly built struct.
func (s *Struct) withAlign(n int) *Struct {
	if a := normalizeAlign(n, s.natural); a != s.align {
		s.align = a
		s.layout()
	}
	return s
}

// Packed returns s with every child, nested ones included, aligned to 1.
func (s *Struct) Packed() *Struct {
	children := make([]TypeDef, len(s.children))
	for i, c := range s.children {
		children[i] = packed(c)
	}
	return NewStruct(children...).WithAlignment(1)
}

func packed(td TypeDef) TypeDef {
	switch c := td.(type) {
	case *Struct:
		return c.Packed()
	case *Array:
		return NewArray(packed(c.elem), c.n).WithAlignment(1)
	default:
		return Realign(td, 1)
	}
}

func (s *Struct) Pack(values ...any) ([]byte, error) {
	if err := checkArity(s, values); err != nil {
		return nil, err
	}
	a := newAssembler(s.size)
	vi := 0
	for i, c := range s.children {
		n := flatArity(c)
		data, err := packChild(c, values[vi:vi+n])
		vi += n
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
		if err := a.put(data, c.Alignment(), c.String()); err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
	}
	if err := a.put(nil, s.align, s.String()); err != nil {
		return nil, err
	}
	return a.bytes(), nil
}

// packChild packs one struct or array member from its share of the values.
func packChild(c TypeDef, args []any) ([]byte, error) {
	if _, nested := c.(*Struct); !nested {
		return c.Pack(args...)
	}
	tuple, ok := args[0].([]any)
	if !ok {
		return nil, errors.NotATuple(errors.PhasePack, nil, c.String(), args[0])
	}
	return c.Pack(tuple...)
}

func (s *Struct) Unpack(data []byte) ([]any, error) {
	if s.VariableSize() {
		r := NewReader(data)
		r.exact = false
		return s.Decode(r)
	}
	return unpackFixed(s, data)
}

func (s *Struct) Decode(r *Reader) ([]any, error) {
	if err := r.Align(s.align); err != nil {
		return nil, err
	}
	sub := r.Nest()
	out := make([]any, 0, s.arity)
	for i, c := range s.children {
		vals, err := c.Decode(sub)
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
		out = appendChild(out, c, vals)
	}
	if err := sub.Align(s.align); err != nil {
		return nil, err
	}
	return out, nil
}

// appendChild keeps nested struct results as one tuple and splices the rest.
func appendChild(out []any, c TypeDef, vals []any) []any {
	if _, nested := c.(*Struct); nested {
		return append(out, any(vals))
	}
	return append(out, vals...)
}

func (s *Struct) Equal(other TypeDef) bool {
	o, ok := other.(*Struct)
	if !ok {
		return false
	}
	if s == o {
		return true
	}
	if s.align != o.align || len(s.children) != len(o.children) {
		return false
	}
	for i := range s.children {
		if !Equal(s.children[i], o.children[i]) {
			return false
		}
	}
	return true
}

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString("struct{")
	for i, c := range s.children {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteByte('}')
	if s.align != s.natural {
		fmt.Fprintf(&b, "/a%d", s.align)
	}
	return b.String()
}

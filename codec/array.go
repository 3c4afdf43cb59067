package codec

import (
	"fmt"

	"github.com/wippyai/binlayout/errors"
	"github.com/wippyai/binlayout/internal/align"
)

// Array is n consecutive elements of one codec, each aligned to the element
// alignment measured from the start of the array. Struct elements take one
// []any tuple each; other elements are flattened into the value list.
type Array struct {
	elem  TypeDef
	n     int
	align int
	size  int
}

// NewArray returns an array of n elements.
func NewArray(elem TypeDef, n int) *Array {
	if n < 0 {
		panic(fmt.Sprintf("codec: negative array length %d", n))
	}
	a := &Array{elem: elem, n: n, align: elem.Alignment()}
	a.size = a.walk()
	return a
}

func (a *Array) walk() int {
	if a.n == 0 {
		return 0
	}
	if a.elem.VariableSize() {
		return -1
	}
	var off int64
	for i := 0; i < a.n; i++ {
		off = align.To(off, a.elem.Alignment()) + int64(a.elem.Size())
	}
	return int(off)
}

func (a *Array) Size() int                    { return a.size }
func (a *Array) VariableSize() bool           { return a.size < 0 }
func (a *Array) Alignment() int               { return a.align }
func (a *Array) Arity() int                   { return a.n * flatArity(a.elem) }
func (a *Array) ByteOrder() (ByteOrder, bool) { return a.elem.ByteOrder() }

// Elem returns the element codec.
func (a *Array) Elem() TypeDef { return a.elem }

// Len returns the element count.
func (a *Array) Len() int { return a.n }

// WithByteOrder returns an array whose elements use order o.
func (a *Array) WithByteOrder(o ByteOrder) *Array {
	out := NewArray(Reorder(a.elem, o), a.n)
	out.align = a.align
	return out
}

// WithAlignment returns a with alignment n; n <= 0 restores the element
// alignment.
func (a *Array) WithAlignment(n int) *Array {
	cp := *a
	cp.align = normalizeAlign(n, a.elem.Alignment())
	return &cp
}

func (a *Array) Pack(values ...any) ([]byte, error) {
	if err := checkArity(a, values); err != nil {
		return nil, err
	}
	per := flatArity(a.elem)
	asm := newAssembler(a.size)
	for i := 0; i < a.n; i++ {
		data, err := packChild(a.elem, values[i*per:(i+1)*per])
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
		if err := asm.put(data, a.elem.Alignment(), a.elem.String()); err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
	}
	return asm.bytes(), nil
}

func (a *Array) Unpack(data []byte) ([]any, error) {
	if a.VariableSize() {
		r := NewReader(data)
		r.exact = false
		return a.Decode(r)
	}
	return unpackFixed(a, data)
}

func (a *Array) Decode(r *Reader) ([]any, error) {
	if err := r.Align(a.align); err != nil {
		return nil, err
	}
	sub := r.Nest()
	out := make([]any, 0, a.Arity())
	for i := 0; i < a.n; i++ {
		vals, err := a.elem.Decode(sub)
		if err != nil {
			return nil, errors.WithPath(err, fmt.Sprintf("[%d]", i))
		}
		out = appendChild(out, a.elem, vals)
	}
	return out, nil
}

func (a *Array) Equal(other TypeDef) bool {
	o, ok := other.(*Array)
	if !ok {
		return false
	}
	return a.n == o.n && a.align == o.align && Equal(a.elem, o.elem)
}

func (a *Array) String() string {
	s := fmt.Sprintf("%s[%d]", a.elem.String(), a.n)
	if a.align != a.elem.Alignment() {
		s += fmt.Sprintf("/a%d", a.align)
	}
	return s
}

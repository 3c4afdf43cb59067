package codec

import (
	"github.com/wippyai/binlayout/errors"
)

// TypeDef is the contract every codec implements.
//
// Pack never emits leading padding: a value's bytes start at its own offset 0
// and placement is left to the I/O adapter (PackInto, PackStream) or to the
// enclosing Struct. Decode reads through a Reader, which inserts the leading
// padding implied by Alignment before touching payload bytes.
type TypeDef interface {
	// Size is the native size in bytes, or -1 for variable-size types.
	Size() int
	VariableSize() bool
	Alignment() int
	// ByteOrder reports the codec's byte order when it has one.
	ByteOrder() (ByteOrder, bool)
	// Arity is the number of values consumed by Pack and produced by Unpack.
	Arity() int
	Pack(values ...any) ([]byte, error)
	Unpack(data []byte) ([]any, error)
	Decode(r *Reader) ([]any, error)
	Equal(other TypeDef) bool
	String() string
}

// Default instances. Scalars use the host byte order and natural alignment.
var (
	Int8   = Integer{width: 1, signed: true, order: NativeEndian, align: 1}
	Int16  = Integer{width: 2, signed: true, order: NativeEndian, align: 2}
	Int32  = Integer{width: 4, signed: true, order: NativeEndian, align: 4}
	Int64  = Integer{width: 8, signed: true, order: NativeEndian, align: 8}
	UInt8  = Integer{width: 1, order: NativeEndian, align: 1}
	UInt16 = Integer{width: 2, order: NativeEndian, align: 2}
	UInt32 = Integer{width: 4, order: NativeEndian, align: 4}
	UInt64 = Integer{width: 8, order: NativeEndian, align: 8}

	Float16 = Float{width: 2, order: NativeEndian, align: 2}
	Float32 = Float{width: 4, order: NativeEndian, align: 4}
	Float64 = Float{width: 8, order: NativeEndian, align: 8}

	Bool = Boolean{}

	// Pointer is an unsigned integer as wide as a host pointer.
	Pointer = PointerFor(HostLayout())
	// SignedPointer is a signed integer as wide as a host pointer (ssize_t).
	SignedPointer = Pointer.WithSigned(true)

	VarUint = VarInt{}
	VarSint = VarInt{signed: true}
)

// Equal compares two codecs structurally.
func Equal(a, b TypeDef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Reorder returns td with its byte order replaced. Codecs without a byte
// order are returned unchanged; Structs and Arrays reorder their children.
func Reorder(td TypeDef, o ByteOrder) TypeDef {
	switch c := td.(type) {
	case Integer:
		return c.WithByteOrder(o)
	case Float:
		return c.WithByteOrder(o)
	case *Array:
		return c.WithByteOrder(o)
	case *Struct:
		return c.WithByteOrder(o)
	case *LengthPrefixed:
		return c.WithByteOrder(o)
	default:
		return td
	}
}

// Realign returns td with its alignment replaced.
func Realign(td TypeDef, n int) TypeDef {
	switch c := td.(type) {
	case Integer:
		return c.WithAlignment(n)
	case Float:
		return c.WithAlignment(n)
	case Boolean:
		return c.WithAlignment(n)
	case Chars:
		return c.WithAlignment(n)
	case Padding:
		return c.WithAlignment(n)
	case *Array:
		return c.WithAlignment(n)
	case *Struct:
		return c.WithAlignment(n)
	case *LengthPrefixed:
		return c.WithAlignment(n)
	default:
		return td
	}
}

// flatArity is how many values a child consumes inside a Struct or Array:
// nested structures always take exactly one tuple.
func flatArity(td TypeDef) int {
	if _, ok := td.(*Struct); ok {
		return 1
	}
	return td.Arity()
}

func checkArity(td TypeDef, values []any) error {
	if len(values) != td.Arity() {
		return errors.ArgumentCount(errors.PhasePack, nil, td.String(), td.Arity(), len(values))
	}
	return nil
}

// unpackFixed decodes data through a Reader after the fixed-size capacity check.
func unpackFixed(td TypeDef, data []byte) ([]any, error) {
	if len(data) < td.Size() {
		return nil, errors.BufferTooSmall(errors.PhaseUnpack, td.String(), int64(td.Size()), int64(len(data)), 0, true)
	}
	return td.Decode(NewReader(data))
}

func normalizeAlign(n, natural int) int {
	if n <= 0 {
		return natural
	}
	return n
}

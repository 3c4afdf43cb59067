package codec

import (
	"encoding/binary"
	"fmt"
)

// ByteOrder selects how multi-byte scalars are laid out.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
	// NativeEndian is the host order, resolved once at package init.
	NativeEndian
	// NetworkEndian is big-endian.
	NetworkEndian
)

var hostOrder = func() ByteOrder {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}()

// Resolve maps NativeEndian and NetworkEndian to a concrete order.
func (o ByteOrder) Resolve() ByteOrder {
	switch o {
	case NativeEndian:
		return hostOrder
	case NetworkEndian:
		return BigEndian
	default:
		return o
	}
}

func (o ByteOrder) binary() binary.ByteOrder {
	if o.Resolve() == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (o ByteOrder) suffix() string {
	if o.Resolve() == BigEndian {
		return "be"
	}
	return "le"
}

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	case NativeEndian:
		return "native"
	case NetworkEndian:
		return "network"
	default:
		return fmt.Sprintf("ByteOrder(%d)", uint8(o))
	}
}

// HostOrder returns the resolved byte order of the running process.
func HostOrder() ByteOrder {
	return hostOrder
}

// AlignPolicy decides where leading padding is measured from.
type AlignPolicy uint8

const (
	// AlignLocal measures padding from the origin (start of the enclosing structure).
	AlignLocal AlignPolicy = iota
	// AlignAbsolute measures padding from offset 0 of the buffer or stream.
	AlignAbsolute
	// AlignNone inserts no leading padding.
	AlignNone
)

func (p AlignPolicy) String() string {
	switch p {
	case AlignLocal:
		return "local"
	case AlignAbsolute:
		return "absolute"
	case AlignNone:
		return "unaligned"
	default:
		return fmt.Sprintf("AlignPolicy(%d)", uint8(p))
	}
}

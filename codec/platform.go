package codec

import (
	"runtime"
	"sort"
)

// MemoryLayout describes how a target architecture stores pointers.
type MemoryLayout struct {
	Name         string
	PointerSize  int
	PointerAlign int
	Order        ByteOrder
}

var layouts = map[string]MemoryLayout{
	"386":      {Name: "386", PointerSize: 4, PointerAlign: 4, Order: LittleEndian},
	"amd64":    {Name: "amd64", PointerSize: 8, PointerAlign: 8, Order: LittleEndian},
	"arm":      {Name: "arm", PointerSize: 4, PointerAlign: 4, Order: LittleEndian},
	"arm64":    {Name: "arm64", PointerSize: 8, PointerAlign: 8, Order: LittleEndian},
	"wasm":     {Name: "wasm", PointerSize: 8, PointerAlign: 8, Order: LittleEndian},
	"wasm32":   {Name: "wasm32", PointerSize: 4, PointerAlign: 4, Order: LittleEndian},
	"mips":     {Name: "mips", PointerSize: 4, PointerAlign: 4, Order: BigEndian},
	"mipsle":   {Name: "mipsle", PointerSize: 4, PointerAlign: 4, Order: LittleEndian},
	"mips64":   {Name: "mips64", PointerSize: 8, PointerAlign: 8, Order: BigEndian},
	"mips64le": {Name: "mips64le", PointerSize: 8, PointerAlign: 8, Order: LittleEndian},
	"ppc64":    {Name: "ppc64", PointerSize: 8, PointerAlign: 8, Order: BigEndian},
	"ppc64le":  {Name: "ppc64le", PointerSize: 8, PointerAlign: 8, Order: LittleEndian},
	"riscv64":  {Name: "riscv64", PointerSize: 8, PointerAlign: 8, Order: LittleEndian},
	"s390x":    {Name: "s390x", PointerSize: 8, PointerAlign: 8, Order: BigEndian},
	"loong64":  {Name: "loong64", PointerSize: 8, PointerAlign: 8, Order: LittleEndian},
}

var hostLayout = func() MemoryLayout {
	if l, ok := layouts[runtime.GOARCH]; ok {
		return l
	}
	// Unknown ports fall back to a same-width pointer in host order.
	size := 4 << (^uintptr(0) >> 63)
	return MemoryLayout{Name: runtime.GOARCH, PointerSize: size, PointerAlign: size, Order: hostOrder}
}()

// LayoutFor returns the memory layout of a GOARCH-style architecture name.
func LayoutFor(arch string) (MemoryLayout, bool) {
	l, ok := layouts[arch]
	return l, ok
}

// HostLayout returns the layout of the running process.
func HostLayout() MemoryLayout {
	return hostLayout
}

// Architectures lists the names LayoutFor knows, sorted.
func Architectures() []string {
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PointerFor returns an unsigned integer codec shaped like a pointer of l.
func PointerFor(l MemoryLayout) Integer {
	return Integer{
		width: l.PointerSize,
		order: l.Order,
		align: normalizeAlign(l.PointerAlign, l.PointerSize),
	}
}

// Package wasmmem applies codecs to WebAssembly linear memory.
//
// Random access at guest addresses:
//
//	mem := wasmmem.Wrap(module.ExportedMemory("memory"))
//	n, err := mem.PackInto(header, 1024, values, codec.WithPolicy(codec.AlignAbsolute))
//
// The stream surface works the same way against guest memory:
//
//	s := mem.Stream()
//	_, err := codec.PackStream(header, s, values)
//
// Values can also be placed in memory obtained from the guest allocator:
//
//	alloc := wasmmem.NewAllocator(module.ExportedFunction("cabi_realloc"))
//	ptr, err := mem.PackAlloc(ctx, alloc, header, values...)
package wasmmem

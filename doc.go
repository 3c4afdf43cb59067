// Package binlayout describes binary record layouts as composable codecs and
// moves values between Go and bytes.
//
// The library is organized into several packages with distinct responsibilities:
//
//	binlayout/
//	├── codec/       TypeDef codecs, padding rules, buffer and stream I/O
//	├── format/      struct-module style format strings compiled to codecs
//	├── inspect/     field tables and rendered layout views
//	├── wasmmem/     codecs applied to WebAssembly linear memory
//	└── errors/      structured errors with phase, kind and field path
//
// # Quick Start
//
// Describe a record and round-trip it:
//
//	hdr := codec.NewStruct(codec.UInt16, codec.UInt32, codec.FixedString(8, codec.UTF8)).
//	    WithByteOrder(codec.LittleEndian)
//
//	data, err := hdr.Pack(0x4d42, 1024, "icon")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	values, err := hdr.Unpack(data)
//
// The same layout can come from a format string:
//
//	hdr := format.MustCompile("<HI8s")
//
// # Alignment
//
// Every codec has a natural alignment. Structs insert padding before each
// member so that the member starts on a multiple of its alignment, and pad
// the tail to a multiple of the largest member alignment. PackInto and
// UnpackFrom measure padding from the call offset by default; AlignAbsolute
// measures it from the start of the buffer or stream instead.
//
// # Values
//
// Signed integers decode to int64, unsigned to uint64, floats to float64,
// byte fields to []byte and string fields to string. A nested struct takes
// and yields a single []any.
//
// # Thread Safety
//
// Codecs are immutable once built and safe for concurrent use. Readers,
// streams and wasmmem.Stream are not.
package binlayout

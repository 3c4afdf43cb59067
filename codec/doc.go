// Package codec describes binary layouts as values.
//
// A TypeDef knows its size, alignment and byte order, and converts between
// Go values and bytes. Primitives (Integer, Float, Boolean, Chars, Padding,
// VarInt) compose into Struct and Array, and LengthPrefixed covers payloads
// whose size is stored in front of them.
//
// Layout follows C rules: every field starts at a multiple of its alignment,
// measured from the start of the enclosing struct, and a struct is padded at
// the end to a multiple of its own alignment.
//
//	header := codec.NewStruct(
//		codec.UInt16.WithByteOrder(codec.LittleEndian),
//		codec.UInt32.WithByteOrder(codec.LittleEndian),
//	)
//	data, err := header.Pack(0x4d42, 1024)
//
// Pack and Unpack work on bytes that start at offset 0. To place a value at
// an arbitrary offset of a buffer or stream use PackInto, UnpackFrom,
// PackStream and UnpackStream; they insert the leading padding the value's
// alignment requires according to the AlignPolicy and origin given.
//
// Unpacked values use int64 for signed integers, uint64 for unsigned ones,
// float64, bool, []byte, string, and one []any per nested Struct.
//
// Codecs are immutable and safe for concurrent use.
package codec

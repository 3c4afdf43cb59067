// Package format compiles struct-module style format strings into codecs.
//
//	header, err := format.Compile("<2sIHHI")
//
// Format characters resolve through a Registry. Standard covers the usual
// C types; custom registries are derived from it with With:
//
//	reg := format.Standard.With('z', codec.VarUint)
//	s, err := reg.Compile("<Hz")
package format

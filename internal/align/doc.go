// Package align provides the padding algebra shared by every codec.
//
// The same rule is used for leading padding computed from a running offset
// and for trailing padding that rounds a size up to its own alignment:
//
//	Padding(a, x) = (a - x mod a) mod a
//
// Alignments of 0 and 1 never produce padding. All functions are pure.
//
// This package is internal to the module.
package align

// Package coerce converts loosely typed Go values into the canonical numeric
// and byte representations used by the codecs.
//
// Any Go integer kind is accepted where an integer is expected; float64 and
// float32 are accepted when they hold an integral value, matching numbers
// that arrive through JSON or other untyped decoders. Range checks against a
// specific encoded width are left to the caller.
//
// This package is internal to the module.
package coerce

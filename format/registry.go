package format

import (
	"sort"

	"github.com/wippyai/binlayout/codec"
)

// Registry maps format characters to codecs.
//
// A Registry is immutable: With returns a new registry and leaves the
// receiver untouched, so a registry can be shared freely between goroutines.
type Registry struct {
	codes map[rune]codec.TypeDef
}

// NewRegistry creates a Registry holding a copy of codes.
func NewRegistry(codes map[rune]codec.TypeDef) *Registry {
	r := &Registry{codes: make(map[rune]codec.TypeDef, len(codes))}
	for k, v := range codes {
		r.codes[k] = v
	}
	return r
}

// With returns a registry that also maps code to td, replacing any
// previous mapping for code.
func (r *Registry) With(code rune, td codec.TypeDef) *Registry {
	out := NewRegistry(r.codes)
	out.codes[code] = td
	return out
}

// Lookup returns the codec registered for code.
func (r *Registry) Lookup(code rune) (codec.TypeDef, bool) {
	td, ok := r.codes[code]
	return td, ok
}

// Codes returns the registered characters in ascending order.
func (r *Registry) Codes() []rune {
	out := make([]rune, 0, len(r.codes))
	for k := range r.codes {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of registered characters.
func (r *Registry) Len() int {
	return len(r.codes)
}

// nativeOnly lists codes whose size depends on the host and which are only
// accepted in native mode.
var nativeOnly = map[rune]bool{'n': true, 'N': true, 'P': true}

// Standard holds the C struct-module codes. 's' and 'x' are handled by the
// compiler directly because their count is a length rather than a repeat.
// 'l' and 'L' use the standard 4-byte size.
var Standard = NewRegistry(map[rune]codec.TypeDef{
	'c': codec.FixedBytes(1),
	'b': codec.Int8,
	'B': codec.UInt8,
	'?': codec.Bool,
	'h': codec.Int16,
	'H': codec.UInt16,
	'i': codec.Int32,
	'I': codec.UInt32,
	'l': codec.Int32,
	'L': codec.UInt32,
	'q': codec.Int64,
	'Q': codec.UInt64,
	'n': codec.SignedPointer,
	'N': codec.Pointer,
	'e': codec.Float16,
	'f': codec.Float32,
	'd': codec.Float64,
	'P': codec.Pointer,
})

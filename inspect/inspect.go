// Package inspect reports where every field of a layout lives.
package inspect

import (
	"fmt"
	"strconv"

	"github.com/wippyai/binlayout/codec"
)

// Field describes one member of a layout. Offsets are measured from the
// start of the outermost layout and are -1 when they depend on the size of
// an earlier variable-size field.
type Field struct {
	Path    string
	Codec   string
	Offset  int
	Size    int
	Align   int
	Padding int
	Depth   int
	// Trailing marks the padding that rounds a struct up to its alignment.
	Trailing bool
}

// Fields lists the members of td. Nested structs are expanded after their
// own row with Depth increased by one; other codecs produce a single row.
func Fields(td codec.TypeDef) []Field {
	s, ok := td.(*codec.Struct)
	if !ok {
		return []Field{{
			Path:   "0",
			Codec:  td.String(),
			Size:   td.Size(),
			Align:  td.Alignment(),
			Offset: 0,
		}}
	}
	return structFields(nil, s, 0, "", 0)
}

func structFields(out []Field, s *codec.Struct, base int, prefix string, depth int) []Field {
	offsets := s.Offsets()
	end := 0
	for i, c := range s.Children() {
		path := prefix + strconv.Itoa(i)
		f := Field{
			Path:    path,
			Codec:   c.String(),
			Offset:  -1,
			Size:    c.Size(),
			Align:   c.Alignment(),
			Padding: -1,
			Depth:   depth,
		}
		if offsets[i] >= 0 && end >= 0 {
			f.Offset = base + offsets[i]
			f.Padding = offsets[i] - end
		}
		out = append(out, f)

		if nested, ok := c.(*codec.Struct); ok {
			nestedBase := -1
			if f.Offset >= 0 {
				nestedBase = f.Offset
			}
			out = nestedFields(out, nested, nestedBase, path+".", depth+1)
		}

		if end < 0 || offsets[i] < 0 || c.VariableSize() {
			end = -1
		} else {
			end = offsets[i] + c.Size()
		}
	}
	if s.Size() >= 0 && s.Size() > end {
		out = append(out, Field{
			Path:     prefix + "end",
			Codec:    "padding",
			Offset:   base + end,
			Size:     s.Size() - end,
			Align:    1,
			Padding:  0,
			Depth:    depth,
			Trailing: true,
		})
	}
	return out
}

func nestedFields(out []Field, s *codec.Struct, base int, prefix string, depth int) []Field {
	if base >= 0 {
		return structFields(out, s, base, prefix, depth)
	}
	// Unknown base: collect with a zero base, then blank the offsets.
	start := len(out)
	out = structFields(out, s, 0, prefix, depth)
	for i := start; i < len(out); i++ {
		out[i].Offset = -1
	}
	return out
}

// Summary is a one-line description of td's shape.
func Summary(td codec.TypeDef) string {
	size := "variable"
	if !td.VariableSize() {
		size = strconv.Itoa(td.Size())
	}
	return fmt.Sprintf("%s  size=%s align=%d arity=%d", td.String(), size, td.Alignment(), td.Arity())
}

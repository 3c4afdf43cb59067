package format

import (
	"strconv"
	"unicode"

	"github.com/wippyai/binlayout/codec"
	"github.com/wippyai/binlayout/errors"
)

// Mode is selected by the optional first character of a format string.
type Mode struct {
	Order codec.ByteOrder
	// Native keeps natural alignment and permits host-sized codes.
	Native bool
}

// ModeFor returns the mode for a leading format character.
func ModeFor(prefix rune) (Mode, bool) {
	switch prefix {
	case '@':
		return Mode{Order: codec.NativeEndian, Native: true}, true
	case '=':
		return Mode{Order: codec.NativeEndian}, true
	case '<':
		return Mode{Order: codec.LittleEndian}, true
	case '>', '!':
		return Mode{Order: codec.BigEndian}, true
	}
	return Mode{}, false
}

// Compile compiles format against the Standard registry.
func Compile(format string) (*codec.Struct, error) {
	return Standard.Compile(format)
}

// MustCompile is like Compile but panics on error.
func MustCompile(format string) *codec.Struct {
	s, err := Compile(format)
	if err != nil {
		panic(err)
	}
	return s
}

// Compile turns a struct-module style format string into a Struct.
//
// An optional leading '@', '=', '<', '>' or '!' selects byte order and
// alignment; '@' is the default. Each code may be preceded by a decimal
// count: for 's' the count is the byte length, for 'x' the number of pad
// bytes, and for every other code the number of array elements. Whitespace
// between codes is ignored.
func (r *Registry) Compile(format string) (*codec.Struct, error) {
	runes := []rune(format)
	mode := Mode{Order: codec.NativeEndian, Native: true}
	i := 0
	if len(runes) > 0 {
		if m, ok := ModeFor(runes[0]); ok {
			mode = m
			i = 1
		}
	}

	var fields []codec.TypeDef
	for i < len(runes) {
		ch := runes[i]
		if unicode.IsSpace(ch) {
			i++
			continue
		}

		count, hasCount := 1, false
		if isDigit(ch) {
			j := i
			for j < len(runes) && isDigit(runes[j]) {
				j++
			}
			n, err := strconv.Atoi(string(runes[i:j]))
			if err != nil || n > codec.MaxPayload {
				return nil, compileError(format, i, "repeat count %q is out of range", string(runes[i:j]))
			}
			if j >= len(runes) {
				return nil, compileError(format, i, "repeat count without a format code")
			}
			count, hasCount, i = n, true, j
			ch = runes[i]
		}

		switch ch {
		case 's':
			fields = append(fields, codec.FixedBytes(count))
		case 'x':
			if count > 0 {
				fields = append(fields, codec.NewPadding(count))
			}
		default:
			td, ok := r.Lookup(ch)
			if !ok {
				return nil, compileError(format, i, "unknown format code %q", ch)
			}
			if nativeOnly[ch] && !mode.Native {
				return nil, compileError(format, i, "format code %q is only available in native mode", ch)
			}
			td = codec.Reorder(td, mode.Order)
			switch {
			case !hasCount:
				fields = append(fields, td)
			case count > 0:
				fields = append(fields, codec.NewArray(td, count))
			}
		}
		i++
	}

	s := codec.NewStruct(fields...)
	if !mode.Native {
		s = s.Packed()
	}
	return s, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func compileError(format string, pos int, detail string, args ...any) *errors.Error {
	return errors.New(errors.PhaseCompile, errors.KindInvalidInput).
		Value(format).
		Path(strconv.Itoa(pos)).
		Detail(detail, args...).
		Build()
}

package codec

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wippyai/binlayout/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding converts between Go strings and the bytes of a text field.
type Encoding struct {
	name string
	enc  encoding.Encoding
	// unit is the code unit width used when stripping NUL terminators.
	unit int
	// valid rejects encoded bytes the decoder would silently replace.
	valid func([]byte) bool
	// repertoire, when set, rejects text outside the encoding's range.
	repertoire func([]byte) bool
}

// Text encodings available to FixedString, CString and NewPascalString.
var (
	UTF8        = Encoding{name: "utf-8", enc: unicode.UTF8, unit: 1, valid: utf8.Valid}
	UTF16LE     = Encoding{name: "utf-16le", enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), unit: 2, valid: validUTF16(binary.LittleEndian)}
	UTF16BE     = Encoding{name: "utf-16be", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), unit: 2, valid: validUTF16(binary.BigEndian)}
	Latin1      = Encoding{name: "latin-1", enc: charmap.ISO8859_1, unit: 1, valid: validCharmap(charmap.ISO8859_1)}
	Windows1252 = Encoding{name: "windows-1252", enc: charmap.Windows1252, unit: 1, valid: validCharmap(charmap.Windows1252)}
	ASCII       = Encoding{name: "ascii", enc: unicode.UTF8, unit: 1, valid: isASCII, repertoire: isASCII}
)

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// validUTF16 accepts whole code units with every surrogate paired.
func validUTF16(bo binary.ByteOrder) func([]byte) bool {
	return func(b []byte) bool {
		if len(b)%2 != 0 {
			return false
		}
		for i := 0; i < len(b); i += 2 {
			u := rune(bo.Uint16(b[i:]))
			if !utf16.IsSurrogate(u) {
				continue
			}
			if u >= 0xDC00 || i+4 > len(b) {
				return false
			}
			next := rune(bo.Uint16(b[i+2:]))
			if next < 0xDC00 || next > 0xDFFF {
				return false
			}
			i += 2
		}
		return true
	}
}

// validCharmap rejects bytes the code page leaves undefined.
func validCharmap(cm *charmap.Charmap) func([]byte) bool {
	return func(b []byte) bool {
		for _, c := range b {
			if cm.DecodeByte(c) == utf8.RuneError {
				return false
			}
		}
		return true
	}
}

func (e Encoding) String() string {
	return e.name
}

// Encode converts s to the encoding's bytes.
func (e Encoding) Encode(s string) ([]byte, error) {
	if e.enc == nil {
		return nil, errors.InvalidInput(errors.PhasePack, "zero Encoding")
	}
	if !utf8.ValidString(s) {
		return nil, errors.ValueEncoding(errors.PhasePack, e.name, "text is not valid utf-8", nil)
	}
	if e.repertoire != nil && !e.repertoire([]byte(s)) {
		return nil, errors.ValueEncoding(errors.PhasePack, e.name, "text is not valid "+e.name, nil)
	}
	b, err := e.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.ValueEncoding(errors.PhasePack, e.name, "text is not representable", err)
	}
	return b, nil
}

// Decode converts encoded bytes to a Go string.
func (e Encoding) Decode(b []byte) (string, error) {
	if e.enc == nil {
		return "", errors.InvalidInput(errors.PhaseUnpack, "zero Encoding")
	}
	if e.valid != nil && !e.valid(b) {
		return "", errors.ValueEncoding(errors.PhaseUnpack, e.name, "bytes are not valid "+e.name, nil)
	}
	s, err := e.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.ValueEncoding(errors.PhaseUnpack, e.name, "bytes cannot be decoded", err)
	}
	return string(s), nil
}

// trimNUL strips trailing all-zero code units.
func (e Encoding) trimNUL(b []byte) []byte {
	unit := e.unit
	if unit < 1 {
		unit = 1
	}
	for len(b) >= unit {
		tail := b[len(b)-unit:]
		for _, c := range tail {
			if c != 0 {
				return b
			}
		}
		b = b[:len(b)-unit]
	}
	return b
}

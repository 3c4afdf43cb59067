package codec

import (
	"bytes"
	stderrors "errors"
	"math"
	"testing"

	"github.com/wippyai/binlayout/errors"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		name  string
		codec Float
		value any
		want  []byte
	}{
		{"float32le", Float32.WithByteOrder(LittleEndian), 1.5, []byte{0x00, 0x00, 0xc0, 0x3f}},
		{"float32be", Float32.WithByteOrder(BigEndian), float32(1.5), []byte{0x3f, 0xc0, 0x00, 0x00}},
		{"float64be", Float64.WithByteOrder(BigEndian), 1, []byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}},
		{"float16le one", Float16.WithByteOrder(LittleEndian), 1.0, []byte{0x00, 0x3c}},
		{"float16be minus two", Float16.WithByteOrder(BigEndian), -2.0, []byte{0xc0, 0x00}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.codec.Pack(tc.value)
			if err != nil {
				t.Fatalf("Pack: %v", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("Pack = % x, want % x", got, tc.want)
			}
			vals, err := tc.codec.Unpack(got)
			if err != nil {
				t.Fatalf("Unpack: %v", err)
			}
			want, _ := tc.value.(float64)
			switch v := tc.value.(type) {
			case float32:
				want = float64(v)
			case int:
				want = float64(v)
			}
			if vals[0] != want {
				t.Errorf("Unpack = %v, want %v", vals[0], want)
			}
		})
	}
}

func TestFloat16RoundsOnce(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  []byte
	}{
		// Just above the tie between 1 and 1+2^-10; float32 alone would round to the tie.
		{"above tie", 1 + math.Ldexp(1, -11) + math.Ldexp(1, -40), []byte{0x01, 0x3c}},
		{"below tie", 1 + math.Ldexp(1, -11) - math.Ldexp(1, -40), []byte{0x00, 0x3c}},
		{"exact tie to even", 1 + math.Ldexp(1, -11), []byte{0x00, 0x3c}},
	}

	c := Float16.WithByteOrder(LittleEndian)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Pack(tc.value)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("Pack(%v) = % x, want % x", tc.value, got, tc.want)
			}
		})
	}
}

func TestFloatOverflow(t *testing.T) {
	tests := []struct {
		name  string
		codec Float
		value float64
		ok    bool
	}{
		{"float16 too large", Float16, 70000, false},
		{"float16 max", Float16, 65504, true},
		{"float32 too large", Float32, 1e39, false},
		{"float32 infinity", Float32, math.Inf(1), true},
		{"float16 infinity", Float16, math.Inf(-1), true},
		{"float64 huge", Float64, math.MaxFloat64, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.codec.Pack(tc.value)
			if tc.ok && err != nil {
				t.Errorf("Pack: %v", err)
			}
			if !tc.ok && !stderrors.Is(err, errors.ErrValueEncoding) {
				t.Errorf("got %v, want value encoding error", err)
			}
		})
	}

	if _, err := NewFloat(3); !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("NewFloat(3) error = %v", err)
	}
	if _, err := Float32.Pack("1.5"); !stderrors.Is(err, errors.ErrValueEncoding) {
		t.Errorf("string value error = %v", err)
	}
}

func TestFloatNaN(t *testing.T) {
	data, err := Float32.Pack(math.NaN())
	if err != nil {
		t.Fatal(err)
	}
	vals, err := Float32.Unpack(data)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(vals[0].(float64)) {
		t.Errorf("Unpack = %v, want NaN", vals[0])
	}
}

func TestBoolean(t *testing.T) {
	for _, tc := range []struct {
		value any
		want  byte
	}{{true, 1}, {false, 0}, {1, 1}, {0, 0}} {
		got, err := Bool.Pack(tc.value)
		if err != nil {
			t.Fatalf("Pack(%v): %v", tc.value, err)
		}
		if !bytes.Equal(got, []byte{tc.want}) {
			t.Errorf("Pack(%v) = % x", tc.value, got)
		}
	}

	for _, tc := range []struct {
		data byte
		want bool
	}{{0x00, false}, {0x01, true}, {0x7f, true}, {0xff, true}} {
		vals, err := Bool.Unpack([]byte{tc.data})
		if err != nil {
			t.Fatal(err)
		}
		if vals[0] != tc.want {
			t.Errorf("Unpack(%#x) = %v, want %v", tc.data, vals[0], tc.want)
		}
	}

	if _, err := Bool.Pack("yes"); !stderrors.Is(err, errors.ErrValueEncoding) {
		t.Errorf("Pack(string) error = %v", err)
	}
	if Bool.WithAlignment(4).Alignment() != 4 || Bool.Alignment() != 1 {
		t.Error("WithAlignment should not change the shared instance")
	}
}

func TestChars(t *testing.T) {
	tests := []struct {
		name   string
		codec  Chars
		value  any
		packed []byte
		back   any
	}{
		{"bytes zero padded", FixedBytes(4), []byte("ab"), []byte{'a', 'b', 0, 0}, []byte{'a', 'b', 0, 0}},
		{"bytes from string", FixedBytes(2), "hi", []byte("hi"), []byte("hi")},
		{"string keeps nuls", FixedString(4, UTF8), "hi", []byte{'h', 'i', 0, 0}, "hi\x00\x00"},
		{"cstring strips nuls", CString(6, UTF8), "hi", []byte{'h', 'i', 0, 0, 0, 0}, "hi"},
		{"cstring full", CString(2, ASCII), "hi", []byte("hi"), "hi"},
		{"latin1", CString(4, Latin1), "é", []byte{0xe9, 0, 0, 0}, "é"},
		{"windows1252 euro", FixedString(1, Windows1252), "€", []byte{0x80}, "€"},
		{"utf16le", CString(6, UTF16LE), "A", []byte{'A', 0, 0, 0, 0, 0}, "A"},
		{"utf16be", CString(4, UTF16BE), "A", []byte{0, 'A', 0, 0}, "A"},
		{"utf8 multibyte", CString(4, UTF8), "é", []byte{0xc3, 0xa9, 0, 0}, "é"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.codec.Pack(tc.value)
			if err != nil {
				t.Fatalf("Pack: %v", err)
			}
			if !bytes.Equal(got, tc.packed) {
				t.Errorf("Pack = % x, want % x", got, tc.packed)
			}
			vals, err := tc.codec.Unpack(got)
			if err != nil {
				t.Fatalf("Unpack: %v", err)
			}
			switch want := tc.back.(type) {
			case []byte:
				if !bytes.Equal(vals[0].([]byte), want) {
					t.Errorf("Unpack = % x, want % x", vals[0], want)
				}
			default:
				if vals[0] != want {
					t.Errorf("Unpack = %q, want %q", vals[0], want)
				}
			}
		})
	}
}

func TestCharsUnpackCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	vals, err := FixedBytes(3).Unpack(src)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 9
	if vals[0].([]byte)[0] != 1 {
		t.Error("unpacked bytes alias the source buffer")
	}
}

func TestCharsErrors(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{"too long", func() error { _, err := FixedBytes(2).Pack("abc"); return err }},
		{"not ascii", func() error { _, err := FixedString(4, ASCII).Pack("é"); return err }},
		{"not latin1", func() error { _, err := FixedString(4, Latin1).Pack("€"); return err }},
		{"invalid utf8 pack", func() error { _, err := FixedString(4, UTF8).Pack("\xff"); return err }},
		{"invalid utf8 unpack", func() error { _, err := FixedString(2, UTF8).Unpack([]byte{0xff, 0xfe}); return err }},
		{"ascii unpack", func() error { _, err := CString(2, ASCII).Unpack([]byte{0x80, 0}); return err }},
		{"wrong type", func() error { _, err := FixedBytes(2).Pack(12); return err }},
		{"utf16 odd length", func() error { _, err := FixedString(3, UTF16LE).Unpack([]byte{'A', 0, 'B'}); return err }},
		{"utf16 lone high surrogate", func() error { _, err := FixedString(2, UTF16LE).Unpack([]byte{0x00, 0xd8}); return err }},
		{"utf16 lone low surrogate", func() error { _, err := FixedString(4, UTF16BE).Unpack([]byte{0xdc, 0x00, 0x00, 0x41}); return err }},
		{"utf16 invalid utf8 pack", func() error { _, err := UTF16LE.Encode("a\xffb"); return err }},
		{"cp1252 undefined byte", func() error { _, err := Windows1252.Decode([]byte{0x81}); return err }},
		{"cp1252 invalid utf8 pack", func() error { _, err := Windows1252.Encode("\xff"); return err }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !stderrors.Is(err, errors.ErrValueEncoding) {
				t.Errorf("got %v, want value encoding error", err)
			}
		})
	}
}

func TestUTF16SurrogatePair(t *testing.T) {
	c := FixedString(6, UTF16LE)
	data, err := c.Pack("a\U0001F600")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte{'a', 0, 0x3d, 0xd8, 0x00, 0xde}) {
		t.Errorf("Pack = % x", data)
	}
	vals, err := c.Unpack(data)
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != "a\U0001F600" {
		t.Errorf("Unpack = %q", vals[0])
	}

	s, err := Windows1252.Decode([]byte{0x80, 'x'})
	if err != nil || s != "€x" {
		t.Errorf("Decode = %q, %v", s, err)
	}
}

func TestPadding(t *testing.T) {
	p := NewPadding(3)
	if p.Arity() != 0 || p.Size() != 3 || p.Alignment() != 1 {
		t.Fatalf("padding shape = %d/%d/%d", p.Arity(), p.Size(), p.Alignment())
	}

	got, err := p.Pack()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0, 0, 0}) {
		t.Errorf("Pack = % x", got)
	}

	vals, err := p.Unpack([]byte{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 0 {
		t.Errorf("Unpack = %v, want no values", vals)
	}

	_, err = p.Unpack([]byte{0, 0, 1})
	if !stderrors.Is(err, errors.ErrPaddingValidation) {
		t.Errorf("got %v, want padding validation error", err)
	}

	if _, err := p.Pack(1); !stderrors.Is(err, errors.ErrArgumentCount) {
		t.Errorf("Pack(1) error = %v", err)
	}

	filled := NewPadding(2, WithPadByte(0xaa))
	got, _ = filled.Pack()
	if !bytes.Equal(got, []byte{0xaa, 0xaa}) {
		t.Errorf("Pack = % x", got)
	}
	if _, err := filled.Unpack([]byte{0, 0}); err == nil {
		t.Error("zero bytes should not validate against 0xaa")
	}
	if filled.Equal(NewPadding(2)) {
		t.Error("pad byte should take part in equality")
	}
}

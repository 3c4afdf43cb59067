package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhasePack,
				Kind:   KindValueEncoding,
				Path:   []string{"[1]", "[0]"},
				GoType: "string",
				Codec:  "int16le",
				Detail: "cannot convert",
			},
			contains: []string{"[pack]", "value_encoding", "[1].[0]", "string", "int16le", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseUnpack,
				Kind:  KindBufferTooSmall,
			},
			contains: []string{"[unpack]", "buffer_too_small"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseStream,
				Kind:   KindIO,
				Detail: "seek failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[stream]", "io", "seek failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseUnpack,
		Kind:  KindValueEncoding,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhasePack,
		Kind:  KindArgumentCount,
		Path:  []string{"[0]"},
	}

	if !err.Is(&Error{Phase: PhasePack, Kind: KindArgumentCount}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseUnpack, Kind: KindArgumentCount}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhasePack, Kind: KindBufferTooSmall}) {
		t.Error("Is should not match different kind")
	}

	if !errors.Is(err, ErrArgumentCount) {
		t.Error("errors.Is should match phase-less sentinel")
	}
	if errors.Is(err, ErrValueEncoding) {
		t.Error("errors.Is should not match other sentinel")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhasePack, KindValueEncoding).
		Path("[2]", "[1]").
		GoType("string").
		Codec("uint32be").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "integer", "string").
		Build()

	if err.Phase != PhasePack {
		t.Errorf("Phase = %v, want %v", err.Phase, PhasePack)
	}
	if err.Kind != KindValueEncoding {
		t.Errorf("Kind = %v, want %v", err.Kind, KindValueEncoding)
	}
	if len(err.Path) != 2 || err.Path[0] != "[2]" || err.Path[1] != "[1]" {
		t.Errorf("Path = %v, want [[2] [1]]", err.Path)
	}
	if err.GoType != "string" {
		t.Errorf("GoType = %v, want 'string'", err.GoType)
	}
	if err.Codec != "uint32be" {
		t.Errorf("Codec = %v, want 'uint32be'", err.Codec)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected integer, got string" {
		t.Errorf("Detail = %v, want 'expected integer, got string'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("ArgumentCount", func(t *testing.T) {
		err := ArgumentCount(PhasePack, nil, "struct", 3, 2)
		if err.Kind != KindArgumentCount {
			t.Errorf("Kind = %v, want %v", err.Kind, KindArgumentCount)
		}
		if !strings.Contains(err.Detail, "expected 3") {
			t.Errorf("Detail = %q, should mention expected count", err.Detail)
		}
	})

	t.Run("NotATuple", func(t *testing.T) {
		err := NotATuple(PhasePack, []string{"[0]"}, "struct", 7)
		if err.Kind != KindArgumentCount {
			t.Errorf("Kind = %v, want %v", err.Kind, KindArgumentCount)
		}
		if err.GoType != "int" {
			t.Errorf("GoType = %q, want int", err.GoType)
		}
	})

	t.Run("BufferTooSmall exact", func(t *testing.T) {
		err := BufferTooSmall(PhaseUnpack, "uint32le", 4, 2, 0, true)
		if err.Kind != KindBufferTooSmall {
			t.Errorf("Kind = %v, want %v", err.Kind, KindBufferTooSmall)
		}
		if !strings.Contains(err.Detail, "exactly 4 bytes") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("BufferTooSmall at least", func(t *testing.T) {
		err := BufferTooSmall(PhaseUnpack, "pascal", 3, 1, 8, false)
		if !strings.Contains(err.Detail, "at least 3 bytes at offset 8") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhasePack, []string{"[0]"}, "x", "int8")
		if err.Kind != KindValueEncoding {
			t.Errorf("Kind = %v, want %v", err.Kind, KindValueEncoding)
		}
		if err.GoType != "string" || err.Codec != "int8" {
			t.Errorf("GoType=%v Codec=%v", err.GoType, err.Codec)
		}
	})

	t.Run("TypeMismatch nil", func(t *testing.T) {
		err := TypeMismatch(PhasePack, nil, nil, "int8")
		if err.GoType != "nil" {
			t.Errorf("GoType = %q, want nil", err.GoType)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhasePack, []string{"val"}, 300, "uint8")
		if err.Kind != KindValueEncoding {
			t.Errorf("Kind = %v, want %v", err.Kind, KindValueEncoding)
		}
		if err.Value != 300 {
			t.Errorf("Value = %v, want 300", err.Value)
		}
	})

	t.Run("PaddingMismatch", func(t *testing.T) {
		err := PaddingMismatch(nil, "pad[3]", 2, 0x01, 0x00)
		if err.Kind != KindPaddingValidation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindPaddingValidation)
		}
		if !strings.Contains(err.Detail, "0x01") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseConstruct, "width must be 1..8")
		if !errors.Is(err, ErrInvalidInput) {
			t.Error("should match ErrInvalidInput")
		}
	})
}

func TestWithPath(t *testing.T) {
	base := ArgumentCount(PhasePack, []string{"[0]"}, "struct", 2, 1)
	wrapped := WithPath(base, "[3]")

	var e *Error
	if !errors.As(wrapped, &e) {
		t.Fatal("expected *Error")
	}
	if strings.Join(e.Path, ".") != "[3].[0]" {
		t.Errorf("Path = %v, want [3].[0]", e.Path)
	}
	if len(base.Path) != 1 {
		t.Errorf("original path mutated: %v", base.Path)
	}

	plain := errors.New("plain")
	if WithPath(plain, "[1]") != plain {
		t.Error("non-structured errors should pass through")
	}
}

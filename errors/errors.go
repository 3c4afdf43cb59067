package errors

import (
	"fmt"
	"strings"
)

// Phase names the operation that failed.
type Phase string

const (
	PhaseConstruct Phase = "construct" // codec construction
	PhasePack      Phase = "pack"      // Go values to bytes
	PhaseUnpack    Phase = "unpack"    // bytes to Go values
	PhaseStream    Phase = "stream"    // cursor handling on seekable streams
	PhaseCompile   Phase = "compile"   // format string compilation
)

// Kind is the failure category. Callers match on it through the Err sentinels.
type Kind string

const (
	KindArgumentCount     Kind = "argument_count"
	KindBufferTooSmall    Kind = "buffer_too_small"
	KindValueEncoding     Kind = "value_encoding"
	KindPaddingValidation Kind = "padding_validation"
	KindInvalidInput      Kind = "invalid_input"
	KindIO                Kind = "io"
)

// Sentinels for errors.Is matching regardless of phase.
var (
	ErrArgumentCount     = &Error{Kind: KindArgumentCount}
	ErrBufferTooSmall    = &Error{Kind: KindBufferTooSmall}
	ErrValueEncoding     = &Error{Kind: KindValueEncoding}
	ErrPaddingValidation = &Error{Kind: KindPaddingValidation}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrIO                = &Error{Kind: KindIO}
)

// Error carries the phase, kind and field path of a layout failure.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Codec  string
	Detail string
	Path   []string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Phase, e.Kind)
	if len(e.Path) > 0 {
		b.WriteString(" at " + strings.Join(e.Path, "."))
	}

	subject := make([]string, 0, 2)
	if e.GoType != "" {
		subject = append(subject, "Go type "+e.GoType)
	}
	if e.Codec != "" {
		subject = append(subject, "codec "+e.Codec)
	}
	if len(subject) > 0 {
		b.WriteString(" (" + strings.Join(subject, " into ") + ")")
	}

	if e.Detail != "" {
		b.WriteString(": " + e.Detail)
	}
	if e.Cause != nil {
		b.WriteString("; caused by: " + e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a Phase matches any phase of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder assembles an Error field by field for the less common shapes.
type Builder struct {
	err Error
}

// New starts a Builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

func (b *Builder) Codec(c string) *Builder {
	b.err.Codec = c
	return b
}

func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail formats msg with args when any are given.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

func (b *Builder) Build() *Error {
	return &b.err
}

// ArgumentCount creates an error for a pack call with the wrong number of values
func ArgumentCount(phase Phase, path []string, codec string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArgumentCount,
		Path:   path,
		Codec:  codec,
		Detail: fmt.Sprintf("expected %d value(s), got %d", want, got),
		Value:  got,
	}
}

// NotATuple creates an error for a nested structure value that is not exactly one tuple
func NotATuple(phase Phase, path []string, codec string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArgumentCount,
		Path:   path,
		Codec:  codec,
		GoType: typeName(value),
		Detail: "nested structure expects exactly one []any tuple",
		Value:  value,
	}
}

// BufferTooSmall creates a capacity error. Exact distinguishes fixed-size
// requirements from the "at least" requirement of variable-size types.
func BufferTooSmall(phase Phase, codec string, need, have int64, offset int64, exact bool) *Error {
	qual := "at least"
	if exact {
		qual = "exactly"
	}
	return &Error{
		Phase:  phase,
		Kind:   KindBufferTooSmall,
		Codec:  codec,
		Detail: fmt.Sprintf("requires %s %d bytes at offset %d, %d available", qual, need, offset, have),
		Value:  have,
	}
}

// TypeMismatch creates an error for a Go value a codec cannot encode
func TypeMismatch(phase Phase, path []string, value any, codec string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindValueEncoding,
		Path:   path,
		GoType: typeName(value),
		Codec:  codec,
		Detail: "unsupported value type",
		Value:  value,
	}
}

// Overflow creates an error for a value that does not fit the codec width
func Overflow(phase Phase, path []string, value any, codec string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindValueEncoding,
		Path:   path,
		Codec:  codec,
		Detail: fmt.Sprintf("value %v overflows %s", value, codec),
		Value:  value,
	}
}

// ValueEncoding creates a payload encoding/decoding error
func ValueEncoding(phase Phase, codec string, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindValueEncoding,
		Codec:  codec,
		Detail: detail,
		Cause:  cause,
	}
}

// PaddingMismatch creates an error for a pad byte that differs from the expected value
func PaddingMismatch(path []string, codec string, index int, got, want byte) *Error {
	return &Error{
		Phase:  PhaseUnpack,
		Kind:   KindPaddingValidation,
		Path:   path,
		Codec:  codec,
		Detail: fmt.Sprintf("pad byte %d is 0x%02x, expected 0x%02x", index, got, want),
		Value:  got,
	}
}

// InvalidInput reports a bad constructor argument or format string.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap attaches phase and kind to an error from outside the module.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// WithPath returns err with segment prepended to its path. Errors that are
// not *Error are returned unchanged.
func WithPath(err error, segment string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	cp := *e
	cp.Path = make([]string, 0, len(e.Path)+1)
	cp.Path = append(cp.Path, segment)
	cp.Path = append(cp.Path, e.Path...)
	return &cp
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}

package codec

import (
	"fmt"

	"github.com/wippyai/binlayout/errors"
	"github.com/wippyai/binlayout/internal/align"
	"github.com/wippyai/binlayout/internal/coerce"
)

// MaxPayload caps the payload a LengthPrefixed codec will read.
const MaxPayload = 1 << 30

// EncodeFunc converts a Go value to payload bytes.
type EncodeFunc func(v any) ([]byte, error)

// DecodeFunc converts payload bytes to a Go value. The slice may alias the
// source buffer and must be copied if retained.
type DecodeFunc func(b []byte) (any, error)

// LengthPrefixed is a block count followed by the payload. The count is the
// payload length divided by the block size, and the payload is zero-padded
// to the prefix alignment.
type LengthPrefixed struct {
	kind      string
	prefix    Integer
	blockSize int
	encode    EncodeFunc
	decode    DecodeFunc
	align     int
}

// NewLengthPrefixed returns a variable-size codec. kind names the payload
// conversion and is what Equal compares in place of the functions.
func NewLengthPrefixed(kind string, prefix Integer, blockSize int, encode EncodeFunc, decode DecodeFunc) (*LengthPrefixed, error) {
	if blockSize < 1 {
		return nil, errors.InvalidInput(errors.PhaseConstruct,
			fmt.Sprintf("block size must be positive, got %d", blockSize))
	}
	if prefix.width < 1 {
		return nil, errors.InvalidInput(errors.PhaseConstruct, "zero Integer used as length prefix")
	}
	if encode == nil || decode == nil {
		return nil, errors.InvalidInput(errors.PhaseConstruct, "encode and decode functions are required")
	}
	return &LengthPrefixed{
		kind:      kind,
		prefix:    prefix,
		blockSize: blockSize,
		encode:    encode,
		decode:    decode,
		align:     prefix.Alignment(),
	}, nil
}

// NewLengthPrefixedBytes returns a codec for opaque blobs whose length is a
// multiple of blockSize. Unpack returns a copy of the payload.
func NewLengthPrefixedBytes(prefix Integer, blockSize int) (*LengthPrefixed, error) {
	return NewLengthPrefixed("bytes", prefix, blockSize,
		func(v any) ([]byte, error) {
			b, ok := coerce.Bytes(v)
			if !ok {
				return nil, errors.TypeMismatch(errors.PhasePack, nil, v, "bytes")
			}
			return b, nil
		},
		func(b []byte) (any, error) {
			out := make([]byte, len(b))
			copy(out, b)
			return out, nil
		})
}

// NewPascalString returns a text codec whose prefix counts code units of enc.
func NewPascalString(prefix Integer, enc Encoding) (*LengthPrefixed, error) {
	unit := enc.unit
	if unit < 1 {
		unit = 1
	}
	return NewLengthPrefixed("pascal/"+enc.name, prefix, unit,
		func(v any) ([]byte, error) {
			switch s := v.(type) {
			case string:
				return enc.Encode(s)
			case []byte:
				return s, nil
			}
			return nil, errors.TypeMismatch(errors.PhasePack, nil, v, "pascal/"+enc.name)
		},
		func(b []byte) (any, error) {
			return enc.Decode(b)
		})
}

func (l *LengthPrefixed) Size() int                    { return -1 }
func (l *LengthPrefixed) VariableSize() bool           { return true }
func (l *LengthPrefixed) Alignment() int               { return l.align }
func (l *LengthPrefixed) Arity() int                   { return 1 }
func (l *LengthPrefixed) ByteOrder() (ByteOrder, bool) { return l.prefix.ByteOrder() }

// Prefix returns the length prefix codec.
func (l *LengthPrefixed) Prefix() Integer { return l.prefix }

// BlockSize returns the payload granularity in bytes.
func (l *LengthPrefixed) BlockSize() int { return l.blockSize }

// WithByteOrder returns l with the prefix in order o.
func (l *LengthPrefixed) WithByteOrder(o ByteOrder) *LengthPrefixed {
	cp := *l
	cp.prefix = l.prefix.WithByteOrder(o)
	return &cp
}

// WithAlignment returns l with alignment n; n <= 0 restores the prefix
// alignment.
func (l *LengthPrefixed) WithAlignment(n int) *LengthPrefixed {
	cp := *l
	cp.align = normalizeAlign(n, l.prefix.Alignment())
	return &cp
}

func (l *LengthPrefixed) Pack(values ...any) ([]byte, error) {
	if err := checkArity(l, values); err != nil {
		return nil, err
	}
	payload, err := l.encode(values[0])
	if err != nil {
		return nil, err
	}
	if len(payload)%l.blockSize != 0 {
		return nil, errors.New(errors.PhasePack, errors.KindValueEncoding).
			Codec(l.String()).
			Detail("payload of %d bytes is not a multiple of block size %d", len(payload), l.blockSize).
			Build()
	}
	head, err := l.prefix.Pack(len(payload) / l.blockSize)
	if err != nil {
		return nil, errors.WithPath(err, "length")
	}
	body := len(head) + len(payload)
	out := make([]byte, body, body+l.align)
	copy(out, head)
	copy(out[len(head):], payload)
	out = append(out, zeros(align.Padding(l.align, int64(body)))...)
	return out, nil
}

func (l *LengthPrefixed) Unpack(data []byte) ([]any, error) {
	r := NewReader(data)
	r.exact = false
	return l.Decode(r)
}

func (l *LengthPrefixed) Decode(r *Reader) ([]any, error) {
	if err := r.Align(l.align); err != nil {
		return nil, err
	}
	sub := r.Nest()
	head, err := l.prefix.Decode(sub)
	if err != nil {
		return nil, errors.WithPath(err, "length")
	}
	var count int64
	switch v := head[0].(type) {
	case int64:
		count = v
	case uint64:
		if v > MaxPayload {
			return nil, l.tooLarge(v)
		}
		count = int64(v)
	}
	if count < 0 {
		return nil, errors.ValueEncoding(errors.PhaseUnpack, l.String(),
			fmt.Sprintf("negative block count %d", count), nil)
	}
	size, ok := align.SafeMul(count, int64(l.blockSize))
	if !ok || size > MaxPayload {
		return nil, l.tooLarge(count)
	}
	payload, err := sub.Read(int(size), 1)
	if err != nil {
		return nil, err
	}
	v, err := l.decode(payload)
	if err != nil {
		return nil, err
	}
	if err := sub.Align(l.align); err != nil {
		return nil, err
	}
	return []any{v}, nil
}

func (l *LengthPrefixed) tooLarge(count any) error {
	return errors.ValueEncoding(errors.PhaseUnpack, l.String(),
		fmt.Sprintf("block count %v exceeds the %d byte payload limit", count, MaxPayload), nil)
}

func (l *LengthPrefixed) Equal(other TypeDef) bool {
	o, ok := other.(*LengthPrefixed)
	if !ok {
		return false
	}
	return l.kind == o.kind &&
		l.blockSize == o.blockSize &&
		l.align == o.align &&
		l.prefix.Equal(o.prefix)
}

func (l *LengthPrefixed) String() string {
	s := fmt.Sprintf("%s<%s>", l.kind, l.prefix.String())
	if l.blockSize != 1 {
		s += fmt.Sprintf("*%d", l.blockSize)
	}
	if l.align != l.prefix.Alignment() {
		s += fmt.Sprintf("/a%d", l.align)
	}
	return s
}

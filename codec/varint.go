package codec

import (
	stderrors "errors"

	"github.com/wippyai/binlayout/errors"
	"github.com/wippyai/binlayout/internal/coerce"
	"github.com/wippyai/binlayout/internal/leb128"
)

// VarInt is a LEB128 integer. Unsigned values unpack as uint64, signed as int64.
type VarInt struct {
	signed bool
}

func (c VarInt) Size() int                    { return -1 }
func (c VarInt) VariableSize() bool           { return true }
func (c VarInt) Alignment() int               { return 1 }
func (c VarInt) Arity() int                   { return 1 }
func (c VarInt) ByteOrder() (ByteOrder, bool) { return 0, false }
func (c VarInt) Signed() bool                 { return c.signed }

func (c VarInt) Pack(values ...any) ([]byte, error) {
	if err := checkArity(c, values); err != nil {
		return nil, err
	}
	v := values[0]
	if c.signed {
		i, ok := coerce.Int64(v)
		if !ok {
			if _, isUint := coerce.Uint64(v); isUint {
				return nil, errors.Overflow(errors.PhasePack, nil, v, c.String())
			}
			return nil, errors.TypeMismatch(errors.PhasePack, nil, v, c.String())
		}
		return leb128.AppendInt64(nil, i), nil
	}
	u, ok := coerce.Uint64(v)
	if !ok {
		if _, isInt := coerce.Int64(v); isInt {
			return nil, errors.Overflow(errors.PhasePack, nil, v, c.String())
		}
		return nil, errors.TypeMismatch(errors.PhasePack, nil, v, c.String())
	}
	return leb128.AppendUint64(nil, u), nil
}

func (c VarInt) Unpack(data []byte) ([]any, error) {
	return c.Decode(NewReader(data))
}

func (c VarInt) Decode(r *Reader) ([]any, error) {
	start := r.Offset()
	var (
		v   any
		err error
	)
	if c.signed {
		var i int64
		i, err = leb128.ReadInt64(r)
		v = i
	} else {
		var u uint64
		u, err = leb128.ReadUint64(r)
		v = u
	}
	if err != nil {
		return nil, c.decodeError(err, start, r.Offset())
	}
	return []any{v}, nil
}

func (c VarInt) decodeError(err error, start, end int64) error {
	if stderrors.Is(err, leb128.ErrOverflow) {
		return errors.ValueEncoding(errors.PhaseUnpack, c.String(), "varint exceeds 64 bits", err)
	}
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return err
	}
	e := errors.BufferTooSmall(errors.PhaseUnpack, c.String(), end-start+1, end-start, start, false)
	e.Cause = err
	return e
}

func (c VarInt) Equal(other TypeDef) bool {
	o, ok := other.(VarInt)
	return ok && c.signed == o.signed
}

func (c VarInt) String() string {
	if c.signed {
		return "varint"
	}
	return "varuint"
}

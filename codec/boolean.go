package codec

import (
	"fmt"

	"github.com/wippyai/binlayout/errors"
	"github.com/wippyai/binlayout/internal/coerce"
)

// Boolean is a single byte: 0x01 for true, 0x00 for false. Any non-zero byte
// decodes as true.
type Boolean struct {
	align int
}

func (c Boolean) Size() int                    { return 1 }
func (c Boolean) VariableSize() bool           { return false }
func (c Boolean) Alignment() int               { return normalizeAlign(c.align, 1) }
func (c Boolean) Arity() int                   { return 1 }
func (c Boolean) ByteOrder() (ByteOrder, bool) { return 0, false }

// WithAlignment returns c with alignment n.
func (c Boolean) WithAlignment(n int) Boolean {
	c.align = normalizeAlign(n, 1)
	return c
}

func (c Boolean) Pack(values ...any) ([]byte, error) {
	if err := checkArity(c, values); err != nil {
		return nil, err
	}
	b, ok := coerce.Bool(values[0])
	if !ok {
		return nil, errors.TypeMismatch(errors.PhasePack, nil, values[0], c.String())
	}
	if b {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

func (c Boolean) Unpack(data []byte) ([]any, error) {
	return unpackFixed(c, data)
}

func (c Boolean) Decode(r *Reader) ([]any, error) {
	b, err := r.Read(1, c.Alignment())
	if err != nil {
		return nil, err
	}
	return []any{b[0] != 0}, nil
}

func (c Boolean) Equal(other TypeDef) bool {
	o, ok := other.(Boolean)
	return ok && c.Alignment() == o.Alignment()
}

func (c Boolean) String() string {
	if c.Alignment() != 1 {
		return fmt.Sprintf("bool/a%d", c.Alignment())
	}
	return "bool"
}

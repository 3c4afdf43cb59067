package wasmmem

import (
	"context"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/binlayout/codec"
	"github.com/wippyai/binlayout/errors"
)

func log() *zap.Logger {
	return codec.Logger().Named("wasmmem")
}

// Memory lays codecs out in WebAssembly linear memory. Offsets are guest
// addresses, so AlignAbsolute matches the guest's own view of alignment.
type Memory struct {
	mem api.Memory
}

// Wrap returns a Memory over mem, or nil when mem is nil.
func Wrap(mem api.Memory) *Memory {
	if mem == nil {
		return nil
	}
	return &Memory{mem: mem}
}

// Size returns the current size of linear memory in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}

// view returns the whole of linear memory. The slice is invalidated when
// the guest grows its memory, so it is fetched again for every call.
func (m *Memory) view() []byte {
	buf, ok := m.mem.Read(0, m.mem.Size())
	if !ok {
		return nil
	}
	return buf
}

// PackInto packs values at a guest address and returns the span written,
// leading padding included.
func (m *Memory) PackInto(td codec.TypeDef, offset uint32, values []any, opts ...codec.IOOption) (int, error) {
	n, err := codec.PackInto(td, m.view(), int(offset), values, opts...)
	if err != nil {
		log().Debug("pack into linear memory failed",
			zap.String("codec", td.String()),
			zap.Uint32("offset", offset),
			zap.Uint32("memory_size", m.mem.Size()),
			zap.Error(err))
	}
	return n, err
}

// UnpackFrom decodes one value group at a guest address.
func (m *Memory) UnpackFrom(td codec.TypeDef, offset uint32, opts ...codec.IOOption) ([]any, int, error) {
	return codec.UnpackFrom(td, m.view(), int(offset), opts...)
}

// PackAlloc packs values into memory obtained from the guest allocator and
// returns the guest address of the first byte.
func (m *Memory) PackAlloc(ctx context.Context, alloc *Allocator, td codec.TypeDef, values ...any) (uint32, error) {
	data, err := td.Pack(values...)
	if err != nil {
		return 0, err
	}
	ptr, err := alloc.Alloc(ctx, uint32(len(data)), uint32(td.Alignment()))
	if err != nil {
		return 0, err
	}
	if !m.mem.Write(ptr, data) {
		return 0, errors.BufferTooSmall(errors.PhasePack, td.String(),
			int64(len(data)), int64(m.mem.Size())-int64(ptr), int64(ptr), true)
	}
	return ptr, nil
}

// Stream returns a seekable stream over linear memory positioned at 0.
func (m *Memory) Stream() *Stream {
	return &Stream{mem: m.mem}
}

// Stream is an io.ReadWriteSeeker over linear memory. Reads stop at the end
// of memory; writes past it fail. A Stream is not safe for concurrent use.
type Stream struct {
	mem api.Memory
	pos int64
}

var _ io.ReadWriteSeeker = (*Stream)(nil)

// Read reads from the current position.
func (s *Stream) Read(p []byte) (int, error) {
	size := int64(s.mem.Size())
	if s.pos >= size {
		return 0, io.EOF
	}
	n := int64(len(p))
	if rest := size - s.pos; n > rest {
		n = rest
	}
	data, ok := s.mem.Read(uint32(s.pos), uint32(n))
	if !ok {
		return 0, fmt.Errorf("memory read out of bounds: offset=%d, length=%d", s.pos, n)
	}
	copy(p, data)
	s.pos += n
	return int(n), nil
}

// Write writes at the current position.
func (s *Stream) Write(p []byte) (int, error) {
	if s.pos+int64(len(p)) > int64(s.mem.Size()) || !s.mem.Write(uint32(s.pos), p) {
		return 0, fmt.Errorf("memory write out of bounds: offset=%d, length=%d", s.pos, len(p))
	}
	s.pos += int64(len(p))
	return len(p), nil
}

// Seek sets the position for the next Read or Write.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += s.pos
	case io.SeekEnd:
		offset += int64(s.mem.Size())
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if offset < 0 {
		return 0, fmt.Errorf("negative position %d", offset)
	}
	s.pos = offset
	return offset, nil
}

// Allocator calls a guest allocation function with the
// (old_ptr, old_size, align, new_size) -> ptr signature of cabi_realloc.
type Allocator struct {
	fn api.Function
}

// NewAllocator wraps fn, or returns nil when fn is nil.
func NewAllocator(fn api.Function) *Allocator {
	if fn == nil {
		return nil
	}
	return &Allocator{fn: fn}
}

// Alloc reserves size bytes aligned to align.
func (a *Allocator) Alloc(ctx context.Context, size, align uint32) (uint32, error) {
	results, err := a.fn.Call(ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.Wrap(errors.PhasePack, errors.KindIO, err, "guest allocation failed")
	}
	if len(results) == 0 {
		return 0, errors.InvalidInput(errors.PhasePack, "allocator returned no result")
	}
	return uint32(results[0]), nil
}

// Free releases a block returned by Alloc.
func (a *Allocator) Free(ctx context.Context, ptr, size, align uint32) {
	if _, err := a.fn.Call(ctx, uint64(ptr), uint64(size), uint64(align), 0); err != nil {
		log().Warn("guest free failed", zap.Uint32("ptr", ptr), zap.Error(err))
	}
}

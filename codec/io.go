package codec

import (
	stderrors "errors"
	"io"

	"github.com/wippyai/binlayout/errors"
	"github.com/wippyai/binlayout/internal/align"
	"go.uber.org/zap"
)

// target is the byte storage behind the write/read funnel. Offsets are
// absolute positions in the buffer or stream.
type target interface {
	// capacity returns the bytes available from offset, or -1 when unknown.
	capacity(offset int64) int64
	writeAt(offset int64, p []byte) error
	// readAt returns n bytes at offset. On a short read it returns the bytes
	// that were consumed together with the error.
	readAt(offset int64, n int64) ([]byte, error)
}

// bufferTarget is a fixed-capacity random-access buffer.
type bufferTarget struct {
	buf []byte
}

func (b bufferTarget) capacity(offset int64) int64 {
	if offset >= int64(len(b.buf)) {
		return 0
	}
	return int64(len(b.buf)) - offset
}

func (b bufferTarget) writeAt(offset int64, p []byte) error {
	copy(b.buf[offset:], p)
	return nil
}

func (b bufferTarget) readAt(offset int64, n int64) ([]byte, error) {
	return b.buf[offset : offset+n], nil
}

// growTarget extends on write; Pack implementations assemble through it.
type growTarget struct {
	buf []byte
}

func (g *growTarget) capacity(int64) int64 { return -1 }

func (g *growTarget) writeAt(offset int64, p []byte) error {
	end := offset + int64(len(p))
	if end > int64(len(g.buf)) {
		g.buf = append(g.buf, make([]byte, end-int64(len(g.buf)))...)
	}
	copy(g.buf[offset:], p)
	return nil
}

func (g *growTarget) readAt(offset int64, n int64) ([]byte, error) {
	return g.buf[offset : offset+n], nil
}

// streamWriter writes sequentially at the stream's cursor.
type streamWriter struct {
	w io.Writer
}

func (s streamWriter) capacity(int64) int64 { return -1 }

func (s streamWriter) writeAt(_ int64, p []byte) error {
	n, err := s.w.Write(p)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errors.Wrap(errors.PhasePack, errors.KindIO, err, "stream write")
	}
	return nil
}

func (s streamWriter) readAt(int64, int64) ([]byte, error) {
	return nil, errors.InvalidInput(errors.PhaseUnpack, "stream is write-only")
}

// streamReader reads sequentially from the stream's cursor.
type streamReader struct {
	r io.Reader
}

func (s streamReader) capacity(int64) int64 { return -1 }

func (s streamReader) writeAt(int64, []byte) error {
	return errors.InvalidInput(errors.PhasePack, "stream is read-only")
}

func (s streamReader) readAt(_ int64, n int64) ([]byte, error) {
	p := make([]byte, n)
	got, err := io.ReadFull(s.r, p)
	if err != nil {
		return p[:got], err
	}
	return p, nil
}

func leadingPadding(policy AlignPolicy, alignment int, offset, origin int64) int64 {
	switch policy {
	case AlignNone:
		return 0
	case AlignAbsolute:
		return align.Padding(alignment, offset)
	default:
		return align.Padding(alignment, offset-origin)
	}
}

var zeroPad [64]byte

func zeros(n int64) []byte {
	if n <= int64(len(zeroPad)) {
		return zeroPad[:n]
	}
	return make([]byte, n)
}

// write places data at offset after the leading padding implied by alignment
// and returns the span consumed. Capacity is checked before any byte is written.
func write(t target, data []byte, alignment int, offset, origin int64, policy AlignPolicy, codec string) (int64, error) {
	pad := leadingPadding(policy, alignment, offset, origin)
	span := pad + int64(len(data))
	if c := t.capacity(offset); c >= 0 && c < span {
		return 0, errors.BufferTooSmall(errors.PhasePack, codec, span, c, offset, true)
	}
	if pad > 0 {
		if err := t.writeAt(offset, zeros(pad)); err != nil {
			return 0, err
		}
	}
	if err := t.writeAt(offset+pad, data); err != nil {
		return pad, err
	}
	return span, nil
}

// read skips the leading padding implied by alignment and returns size
// payload bytes together with the span consumed. Capacity is checked before
// any byte is read; targets with unknown capacity fail on the short read
// after consuming whatever was available.
func read(t target, size int64, alignment int, offset, origin int64, policy AlignPolicy, exact bool, codec string) ([]byte, int64, error) {
	pad := leadingPadding(policy, alignment, offset, origin)
	span := pad + size
	if c := t.capacity(offset); c >= 0 && c < span {
		return nil, 0, errors.BufferTooSmall(errors.PhaseUnpack, codec, span, c, offset, exact)
	}
	if pad > 0 {
		got, err := t.readAt(offset, pad)
		if err != nil {
			return nil, int64(len(got)), shortRead(err, codec, span, int64(len(got)), offset, exact)
		}
	}
	data, err := t.readAt(offset+pad, size)
	if err != nil {
		return nil, pad + int64(len(data)), shortRead(err, codec, span, pad+int64(len(data)), offset, exact)
	}
	return data, span, nil
}

func shortRead(err error, codec string, need, have, offset int64, exact bool) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		e := errors.BufferTooSmall(errors.PhaseUnpack, codec, need, have, offset, exact)
		e.Cause = err
		return e
	}
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return err
	}
	return errors.Wrap(errors.PhaseUnpack, errors.KindIO, err, "stream read")
}

// cursor is the shared read position of a Reader and the Readers nested in it.
type cursor struct {
	off int64
}

// Reader is the sequential, padding-aware view codecs decode through. A
// Reader created by Nest shares its parent's position but measures padding
// from where the nested structure starts.
type Reader struct {
	t      target
	cur    *cursor
	origin int64
	policy AlignPolicy
	exact  bool
	codec  string
}

// NewReader returns a Reader over data starting at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{
		t:     bufferTarget{buf: data},
		cur:   &cursor{},
		exact: true,
	}
}

func newReader(t target, offset int64, cfg ioConfig, td TypeDef) *Reader {
	return &Reader{
		t:      t,
		cur:    &cursor{off: offset},
		origin: cfg.origin,
		policy: cfg.policy,
		exact:  !td.VariableSize(),
		codec:  td.String(),
	}
}

// Offset returns the absolute position of the cursor.
func (r *Reader) Offset() int64 {
	return r.cur.off
}

// Read consumes leading padding for alignment followed by size bytes and
// returns the payload. The returned slice may alias the underlying buffer.
func (r *Reader) Read(size int, alignment int) ([]byte, error) {
	data, span, err := read(r.t, int64(size), alignment, r.cur.off, r.origin, r.policy, r.exact, r.codec)
	r.cur.off += span
	return data, err
}

// Align consumes the padding needed to reach the next multiple of alignment.
func (r *Reader) Align(alignment int) error {
	_, err := r.Read(0, alignment)
	return err
}

// ReadByte implements io.ByteReader without alignment.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.Read(1, 1)
	if err != nil {
		var structured *errors.Error
		if stderrors.As(err, &structured) && structured.Kind == errors.KindBufferTooSmall {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return b[0], nil
}

// Nest returns a Reader that shares this cursor and measures padding from
// the current position.
func (r *Reader) Nest() *Reader {
	return &Reader{
		t:      r.t,
		cur:    r.cur,
		origin: r.cur.off,
		policy: AlignLocal,
		exact:  r.exact,
		codec:  r.codec,
	}
}

// assemble builds Pack output through the same funnel the adapters use.
type assembler struct {
	t   growTarget
	off int64
}

func newAssembler(sizeHint int) *assembler {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &assembler{t: growTarget{buf: make([]byte, 0, sizeHint)}}
}

func (a *assembler) put(data []byte, alignment int, codec string) error {
	n, err := write(&a.t, data, alignment, a.off, 0, AlignLocal, codec)
	a.off += n
	return err
}

func (a *assembler) bytes() []byte {
	return a.t.buf
}

// PackInto packs values at offset in buf, inserting leading padding, and
// returns the span written. Nothing is written when buf is too small.
func PackInto(td TypeDef, buf []byte, offset int, values []any, opts ...IOOption) (int, error) {
	if offset < 0 {
		return 0, errors.InvalidInput(errors.PhasePack, "negative offset")
	}
	if offset > len(buf) {
		return 0, errors.BufferTooSmall(errors.PhasePack, td.String(), int64(offset), int64(len(buf)), 0, false)
	}
	cfg := newIOConfig(opts)
	data, err := td.Pack(values...)
	if err != nil {
		return 0, err
	}
	n, err := write(bufferTarget{buf: buf}, data, td.Alignment(), int64(offset), cfg.origin, cfg.policy, td.String())
	return int(n), err
}

// UnpackFrom decodes one value group at offset in buf and returns it with
// the span consumed. buf is never modified.
func UnpackFrom(td TypeDef, buf []byte, offset int, opts ...IOOption) ([]any, int, error) {
	if offset < 0 {
		return nil, 0, errors.InvalidInput(errors.PhaseUnpack, "negative offset")
	}
	if offset > len(buf) {
		return nil, 0, errors.BufferTooSmall(errors.PhaseUnpack, td.String(), int64(offset), int64(len(buf)), 0, false)
	}
	cfg := newIOConfig(opts)
	t := bufferTarget{buf: buf}
	off := int64(offset)
	if !td.VariableSize() {
		need := leadingPadding(cfg.policy, td.Alignment(), off, cfg.origin) + int64(td.Size())
		if have := t.capacity(off); have < need {
			return nil, 0, errors.BufferTooSmall(errors.PhaseUnpack, td.String(), need, have, off, true)
		}
	}
	r := newReader(t, off, cfg, td)
	values, err := td.Decode(r)
	if err != nil {
		return nil, 0, err
	}
	return values, int(r.cur.off - off), nil
}

// PackStream packs values at the stream's cursor and advances it.
func PackStream(td TypeDef, w io.WriteSeeker, values []any, opts ...IOOption) (int, error) {
	cfg := newIOConfig(opts)
	pos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseStream, errors.KindIO, err, "query cursor")
	}
	data, err := td.Pack(values...)
	if err != nil {
		return 0, err
	}
	n, err := write(streamWriter{w: w}, data, td.Alignment(), pos, cfg.origin, cfg.policy, td.String())
	return int(n), err
}

// UnpackStream decodes one value group at the stream's cursor and advances
// it. A read that reaches the end of the stream consumes what was available
// before failing.
func UnpackStream(td TypeDef, rs io.ReadSeeker, opts ...IOOption) ([]any, int, error) {
	cfg := newIOConfig(opts)
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, 0, errors.Wrap(errors.PhaseStream, errors.KindIO, err, "query cursor")
	}
	r := newReader(streamReader{r: rs}, pos, cfg, td)
	values, err := td.Decode(r)
	n := int(r.cur.off - pos)
	if err != nil {
		return nil, n, err
	}
	return values, n, nil
}

// PackStreamAt packs values at offset and restores the cursor afterwards.
func PackStreamAt(td TypeDef, w io.WriteSeeker, offset int64, values []any, opts ...IOOption) (n int, err error) {
	restore, err := seekAndRestore(w, offset)
	if err != nil {
		return 0, err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return PackStream(td, w, values, opts...)
}

// UnpackStreamAt decodes at offset and restores the cursor afterwards.
func UnpackStreamAt(td TypeDef, rs io.ReadSeeker, offset int64, opts ...IOOption) (values []any, n int, err error) {
	restore, err := seekAndRestore(rs, offset)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return UnpackStream(td, rs, opts...)
}

func seekAndRestore(s io.Seeker, offset int64) (func() error, error) {
	saved, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStream, errors.KindIO, err, "query cursor")
	}
	if _, err := s.Seek(offset, io.SeekStart); err != nil {
		return nil, errors.Wrap(errors.PhaseStream, errors.KindIO, err, "seek to offset")
	}
	return func() error {
		if _, err := s.Seek(saved, io.SeekStart); err != nil {
			Logger().Warn("cursor restore failed",
				zap.Int64("saved", saved),
				zap.Int64("offset", offset),
				zap.Error(err))
			return errors.Wrap(errors.PhaseStream, errors.KindIO, err, "restore cursor")
		}
		return nil
	}, nil
}

// Package leb128 implements LEB128 variable-length integers.
package leb128

import (
	"errors"
	"io"
)

// ErrOverflow is returned when a LEB128 value exceeds 64 bits.
var ErrOverflow = errors.New("leb128: overflow")

// MaxLen is the longest encoding of a 64-bit value.
const MaxLen = 10

// groups reads one encoding into acc and returns the final byte and the
// number of bytes consumed.
func groups(r io.ByteReader, acc *uint64) (last byte, n int, err error) {
	for n < MaxLen {
		b, rerr := r.ReadByte()
		if rerr != nil {
			return 0, n, rerr
		}
		*acc |= uint64(b&0x7f) << (7 * n)
		n++
		if b&0x80 == 0 {
			return b, n, nil
		}
	}
	return 0, n, ErrOverflow
}

// ReadUint64 reads an unsigned value. The tenth byte may only carry bit 63.
func ReadUint64(r io.ByteReader) (uint64, error) {
	var v uint64
	last, n, err := groups(r, &v)
	if err != nil {
		return 0, err
	}
	if n == MaxLen && last > 1 {
		return 0, ErrOverflow
	}
	return v, nil
}

// ReadInt64 reads a signed value. A ten byte encoding must end in 0x00 or 0x7f.
func ReadInt64(r io.ByteReader) (int64, error) {
	var v uint64
	last, n, err := groups(r, &v)
	if err != nil {
		return 0, err
	}
	if n == MaxLen {
		if last != 0 && last != 0x7f {
			return 0, ErrOverflow
		}
		return int64(v), nil
	}
	if shift := 7 * n; last&0x40 != 0 {
		v |= ^uint64(0) << shift
	}
	return int64(v), nil
}

// AppendUint64 appends the unsigned LEB128 encoding of v to dst.
func AppendUint64(dst []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// AppendInt64 appends the signed LEB128 encoding of v to dst.
func AppendInt64(dst []byte, v int64) []byte {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

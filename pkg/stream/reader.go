// Package stream provides a little-endian cursor over an in-memory buffer
// with a stack of nested read limits, as needed by chunked binary formats.
package stream

import (
	"encoding/binary"
	"math"
)

// Reader reads little-endian values from a byte slice.
//
// Every read is bounded by the innermost active limit. Reading past the limit
// yields zero values and leaves the cursor on the limit, so a corrupt length
// field can never move the cursor outside the enclosing chunk.
type Reader struct {
	data   []byte
	pos    int
	limit  int
	limits []int
}

// NewReader returns a Reader positioned at the start of data, limited to the
// whole buffer.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, limit: len(data)}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of bytes left until the end of the buffer,
// ignoring any read limit.
func (r *Reader) Remaining() int { return len(r.data) - r.pos }

// RemainingToLimit returns the number of bytes left until the active limit.
func (r *Reader) RemainingToLimit() int {
	if r.pos >= r.limit {
		return 0
	}
	return r.limit - r.pos
}

// PushLimit installs a nested read limit at the absolute position end.
// The new limit is clamped so that it never lies behind the cursor or past
// the enclosing limit.
func (r *Reader) PushLimit(end int) {
	if end < r.pos {
		end = r.pos
	}
	if end > r.limit {
		end = r.limit
	}
	r.limits = append(r.limits, r.limit)
	r.limit = end
}

// PopLimit skips any bytes left before the innermost limit and restores the
// enclosing one. Popping with no pushed limit only skips to the end.
func (r *Reader) PopLimit() {
	r.SkipToLimit()
	if n := len(r.limits); n > 0 {
		r.limit = r.limits[n-1]
		r.limits = r.limits[:n-1]
	}
}

// SkipToLimit moves the cursor to the active limit.
func (r *Reader) SkipToLimit() {
	if r.pos < r.limit {
		r.pos = r.limit
	}
}

// Skip advances the cursor by n bytes, stopping at the active limit.
func (r *Reader) Skip(n int) {
	if n <= 0 {
		return
	}
	if n > r.RemainingToLimit() {
		r.pos = r.limit
		return
	}
	r.pos += n
}

// take returns the next n bytes, or nil if fewer than n remain before the
// limit (in which case the cursor is moved to the limit).
func (r *Reader) take(n int) []byte {
	if n > r.RemainingToLimit() {
		r.SkipToLimit()
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// U8 reads an unsigned byte.
func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// I16 reads a little-endian int16.
func (r *Reader) I16() int16 { return int16(r.U16()) }

// U32 reads a little-endian uint32.
func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// I32 reads a little-endian int32.
func (r *Reader) I32() int32 { return int32(r.U32()) }

// F32 reads a little-endian IEEE 754 float32.
func (r *Reader) F32() float32 { return math.Float32frombits(r.U32()) }

// F64 reads a little-endian IEEE 754 float64.
func (r *Reader) F64() float64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// CString reads a NUL-terminated byte string in place and advances past the
// terminator. The returned slice aliases the buffer and excludes the NUL. If
// no terminator is found before the limit, the rest of the limited region is
// returned.
func (r *Reader) CString() []byte {
	start := r.pos
	for r.pos < r.limit {
		if r.data[r.pos] == 0 {
			s := r.data[start:r.pos]
			r.pos++
			return s
		}
		r.pos++
	}
	return r.data[start:r.pos]
}

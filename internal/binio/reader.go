package binio

import (
	"encoding/binary"

	"github.com/gviegas/mslice/internal/slicerr"
)

// Reader is a positional reader over an in-memory buffer. Every typed read
// and ReadBytes is bounds-checked: a read that would run past the end of
// the buffer returns a slicerr.Truncated error and leaves the read
// position unchanged.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for positional reading. The returned Reader borrows
// buf; it is not copied.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Pos returns the current read position.
func (r *Reader) Pos() int { return r.pos }

// Seek moves the read position to an absolute offset.
func (r *Reader) Seek(pos int) { r.pos = pos }

// Advance moves the read position forward by amount bytes.
func (r *Reader) Advance(amount int) { r.pos += amount }

// ExecuteAt runs f with the read position temporarily set to pos,
// restoring the original position before returning.
func (r *Reader) ExecuteAt(pos int, f func(*Reader)) {
	saved := r.pos
	r.pos = pos
	f(r)
	r.pos = saved
}

// Eof reports whether the read position has reached the end of the
// buffer.
func (r *Reader) Eof() bool { return r.pos >= len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) require(n int) error {
	if r.pos+n > len(r.buf) {
		return slicerr.Newf(slicerr.Truncated, "need %d bytes at offset %d, have %d", n, r.pos, len(r.buf))
	}
	return nil
}

// ReadBytes returns the next length bytes, borrowing from the underlying
// buffer, and advances the read position.
func (r *Reader) ReadBytes(length int) ([]byte, error) {
	if err := r.require(length); err != nil {
		return nil, err
	}
	out := r.buf[r.pos : r.pos+length]
	r.pos += length
	return out, nil
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	return v != 0, err
}

func (r *Reader) ReadU8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) ReadU16BE() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadU16LE() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) ReadU32BE() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadU32LE() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) ReadU64BE() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) ReadU64LE() (uint64, error) {
	if err := r.require(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) ReadF32BE() (float32, error) {
	v, err := r.ReadU32BE()
	return f32frombits(v), err
}

func (r *Reader) ReadF32LE() (float32, error) {
	v, err := r.ReadU32LE()
	return f32frombits(v), err
}

func (r *Reader) ReadF64BE() (float64, error) {
	v, err := r.ReadU64BE()
	return f64frombits(v), err
}

func (r *Reader) ReadF64LE() (float64, error) {
	v, err := r.ReadU64LE()
	return f64frombits(v), err
}

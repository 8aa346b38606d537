// Package binio implements positional binary read/write streams used by
// the run-length codecs and the container serializer.
package binio

import "encoding/binary"

// Writer is a growable byte buffer with positional writes: a reserved
// region can be filled in later once its contents are known (forward
// references such as section lengths or checksums).
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Pos returns the current write position (== number of bytes written so
// far).
func (w *Writer) Pos() int { return len(w.buf) }

// Bytes returns the accumulated buffer. The returned slice aliases the
// Writer's internal storage.
func (w *Writer) Bytes() []byte { return w.buf }

// WriteBytes appends data verbatim.
func (w *Writer) WriteBytes(data []byte) { w.buf = append(w.buf, data...) }

// Reserve appends length zero bytes and returns the absolute offset of the
// hole, to be filled later via ExecuteAt or ViewMut.
func (w *Writer) Reserve(length int) int {
	start := len(w.buf)
	w.buf = append(w.buf, make([]byte, length)...)
	return start
}

// ExecuteAt runs f against a Writer scoped to the region starting at the
// given absolute offset, letting f overwrite previously reserved bytes.
// Bytes written past the current end of w are not added to w.
func (w *Writer) ExecuteAt(offset int, f func(*Writer)) {
	sub := &Writer{buf: w.buf[offset:offset:len(w.buf)]}
	f(sub)
}

// ViewMut returns a mutable view of size bytes starting at offset, for
// callers that want to patch a region directly rather than through
// ExecuteAt.
func (w *Writer) ViewMut(offset, size int) []byte {
	return w.buf[offset : offset+size]
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteBytes([]byte{1})
	} else {
		w.WriteBytes([]byte{0})
	}
}

func (w *Writer) WriteU8(v uint8) { w.WriteBytes([]byte{v}) }

func (w *Writer) WriteU16BE(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.WriteBytes(b[:])
}

func (w *Writer) WriteU16LE(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.WriteBytes(b[:])
}

func (w *Writer) WriteU32BE(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.WriteBytes(b[:])
}

func (w *Writer) WriteU32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.WriteBytes(b[:])
}

func (w *Writer) WriteU64BE(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.WriteBytes(b[:])
}

func (w *Writer) WriteU64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.WriteBytes(b[:])
}

func (w *Writer) WriteF32BE(v float32) { w.WriteU32BE(f32bits(v)) }
func (w *Writer) WriteF32LE(v float32) { w.WriteU32LE(f32bits(v)) }
func (w *Writer) WriteF64BE(v float64) { w.WriteU64BE(f64bits(v)) }
func (w *Writer) WriteF64LE(v float64) { w.WriteU64LE(f64bits(v)) }

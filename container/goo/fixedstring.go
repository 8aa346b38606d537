// Package goo implements the "Goo V3.0" container format: a fixed-size
// header followed by one variable-length record per layer, each wrapping
// an rle.Codec2 payload. Every multi-byte field is big-endian.
package goo

import (
	"bytes"

	"github.com/gviegas/mslice/internal/binio"
)

// FixedString is a fixed-width, null-padded ASCII field. Constructing one
// truncates rather than errors when the text is longer than width,
// matching the reference container's SizedString behavior.
type FixedString struct {
	width int
	value string
}

// NewFixedString returns a FixedString of the given width, truncating s
// if it does not fit.
func NewFixedString(width int, s string) FixedString {
	if len(s) > width {
		s = s[:width]
	}
	return FixedString{width: width, value: s}
}

// String returns the text with trailing padding stripped.
func (s FixedString) String() string { return s.value }

// Serialize writes the field as exactly width bytes, null-padded.
func (s FixedString) Serialize(w *binio.Writer) {
	buf := make([]byte, s.width)
	copy(buf, s.value)
	w.WriteBytes(buf)
}

// DeserializeFixedString reads a width-byte field and trims at the first
// null byte (or the full width, if none is present).
func DeserializeFixedString(r *binio.Reader, width int) (FixedString, error) {
	b, err := r.ReadBytes(width)
	if err != nil {
		return FixedString{}, err
	}
	n := bytes.IndexByte(b, 0)
	if n < 0 {
		n = len(b)
	}
	return FixedString{width: width, value: string(b[:n])}, nil
}

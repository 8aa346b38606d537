package binio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU8(0x12)
	w.WriteU16BE(0x3456)
	w.WriteU32BE(0x789ABCDE)
	w.WriteF32BE(3.5)
	w.WriteBool(true)

	r := NewReader(w.Bytes())

	v8, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x12), v8)

	v16, err := r.ReadU16BE()
	require.NoError(t, err)
	require.Equal(t, uint16(0x3456), v16)

	v32, err := r.ReadU32BE()
	require.NoError(t, err)
	require.Equal(t, uint32(0x789ABCDE), v32)

	vf, err := r.ReadF32BE()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), vf)

	vb, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, vb)

	require.True(t, r.Eof())
}

func TestReserveAndExecuteAt(t *testing.T) {
	w := NewWriter()
	hole := w.Reserve(4)
	w.WriteU32BE(1)
	w.ExecuteAt(hole, func(sub *Writer) {
		sub.WriteU32BE(0xDEADBEEF)
	})

	r := NewReader(w.Bytes())
	patched, err := r.ReadU32BE()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), patched)

	unpatched, err := r.ReadU32BE()
	require.NoError(t, err)
	require.Equal(t, uint32(1), unpatched)
}

func TestReadPastEndIsTruncated(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.ReadU32BE()
	require.Error(t, err)
}

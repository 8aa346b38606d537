package rle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodec1RoundTripBoundary(t *testing.T) {
	runs := []Run{
		{Length: 1, Value: 255},
		{Length: 127, Value: 0},
		{Length: 128, Value: 255},
		{Length: 16384, Value: 0},
	}

	enc := NewCodec1Encoder()
	for _, r := range runs {
		enc.AddRun(r.Length, r.Value)
	}

	got := Codec1Decode(enc.Bytes())
	require.Equal(t, runs, got)
}

func TestCodec1RoundTripWidthMaxima(t *testing.T) {
	runs := []Run{
		{Length: 1, Value: 0},
		{Length: 2, Value: 255},
		{Length: 0x3FFF, Value: 0},
		{Length: 0x1FFFFF, Value: 255},
	}

	enc := NewCodec1Encoder()
	for _, r := range runs {
		enc.AddRun(r.Length, r.Value)
	}

	got := Codec1Decode(enc.Bytes())
	require.Equal(t, runs, got)
}

func TestCodec2Checksum(t *testing.T) {
	enc := NewCodec2Encoder()
	enc.AddRun(3, 10)
	enc.AddRun(5, 20)

	data, checksum := enc.Finish()

	var sum uint8
	for _, b := range data {
		sum += b
	}
	require.Equal(t, ^sum, checksum)
}

func TestCodec2RoundTripBinaryMask(t *testing.T) {
	runs := []Run{
		{Length: 10, Value: 0},
		{Length: 20, Value: 255},
		{Length: 300, Value: 0},
		{Length: 0x100001, Value: 255},
	}

	enc := NewCodec2Encoder()
	for _, r := range runs {
		enc.AddRun(r.Length, r.Value)
	}

	got := Codec2Decode(enc.Bytes())
	require.Equal(t, runs, got)
}

func TestCodec2FullBlackFullWhiteTags(t *testing.T) {
	enc := NewCodec2Encoder()
	enc.AddRun(4, 0x00)
	data := enc.Bytes()
	require.Equalf(t, uint8(0b00), data[0]>>6, "expected full-black tag")

	enc2 := NewCodec2Encoder()
	enc2.AddRun(4, 0xFF)
	data2 := enc2.Bytes()
	require.Equalf(t, uint8(0b11), data2[0]>>6, "expected full-white tag")
}

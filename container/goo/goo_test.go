package goo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gviegas/mslice/internal/binio"
	"github.com/gviegas/mslice/rle"
	"github.com/gviegas/mslice/slicer"
)

func TestFixedStringTruncatesAndPads(t *testing.T) {
	s := NewFixedString(4, "hello")
	w := binio.NewWriter()
	s.Serialize(w)
	require.Len(t, w.Bytes(), 4)

	r := binio.NewReader(w.Bytes())
	got, err := DeserializeFixedString(r, 4)
	require.NoError(t, err)
	require.Equal(t, "hell", got.String())
}

func TestFixedStringPadsShortValue(t *testing.T) {
	s := NewFixedString(8, "V3.0")
	w := binio.NewWriter()
	s.Serialize(w)

	r := binio.NewReader(w.Bytes())
	got, err := DeserializeFixedString(r, 8)
	require.NoError(t, err)
	require.Equal(t, "V3.0", got.String())
}

func TestPreviewImageRoundTrip(t *testing.T) {
	rgba := make([]byte, 4*4*4)
	for i := range rgba {
		rgba[i] = byte(i)
	}
	p := PreviewFromRGBA(4, 4, rgba)

	w := binio.NewWriter()
	p.Serialize(w)

	r := binio.NewReader(w.Bytes())
	got, err := DeserializePreviewImage(r, 4, 4)
	require.NoError(t, err)
	require.Equal(t, p.Pixels, got.Pixels)
}

func TestHeaderRoundTrip(t *testing.T) {
	h := NewHeader("V3.0", "mslice", "0.1.0", "2026-01-01 00:00:00", "standard", "Default", "default")
	h.LayerCount = 3
	h.XResolution = 1920
	h.YResolution = 1080
	h.XSize = 120
	h.YSize = 68
	h.LayerThickness = 0.05
	h.ExposureTime = 3
	h.ExposureDelayMode = true
	h.BottomLightPWM = 255
	h.LightPWM = 200
	h.GreyScaleLevel = true
	h.TransitionLayers = 5

	w := binio.NewWriter()
	h.Serialize(w)

	r := binio.NewReader(w.Bytes())
	got, err := DeserializeHeader(r)
	require.NoError(t, err)
	require.Equal(t, h, *got)
	require.Equal(t, "V3.0", got.Version.String())
}

func TestHeaderRejectsBadMagic(t *testing.T) {
	h := NewHeader("V3.0", "", "", "", "", "", "")
	w := binio.NewWriter()
	h.Serialize(w)

	buf := w.Bytes()
	buf[4] ^= 0xFF // corrupt a magic byte

	_, err := DeserializeHeader(binio.NewReader(buf))
	require.Error(t, err)
}

func TestLayerRoundTrip(t *testing.T) {
	enc := NewLayerEncoder()
	enc.AddRun(10, 0x00)
	enc.AddRun(20, 0xFF)

	layer := enc.Finish(0, testExposureSource{})
	layer.PausePositionZ = 150

	w := binio.NewWriter()
	layer.Serialize(w)

	r := binio.NewReader(w.Bytes())
	got, err := DeserializeLayer(r)
	require.NoError(t, err)
	require.Equal(t, layer, *got)
}

func TestLayerRejectsCorruptedChecksum(t *testing.T) {
	enc := NewLayerEncoder()
	enc.AddRun(5, 0xFF)
	layer := enc.Finish(0, testExposureSource{})

	w := binio.NewWriter()
	layer.Serialize(w)

	buf := w.Bytes()
	buf[len(buf)-3] ^= 0xFF // corrupt the checksum byte (before the trailing delimiter)

	_, err := DeserializeLayer(binio.NewReader(buf))
	require.Error(t, err)
}

func TestFileRoundTrip(t *testing.T) {
	cfg := &slicer.SliceConfig{
		PlatformResolutionX: 16,
		PlatformResolutionY: 16,
		PlatformSizeX:       16,
		PlatformSizeY:       16,
		PlatformSizeZ:       4,
		SliceHeightMM:       1,
		Exposure:            slicer.ExposureProfile{ExposureTime: 3},
		FirstExposure:       slicer.ExposureProfile{ExposureTime: 30},
		FirstLayers:         1,
	}

	result := &slicer.SliceResult[Layer]{Config: cfg}
	for i := 0; i < 3; i++ {
		enc := NewLayerEncoder()
		enc.AddRun(256, 0xFF)
		result.Layers = append(result.Layers, enc.Finish(uint64(i), cfg))
	}

	file := FromSliceResult(result)
	buf := file.Serialize()

	got, err := Deserialize(buf)
	require.NoError(t, err)
	require.Len(t, got.Layers, 3)
	require.Equal(t, uint32(3), got.Header.LayerCount)
	require.Equal(t, file.Header, got.Header)
	for i, l := range got.Layers {
		require.Equalf(t, cfg.PlatformSizeZ, l.PausePositionZ, "layer %d", i)
	}

	// Re-serializing the parsed file must reproduce the original bytes
	// exactly.
	roundTripped := got.Serialize()
	require.Equal(t, buf, roundTripped)
}

func TestFileRejectsTruncatedTerminator(t *testing.T) {
	cfg := &slicer.SliceConfig{
		PlatformResolutionX: 4, PlatformResolutionY: 4,
		SliceHeightMM: 1,
	}
	result := &slicer.SliceResult[Layer]{Config: cfg}
	file := FromSliceResult(result)
	buf := file.Serialize()
	buf = buf[:len(buf)-1]

	_, err := Deserialize(buf)
	require.Error(t, err)
}

type testExposureSource struct{}

func (testExposureSource) ExposureFor(layerIndex uint64) rle.Exposure {
	return rle.Exposure{ExposureTime: 3, LiftDistance: 5, LiftSpeed: 65, RetractDistance: 5, RetractSpeed: 150}
}

func (testExposureSource) SliceHeight() float32 { return 1 }

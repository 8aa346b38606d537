package slicer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gviegas/mslice/linear"
	"github.com/gviegas/mslice/mesh"
	"github.com/gviegas/mslice/rle"
)

type fakeLayer struct {
	totalLength uint64
}

type fakeEncoder struct {
	total uint64
}

func (e *fakeEncoder) AddRun(length uint64, value uint8) { e.total += length }

func (e *fakeEncoder) Finish(layerIndex uint64, src rle.ExposureSource) fakeLayer {
	return fakeLayer{totalLength: e.total}
}

// triangleMesh is a single triangle tilted across Z so every layer plane
// crosses exactly two of its edges, giving the rasterizer a non-empty
// segment to work with at every layer.
func triangleMesh() *mesh.Mesh {
	vertices := []linear.V3{{0, 0, 0}, {10, 0, 0}, {5, 8.66, 2}}
	faces := [][3]uint32{{0, 1, 2}}
	normals := []linear.V3{{0, 0, 1}}
	return mesh.New(vertices, faces, normals)
}

func testConfig() *SliceConfig {
	return &SliceConfig{
		Format:               FormatGoo,
		PlatformResolutionX:  16,
		PlatformResolutionY:  16,
		PlatformSizeX:        16,
		PlatformSizeY:        16,
		PlatformSizeZ:        1,
		SliceHeightMM:        1,
		Exposure:             ExposureProfile{ExposureTime: 3},
		FirstExposure:        ExposureProfile{ExposureTime: 30},
		FirstLayers:          1,
	}
}

func TestTotalPixelCountPerLayer(t *testing.T) {
	d, err := NewDriver(testConfig(), []*mesh.Mesh{triangleMesh()})
	require.NoError(t, err)

	progress := NewProgress(d.TotalLayers())
	result, err := Slice(context.Background(), d, func() rle.EncodableLayer[fakeLayer] {
		return &fakeEncoder{}
	}, progress)
	require.NoError(t, err)

	for i, layer := range result.Layers {
		require.Equalf(t, uint64(16*16), layer.totalLength, "layer %d total run length", i)
	}

	require.Equal(t, progress.Total(), progress.Completed())
}

func TestNewDriverRejectsZeroSliceHeight(t *testing.T) {
	cfg := testConfig()
	cfg.SliceHeightMM = 0
	_, err := NewDriver(cfg, nil)
	require.Error(t, err)
}

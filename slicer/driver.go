package slicer

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gviegas/mslice/internal/slicerr"
	"github.com/gviegas/mslice/mesh"
	"github.com/gviegas/mslice/raster"
	"github.com/gviegas/mslice/rle"
	"github.com/gviegas/mslice/zbucket"
)

// Driver runs a slicing job: it fans the rasterizer out across every layer
// index in parallel and aggregates the results in layer-index order.
type Driver struct {
	Config *SliceConfig
	Meshes []*mesh.Mesh
}

// NewDriver validates cfg and returns a Driver ready to slice meshes.
func NewDriver(cfg *SliceConfig, meshes []*mesh.Mesh) (*Driver, error) {
	if cfg.SliceHeightMM <= 0 {
		return nil, slicerr.New(slicerr.ConfigRange, "slice height must be positive")
	}
	if cfg.PlatformResolutionX == 0 || cfg.PlatformResolutionY == 0 {
		return nil, slicerr.New(slicerr.ConfigRange, "platform resolution must be non-zero")
	}
	if !finite32(cfg.PlatformSizeX) || !finite32(cfg.PlatformSizeY) || !finite32(cfg.PlatformSizeZ) {
		return nil, slicerr.New(slicerr.ConfigRange, "platform size must be finite")
	}
	return &Driver{Config: cfg, Meshes: meshes}, nil
}

// TotalLayers returns the number of layers this job will slice: the
// smaller of the layer count needed to cover every mesh's transformed Z
// extent and the layer count the platform's physical Z size allows.
func (d *Driver) TotalLayers() uint32 {
	var maxZ float32
	for _, m := range d.Meshes {
		_, max := m.Bounds()
		if max[2] > maxZ {
			maxZ = max[2]
		}
	}

	byGeometry := uint32(math.Ceil(float64(maxZ / d.Config.SliceHeightMM)))
	byPlatform := uint32(math.Ceil(float64(d.Config.PlatformSizeZ / d.Config.SliceHeightMM)))
	if byGeometry < byPlatform {
		return byGeometry
	}
	return byPlatform
}

// SliceResult is the aggregated output of a slicing job: one
// container-specific layer record per layer, ordered by layer index, plus
// the config that produced them.
type SliceResult[T any] struct {
	Layers []T
	Config *SliceConfig
}

// Slice runs the job, calling newEncoder once per layer to obtain a fresh
// rle.EncodableLayer, and returns the aggregated, layer-ordered result.
// Workers are bounded to runtime.GOMAXPROCS(0); layer tasks are pure
// functions of (layer index, config, meshes, Z-bucket indices) and share
// no mutable state besides progress, a mutex-guarded counter that the
// driver does not use to order its output — the ordering of layers comes
// from indexing into the pre-sized result slice.
func Slice[T any](ctx context.Context, d *Driver, newEncoder func() rle.EncodableLayer[T], progress *Progress) (*SliceResult[T], error) {
	indices := make([]*zbucket.Index, len(d.Meshes))
	for i, m := range d.Meshes {
		indices[i] = zbucket.Build(m)
	}

	total := d.TotalLayers()
	layers := make([]T, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for layer := uint32(0); layer < total; layer++ {
		layer := layer
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			z := float32(layer) * d.Config.SliceHeightMM

			var segments []zbucket.Segment
			for i, m := range d.Meshes {
				segments = append(segments, indices[i].IntersectPlane(m, z)...)
			}

			enc := newEncoder()
			raster.Rasterize(segments, d.Config.PlatformResolutionX, d.Config.PlatformResolutionY, enc)
			layers[layer] = enc.Finish(uint64(layer), d.Config)

			if progress != nil {
				progress.increment()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if progress != nil {
		progress.notifyDone()
	}

	return &SliceResult[T]{Layers: layers, Config: d.Config}, nil
}

func finite32(v float32) bool {
	return !math.IsInf(float64(v), 0) && !math.IsNaN(float64(v))
}

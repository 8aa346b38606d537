// Package slicer owns the slicing job's configuration and driver: it wires
// together the mesh, Z-bucket, rasterizer and RLE packages into the
// parallel per-layer pipeline described by the module's component design,
// and reports job progress to any observer.
package slicer

import "github.com/gviegas/mslice/rle"

// Format selects the container variant a slicing job targets.
type Format int

const (
	// FormatGoo is the only container format this build implements.
	FormatGoo Format = iota
	// FormatCtb is reserved but not implemented; requesting it yields
	// slicerr.Unsupported.
	FormatCtb
	// FormatSvg is reserved but not implemented (vector/polygon output,
	// not a raster mask); requesting it yields slicerr.Unsupported.
	FormatSvg
)

// ExposureProfile holds the timing and motion parameters applied to every
// layer printed under it: exposure time, and two lift/retract stages (the
// second stage defaults to zero distance and speed when unset, matching
// the reference container's own default).
type ExposureProfile struct {
	ExposureTime float32 // seconds

	LiftDistance    float32 // mm
	LiftSpeed       float32 // mm/min
	RetractDistance float32 // mm
	RetractSpeed    float32 // mm/min

	LiftDistance2    float32 // mm, second stage
	LiftSpeed2       float32 // mm/min, second stage
	RetractDistance2 float32 // mm, second stage
	RetractSpeed2    float32 // mm/min, second stage
}

// SliceConfig is the full set of parameters a slicing job needs: target
// platform geometry, layer height, exposure profiles for the first layers
// and the rest, and the target container format.
type SliceConfig struct {
	Format Format

	PlatformResolutionX, PlatformResolutionY uint32
	PlatformSizeX, PlatformSizeY, PlatformSizeZ float32 // mm
	SliceHeightMM                                float32

	Exposure      ExposureProfile
	FirstExposure ExposureProfile
	FirstLayers   uint32

	TransitionLayers uint32
}

// ExposureFor returns the exposure profile that applies to layerIndex:
// the first-layer profile for indices below FirstLayers, the regular
// profile otherwise.
func (c *SliceConfig) ExposureFor(layerIndex uint64) rle.Exposure {
	p := &c.Exposure
	if layerIndex < uint64(c.FirstLayers) {
		p = &c.FirstExposure
	}
	return rle.Exposure{
		ExposureTime:    p.ExposureTime,
		LiftDistance:    p.LiftDistance,
		LiftSpeed:       p.LiftSpeed,
		RetractDistance: p.RetractDistance,
		RetractSpeed:    p.RetractSpeed,
	}
}

// SliceHeight returns the configured layer height, satisfying
// rle.ExposureSource.
func (c *SliceConfig) SliceHeight() float32 { return c.SliceHeightMM }

// ExposureProfileFor returns the full profile (including the second
// lift/retract stage) that applies to layerIndex, for callers building a
// container-specific layer record that needs more than rle.Exposure
// carries.
func (c *SliceConfig) ExposureProfileFor(layerIndex uint64) *ExposureProfile {
	if layerIndex < uint64(c.FirstLayers) {
		return &c.FirstExposure
	}
	return &c.Exposure
}

// PixelArea returns the area of a single pixel, in square millimeters.
func (c *SliceConfig) PixelArea() float32 {
	x := c.PlatformSizeX / float32(c.PlatformResolutionX)
	y := c.PlatformSizeY / float32(c.PlatformResolutionY)
	return x * y
}

// VoxelVolume returns the volume of a single pixel column one layer tall,
// in cubic millimeters.
func (c *SliceConfig) VoxelVolume() float32 {
	return c.PixelArea() * c.SliceHeightMM
}

// PrintTime returns the estimated time to print the given number of
// layers: the first FirstLayers layers use FirstExposure, the rest use
// Exposure. Per layer, time is exposure time plus lift time (lift distance
// over lift speed); retract time is not counted, matching the reference
// container's own printing-time estimate. A zero lift speed contributes
// zero lift time rather than dividing by zero.
func (c *SliceConfig) PrintTime(layers uint32) float32 {
	layerTime := func(p *ExposureProfile) float32 {
		t := p.ExposureTime
		if p.LiftSpeed != 0 {
			t += p.LiftDistance / p.LiftSpeed
		}
		return t
	}

	first := c.FirstLayers
	if first > layers {
		first = layers
	}
	rest := layers - first

	return float32(rest)*layerTime(&c.Exposure) + float32(first)*layerTime(&c.FirstExposure)
}

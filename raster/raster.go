// Package raster turns the oriented line segments produced by intersecting
// a slice plane with a mesh into a scan-converted, run-length-encoded
// image: a row-major sequence of black (0) and white (255) runs, where a
// run may continue across row boundaries, with an even-odd depth fill
// across overlapping meshes.
package raster

import (
	"sort"

	"github.com/gviegas/mslice/zbucket"
)

// Encoder receives the runs produced by Rasterize, in row-major order,
// starting at pixel 0. It is satisfied by rle.Codec1Encoder,
// rle.Codec2Encoder and any EncodableLayer adapter; defining it here (as
// opposed to importing the rle package) keeps the hot rasterization loop
// from depending on the container/encoding layer.
type Encoder interface {
	AddRun(length uint64, value uint8)
}

// Rasterize scan-converts segments (gathered across every mesh being
// sliced, already intersected at a single Z height) onto a
// platformWidth x platformHeight raster and feeds the result to enc as a
// sequence of 0/255 runs covering every pixel of the plate, row-major.
func Rasterize(segments []zbucket.Segment, platformWidth, platformHeight uint32, enc Encoder) {
	pixels := uint64(platformWidth) * uint64(platformHeight)
	var last uint64

	for y := uint32(0); y < platformHeight; y++ {
		yf := float32(y)

		type crossing struct {
			x      float32
			facing bool
		}
		var crossings []crossing
		for _, seg := range segments {
			a, b := seg.Points[0], seg.Points[1]
			aAbove, bAbove := a[1] > yf, b[1] > yf
			if aAbove == bAbove {
				continue
			}
			t := (yf - a[1]) / (b[1] - a[1])
			x := a[0] + t*(b[0]-a[0])
			crossings = append(crossings, crossing{x, seg.Facing})
		}

		sort.Slice(crossings, func(i, j int) bool { return crossings[i].x < crossings[j].x })

		filtered := make([]float32, 0, len(crossings))
		depth := 0
		for _, c := range crossings {
			prevDepth := depth
			if c.facing {
				depth += 1
			} else {
				depth -= 1
			}
			if (depth == 0) != (prevDepth == 0) {
				filtered = append(filtered, clamp32(c.x, 0, float32(platformWidth)))
			}
		}

		yOffset := uint64(platformWidth) * uint64(y)
		for i := 0; i+1 < len(filtered); i += 2 {
			a := uint64(round32(filtered[i]))
			b := uint64(round32(filtered[i+1]))

			start := a + yOffset
			end := b + yOffset
			length := b - a

			if start > last {
				enc.AddRun(start-last, 0)
			}
			enc.AddRun(length, 255)
			last = end
		}
	}

	if last < pixels {
		enc.AddRun(pixels-last, 0)
	}
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round32(v float32) float32 {
	if v < 0 {
		return float32(int64(v - 0.5))
	}
	return float32(int64(v + 0.5))
}

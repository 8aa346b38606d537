package raster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gviegas/mslice/linear"
	"github.com/gviegas/mslice/zbucket"
)

type fakeEncoder struct {
	runs []struct {
		length uint64
		value  uint8
	}
}

func (f *fakeEncoder) AddRun(length uint64, value uint8) {
	f.runs = append(f.runs, struct {
		length uint64
		value  uint8
	}{length, value})
}

func (f *fakeEncoder) totalLength() uint64 {
	var total uint64
	for _, r := range f.runs {
		total += r.length
	}
	return total
}

// A single square outline, left edge facing away (false) and right edge
// facing toward (true), spanning rows 2..8 at x=2 and x=8 on a 10x10 plate.
func squareSegments() []zbucket.Segment {
	return []zbucket.Segment{
		{Points: [2]linear.V3{{2, 2, 0}, {2, 8, 0}}, Facing: false},
		{Points: [2]linear.V3{{8, 2, 0}, {8, 8, 0}}, Facing: true},
	}
}

func TestRasterizeCoversEveryPixel(t *testing.T) {
	enc := &fakeEncoder{}
	Rasterize(squareSegments(), 10, 10, enc)

	require.Equal(t, uint64(100), enc.totalLength())
}

func TestRasterizeEmptySegmentsIsAllBlack(t *testing.T) {
	enc := &fakeEncoder{}
	Rasterize(nil, 4, 4, enc)

	require.Len(t, enc.runs, 1)
	require.Equal(t, uint8(0), enc.runs[0].value)
	require.Equal(t, uint64(16), enc.runs[0].length)
}

// Two coincident, concentric squares (the same outline duplicated) must
// depth-fill to exactly the same runs as one square alone: every crossing
// toggles depth by one, but the even-odd fill only breaks at a depth/zero
// boundary, so doubling every edge never opens a second boundary at the
// same x.
func TestRasterizeCoincidentConcentricSquaresMatchesSingleSquare(t *testing.T) {
	single := &fakeEncoder{}
	Rasterize(squareSegments(), 10, 10, single)

	doubled := append(append([]zbucket.Segment{}, squareSegments()...), squareSegments()...)
	concentric := &fakeEncoder{}
	Rasterize(doubled, 10, 10, concentric)

	require.Equal(t, single.runs, concentric.runs)
}

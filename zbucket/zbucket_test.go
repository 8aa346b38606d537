package zbucket

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gviegas/mslice/linear"
	"github.com/gviegas/mslice/mesh"
)

func TestBucketCoverage(t *testing.T) {
	vertices := []linear.V3{
		{-1, -1, 0}, {1, -1, 0}, {0, 1, 0},
		{-1, -1, 10}, {1, -1, 10}, {0, 1, 10},
	}
	faces := [][3]uint32{
		// Each face runs from z=0 to z=10, so every plane in between
		// crosses exactly two of its edges.
		{0, 1, 5},
		{3, 4, 2},
	}
	normals := []linear.V3{{0, 0, 1}, {0, 0, 1}}

	m := mesh.New(vertices, faces, normals)
	idx := Build(m)

	minB, maxB := m.Bounds()
	require.Greaterf(t, maxB[2], minB[2], "degenerate bounds %v %v", minB, maxB)

	for z := minB[2] + 0.01; z < maxB[2]; z += 1.0 {
		segs := idx.IntersectPlane(m, z)
		require.NotEmptyf(t, segs, "expected at least one segment at z=%v", z)
	}
}

func TestOutOfRangeReturnsNil(t *testing.T) {
	vertices := []linear.V3{
		{-1, -1, 0}, {1, -1, 0}, {0, 1, 0},
		{-1, -1, 10}, {1, -1, 10}, {0, 1, 10},
	}
	faces := [][3]uint32{
		{0, 1, 2},
		{3, 4, 5},
	}
	normals := []linear.V3{{0, 0, 1}, {0, 0, 1}}

	m := mesh.New(vertices, faces, normals)
	idx := Build(m)

	minB, _ := m.Bounds()
	require.Nil(t, idx.IntersectPlane(m, minB[2]-1000))
}

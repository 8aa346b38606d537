// Package zbucket implements the Z-bucketed face index used to accelerate
// plane-triangle intersection during slicing: rather than testing every
// face of a mesh against every slice plane, each face is filed into every
// Z-slab its (transformed) bounds overlap, so a slice at height z only
// tests the faces in the one slab containing z.
package zbucket

import "github.com/gviegas/mslice/linear"

// BucketCount is the fixed number of Z-slabs an Index splits a mesh into.
const BucketCount = 100

// Segment is a line segment produced by intersecting a plane with a single
// triangle, already transformed into world space, tagged with which way
// the originating face points.
type Segment struct {
	Points [2]linear.V3
	Facing bool
}

// Mesh is the minimal view of a mesh that Index needs. mesh.Mesh satisfies
// it.
type Mesh interface {
	Vertices() []linear.V3
	Faces() [][3]uint32
	Face(i int) [3]uint32
	Normal(i int) linear.V3
	FaceCount() int
	Transform(pos *linear.V3) linear.V3
	TransformNormal(normal *linear.V3) linear.V3
	Bounds() (min, max linear.V3)
}

// Index is a Z-bucketed face index built once per mesh per slicing job. It
// caches a world-space copy of every vertex alongside the bucket lists, and
// borrows the underlying mesh read-only for the slicing call.
type Index struct {
	startHeight float32
	slabHeight  float32

	buckets           [][]int
	transformedPoints []linear.V3
}

// Build constructs an Index from a mesh, filing each face into every
// Z-slab its transformed bounds overlap.
func Build(mesh Mesh) *Index {
	min, max := mesh.Bounds()

	vertices := mesh.Vertices()
	transformed := make([]linear.V3, len(vertices))
	for i := range vertices {
		transformed[i] = mesh.Transform(&vertices[i])
	}

	slabHeight := (max[2] - min[2]) / BucketCount
	buckets := make([][]int, BucketCount+1)

	for face := 0; face < mesh.FaceCount(); face++ {
		faceVerts := mesh.Face(face)
		fzMin, fzMax := triangleZBounds(transformed, faceVerts)

		lo := int(floor32((fzMin - min[2]) / slabHeight))
		hi := int(round32((fzMax - min[2]) / slabHeight))
		if lo < 0 {
			lo = 0
		}
		if hi > BucketCount {
			hi = BucketCount
		}
		for k := lo; k <= hi; k++ {
			buckets[k] = append(buckets[k], face)
		}
	}

	return &Index{
		startHeight:       min[2],
		slabHeight:        slabHeight,
		buckets:           buckets,
		transformedPoints: transformed,
	}
}

// IntersectPlane intersects a Z-height plane with the mesh this Index was
// built with, returning the oriented segments produced by every face in
// the bucket covering that height. The mesh must be the same one (or a
// structurally identical one) Build was called with.
func (idx *Index) IntersectPlane(mesh Mesh, z float32) []Segment {
	bucket := (z - idx.startHeight) / idx.slabHeight
	if bucket < 0 || bucket >= float32(len(idx.buckets)) {
		return nil
	}

	var out []Segment
	for _, face := range idx.buckets[int(bucket)] {
		faceVerts := mesh.Face(face)
		seg, ok := intersectTriangle(idx.transformedPoints, faceVerts, z)
		if !ok {
			continue
		}
		normal := mesh.Normal(face)
		tn := mesh.TransformNormal(&normal)
		out = append(out, Segment{Points: seg, Facing: tn[0] > 0})
	}
	return out
}

func triangleZBounds(points []linear.V3, face [3]uint32) (zMin, zMax float32) {
	z0, z1, z2 := points[face[0]][2], points[face[1]][2], points[face[2]][2]
	zMin = min32(min32(z0, z1), z2)
	zMax = max32(max32(z0, z1), z2)
	return
}

// intersectTriangle intersects a Z-height plane with a single transformed
// triangle. It returns (segment, false) when the triangle does not
// straddle the plane along exactly two edges.
func intersectTriangle(points []linear.V3, face [3]uint32, z float32) ([2]linear.V3, bool) {
	v0, v1, v2 := points[face[0]], points[face[1]], points[face[2]]

	a, b, c := v0[2]-z, v1[2]-z, v2[2]-z
	aPos, bPos, cPos := a > 0, b > 0, c > 0

	var out [2]linear.V3
	n := 0
	push := func(a, b float32, v0, v1 linear.V3) {
		t := a / (a - b)
		out[n] = linear.V3{
			v0[0] + t*(v1[0]-v0[0]),
			v0[1] + t*(v1[1]-v0[1]),
			v0[2] + t*(v1[2]-v0[2]),
		}
		n++
	}

	if aPos != bPos {
		push(a, b, v0, v1)
	}
	if bPos != cPos {
		push(b, c, v1, v2)
	}
	if cPos != aPos {
		push(c, a, v2, v0)
	}

	return out, n == 2
}

func floor32(v float32) float32 {
	i := float32(int64(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

func round32(v float32) float32 {
	if v < 0 {
		return float32(int64(v - 0.5))
	}
	return float32(int64(v + 0.5))
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

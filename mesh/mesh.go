// Package mesh defines the triangle mesh type sliced by the rest of the
// module: vertices, faces and normals, plus the position/scale/rotation
// transform applied to them before slicing.
package mesh

import "github.com/gviegas/mslice/linear"

// Mesh is a triangle mesh with an associated TRS transform. It is grounded
// on the reference slicer's Mesh type: vertices are re-centred on creation,
// degenerate normals are recomputed, and the transform matrix (and its
// inverse) are cached and refreshed whenever position, scale or rotation
// change.
type Mesh struct {
	vertices []linear.V3
	faces    [][3]uint32
	normals  []linear.V3

	transform    linear.M4
	invTransform linear.M4

	position linear.V3
	scale    linear.V3
	rotation linear.V3
}

// New creates a mesh from vertices and faces, centring the vertices on the
// XY plane (and resting on the Z=0 plane) and recomputing normals if any of
// the given normals is degenerate (zero length).
func New(vertices []linear.V3, faces [][3]uint32, normals []linear.V3) *Mesh {
	centerVertices(vertices)
	if hasDegenerateNormal(normals) {
		normals = computeNormals(vertices, faces)
	}
	return NewUncentered(vertices, faces, normals)
}

// NewUncentered creates a mesh without adjusting vertex positions. Scale
// defaults to 1 on every axis; position and rotation default to 0.
func NewUncentered(vertices []linear.V3, faces [][3]uint32, normals []linear.V3) *Mesh {
	m := &Mesh{
		vertices: vertices,
		faces:    faces,
		normals:  normals,
		scale:    linear.V3{1, 1, 1},
	}
	m.UpdateTransform()
	return m
}

func (m *Mesh) Vertices() []linear.V3  { return m.vertices }
func (m *Mesh) Faces() [][3]uint32     { return m.faces }
func (m *Mesh) Normals() []linear.V3   { return m.normals }
func (m *Mesh) Face(i int) [3]uint32   { return m.faces[i] }
func (m *Mesh) Normal(i int) linear.V3 { return m.normals[i] }
func (m *Mesh) VertexCount() int       { return len(m.vertices) }
func (m *Mesh) FaceCount() int         { return len(m.faces) }

// RecomputeNormals replaces the mesh's normals with ones computed directly
// from its triangles.
func (m *Mesh) RecomputeNormals() {
	m.normals = computeNormals(m.vertices, m.faces)
}

// FlipNormals reverses the direction of every normal.
func (m *Mesh) FlipNormals() {
	flipped := make([]linear.V3, len(m.normals))
	for i := range m.normals {
		flipped[i].Scale(-1, &m.normals[i])
	}
	m.normals = flipped
}

// UpdateTransform recomputes the transform matrix and its inverse from the
// current position, scale and rotation. It runs automatically from
// SetPosition, SetScale and SetRotation; the Unchecked variants of those
// setters require a manual call.
func (m *Mesh) UpdateTransform() {
	var s, r, t, sr linear.M4
	s.ScaleM4(&m.scale)
	r.EulerXYZ(m.rotation[0], m.rotation[1], m.rotation[2])
	t.Translation(&m.position)

	sr.Mul(&t, &s)
	m.transform.Mul(&sr, &r)
	m.invTransform.Invert(&m.transform)
}

// Transform applies the mesh's transform to a point.
func (m *Mesh) Transform(pos *linear.V3) linear.V3 {
	var in, out linear.V4
	in = linear.V4{pos[0], pos[1], pos[2], 1}
	out.Mul(&m.transform, &in)
	return linear.V3{out[0], out[1], out[2]}
}

// TransformNormal applies the mesh's full transform matrix to a normal,
// translation included, treating it like a position (w = 1). The result
// is not renormalized.
func (m *Mesh) TransformNormal(normal *linear.V3) linear.V3 {
	var in, out linear.V4
	in = linear.V4{normal[0], normal[1], normal[2], 1}
	out.Mul(&m.transform, &in)
	return linear.V3{out[0], out[1], out[2]}
}

// InverseTransform undoes the mesh's transform on a point.
func (m *Mesh) InverseTransform(pos *linear.V3) linear.V3 {
	var in, out linear.V4
	in = linear.V4{pos[0], pos[1], pos[2], 1}
	out.Mul(&m.invTransform, &in)
	return linear.V3{out[0], out[1], out[2]}
}

// Bounds returns the transformed axis-aligned bounding box of the mesh, as
// (min, max).
func (m *Mesh) Bounds() (min, max linear.V3) {
	return vertexBounds(m.vertices, &m.transform)
}

func (m *Mesh) TransformMatrix() *linear.M4    { return &m.transform }
func (m *Mesh) InvTransformMatrix() *linear.M4 { return &m.invTransform }

// SetPosition changes the mesh's position and refreshes the transform.
func (m *Mesh) SetPosition(pos linear.V3) {
	m.position = pos
	m.UpdateTransform()
}

// SetPositionUnchecked changes the mesh's position without refreshing the
// transform; call UpdateTransform manually afterwards.
func (m *Mesh) SetPositionUnchecked(pos linear.V3) { m.position = pos }

func (m *Mesh) Position() linear.V3 { return m.position }

// SetScale changes the mesh's scale and refreshes the transform.
func (m *Mesh) SetScale(scale linear.V3) {
	m.scale = scale
	m.UpdateTransform()
}

// SetScaleUnchecked changes the mesh's scale without refreshing the
// transform; call UpdateTransform manually afterwards.
func (m *Mesh) SetScaleUnchecked(scale linear.V3) { m.scale = scale }

func (m *Mesh) Scale() linear.V3 { return m.scale }

// SetRotation changes the mesh's rotation (Euler angles, radians) and
// refreshes the transform.
func (m *Mesh) SetRotation(rotation linear.V3) {
	m.rotation = rotation
	m.UpdateTransform()
}

// SetRotationUnchecked changes the mesh's rotation without refreshing the
// transform; call UpdateTransform manually afterwards.
func (m *Mesh) SetRotationUnchecked(rotation linear.V3) { m.rotation = rotation }

func (m *Mesh) Rotation() linear.V3 { return m.rotation }

func vertexBounds(vertices []linear.V3, transform *linear.M4) (min, max linear.V3) {
	min = linear.V3{math32Max, math32Max, math32Max}
	max = linear.V3{-math32Max, -math32Max, -math32Max}
	for i := range vertices {
		var in, out linear.V4
		in = linear.V4{vertices[i][0], vertices[i][1], vertices[i][2], 1}
		out.Mul(transform, &in)
		if out[0] < min[0] {
			min[0] = out[0]
		}
		if out[1] < min[1] {
			min[1] = out[1]
		}
		if out[2] < min[2] {
			min[2] = out[2]
		}
		if out[0] > max[0] {
			max[0] = out[0]
		}
		if out[1] > max[1] {
			max[1] = out[1]
		}
		if out[2] > max[2] {
			max[2] = out[2]
		}
	}
	return
}

// centerVertices moves the mesh so that its origin is at the centre of its
// XY footprint and its lowest point rests on Z=0.
func centerVertices(vertices []linear.V3) {
	var i linear.M4
	i.I()
	min, max := vertexBounds(vertices, &i)

	center := linear.V3{(min[0] + max[0]) / 2, (min[1] + max[1]) / 2, min[2]}
	for idx := range vertices {
		vertices[idx][0] -= center[0]
		vertices[idx][1] -= center[1]
		vertices[idx][2] -= center[2]
	}
}

func hasDegenerateNormal(normals []linear.V3) bool {
	for i := range normals {
		n := normals[i]
		if n.Dot(&n) == 0 {
			return true
		}
	}
	return false
}

func computeNormals(vertices []linear.V3, faces [][3]uint32) []linear.V3 {
	normals := make([]linear.V3, len(faces))
	for i, f := range faces {
		var edge1, edge2, cross, norm linear.V3
		edge1.Sub(&vertices[f[2]], &vertices[f[1]])
		edge2.Sub(&vertices[f[0]], &vertices[f[1]])
		cross.Cross(&edge1, &edge2)
		norm.Norm(&cross)
		normals[i] = norm
	}
	return normals
}

const math32Max = 3.40282346638528859811704183484516925440e+38

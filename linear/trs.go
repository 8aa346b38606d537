// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import "math"

// Translation sets m to the matrix that translates by v.
func (m *M4) Translation(v *V3) {
	*m = M4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{v[0], v[1], v[2], 1},
	}
}

// ScaleM4 sets m to the matrix that scales non-uniformly by v.
func (m *M4) ScaleM4(v *V3) {
	*m = M4{
		{v[0], 0, 0, 0},
		{0, v[1], 0, 0},
		{0, 0, v[2], 0},
		{0, 0, 0, 1},
	}
}

// EulerXYZ sets m to the rotation matrix for intrinsic Euler angles
// (x, y, z), in radians, composed as Rz · Ry · Rx.
func (m *M4) EulerXYZ(x, y, z float32) {
	sx, cx := sincos(x)
	sy, cy := sincos(y)
	sz, cz := sincos(z)

	var rx, ry, rz M4
	rx.I()
	rx[1][1], rx[1][2] = cx, sx
	rx[2][1], rx[2][2] = -sx, cx

	ry.I()
	ry[0][0], ry[0][2] = cy, -sy
	ry[2][0], ry[2][2] = sy, cy

	rz.I()
	rz[0][0], rz[0][1] = cz, sz
	rz[1][0], rz[1][1] = -sz, cz

	var tmp M4
	tmp.Mul(&ry, &rx)
	m.Mul(&rz, &tmp)
}

func sincos(rad float32) (s, c float32) {
	s64, c64 := math.Sincos(float64(rad))
	return float32(s64), float32(c64)
}

// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"
)

func TestV(t *testing.T) {
	v := V3{1, 2, 4}
	w := V3{0, -1, 2}

	var u V3
	u.Add(&v, &w)
	if u != (V3{1, 1, 6}) {
		t.Fatalf("Add\nhave %v\nwant [1 1 6]", u)
	}
	u.Sub(&v, &w)
	if u != (V3{1, 3, 2}) {
		t.Fatalf("Sub\nhave %v\nwant [1 3 2]", u)
	}
	u.Scale(-1, &v)
	if u != (V3{-1, -2, -4}) {
		t.Fatalf("Scale\nhave %v\nwant [-1 -2 -4]", u)
	}
	u.Scale(2, &w)
	if u != (V3{0, -2, 4}) {
		t.Fatalf("Scale\nhave %v\nwant [0 -2 4]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("Dot\nhave %v\nwant 6\n", d)
	}
	if d := v.Dot(&v); d != 21 {
		t.Fatalf("Dot\nhave %v\nwant 21\n", d)
	}
	if l := v.Len(); l != float32(math.Sqrt(21)) {
		t.Fatalf("Len\nhave %v\nwant %v\n", l, math.Sqrt(21))
	}
	if l := w.Len(); l != float32(math.Sqrt(5)) {
		t.Fatalf("Len\nhave %v\nwant %v\n", l, math.Sqrt(5))
	}

	v = V3{0, 0, -2}
	w = V3{0, 4, 0}

	v.Norm(&v)
	if v != (V3{0, 0, -1}) {
		t.Fatalf("Norm\nhave %v\nwant [0 0 -1]", v)
	}
	w.Norm(&w)
	if w != (V3{0, 1, 0}) {
		t.Fatalf("Norm\nhave %v\nwant [0 1 0]", w)
	}
	u.Cross(&v, &w)
	if u != (V3{1, 0, 0}) {
		t.Fatalf("Cross\nhave %v\nwant [1 0 0]", u)
	}
	u.Cross(&w, &v)
	if u != (V3{-1, 0, 0}) {
		t.Fatalf("Cross\nhave %v\nwant [-1 0 0]", u)
	}
}

func TestTranslation(t *testing.T) {
	var m M4
	m.Translation(&V3{1, 2, 3})

	var p V4
	p.Mul(&m, &V4{0, 0, 0, 1})
	if p != (V4{1, 2, 3, 1}) {
		t.Fatalf("Translation\nhave %v\nwant [1 2 3 1]", p)
	}
}

func TestScaleM4(t *testing.T) {
	var m M4
	m.ScaleM4(&V3{2, 3, 4})

	var p V4
	p.Mul(&m, &V4{1, 1, 1, 1})
	if p != (V4{2, 3, 4, 1}) {
		t.Fatalf("ScaleM4\nhave %v\nwant [2 3 4 1]", p)
	}
}

func TestEulerXYZIdentity(t *testing.T) {
	var m M4
	m.EulerXYZ(0, 0, 0)

	var i M4
	i.I()
	if m != i {
		t.Fatalf("EulerXYZ(0,0,0)\nhave %v\nwant identity", m)
	}
}

func TestEulerXYZRotatesZ90(t *testing.T) {
	var m M4
	m.EulerXYZ(0, 0, float32(math.Pi/2))

	var p V4
	p.Mul(&m, &V4{1, 0, 0, 1})

	if math.Abs(float64(p[0])) > 1e-5 || math.Abs(float64(p[1]-1)) > 1e-5 {
		t.Fatalf("EulerXYZ z rotation\nhave %v\nwant ~[0 1 0 1]", p)
	}
}

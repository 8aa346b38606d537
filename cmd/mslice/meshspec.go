package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gviegas/mslice/linear"
)

// meshSpec is one --mesh flag value: a file path optionally followed by
// position, rotation and scale triples, e.g.
// "part.stl@0,0,10@0,0,1.5708@1,1,2".
type meshSpec struct {
	path     string
	position linear.V3
	rotation linear.V3
	scale    linear.V3
}

// parseMeshSpec parses one --mesh argument. Position and rotation default
// to zero; scale defaults to 1 on every axis.
func parseMeshSpec(s string) (meshSpec, error) {
	parts := strings.Split(s, "@")
	spec := meshSpec{path: parts[0], scale: linear.V3{1, 1, 1}}
	if spec.path == "" {
		return meshSpec{}, fmt.Errorf("mesh spec %q: empty path", s)
	}

	triples := parts[1:]
	fields := []*linear.V3{&spec.position, &spec.rotation, &spec.scale}
	if len(triples) > len(fields) {
		return meshSpec{}, fmt.Errorf("mesh spec %q: too many @-separated triples", s)
	}

	for i, triple := range triples {
		v, err := parseTriple(triple)
		if err != nil {
			return meshSpec{}, fmt.Errorf("mesh spec %q: %w", s, err)
		}
		*fields[i] = v
	}

	return spec, nil
}

func parseTriple(s string) (linear.V3, error) {
	comps := strings.Split(s, ",")
	if len(comps) != 3 {
		return linear.V3{}, fmt.Errorf("triple %q: want 3 comma-separated values, got %d", s, len(comps))
	}
	var v linear.V3
	for i, c := range comps {
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 32)
		if err != nil {
			return linear.V3{}, fmt.Errorf("triple %q: %w", s, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

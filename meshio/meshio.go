// Package meshio defines the external collaborator boundaries the core
// depends on but does not implement: mesh loading (OBJ/STL parsing),
// slice configuration sourcing, and preview image generation. Every
// concrete implementation (file parsers, image scalers) lives outside
// this module's scope; only the contract the core calls through is
// defined here.
package meshio

import (
	"github.com/gviegas/mslice/linear"
	"github.com/gviegas/mslice/slicer"
)

// Loader produces the raw geometry for one mesh: vertex positions, face
// indices, and one normal per face. Normals may be zero; if any is,
// mesh.New recomputes every normal from its triangle's winding.
type Loader interface {
	Load(path string) (vertices []linear.V3, faces [][3]uint32, normals []linear.V3, err error)
}

// ConfigSource produces a populated slicer.SliceConfig, e.g. parsed from
// a project file or assembled from CLI flags.
type ConfigSource interface {
	SliceConfig() (*slicer.SliceConfig, error)
}

// PreviewProvider renders a row-major RGBA8 thumbnail of the sliced
// model at the given pixel dimensions, for embedding in a container's
// preview slots.
type PreviewProvider interface {
	Preview(width, height int) (rgba []byte, err error)
}

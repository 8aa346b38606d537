// Package rle implements the two run-length encodings used by the
// container formats: a nibble-packed variable-length scheme (Codec1) and
// a differential/literal scheme with a trailing checksum (Codec2).
package rle

// Run is a maximal contiguous stretch of equal pixel values.
type Run struct {
	Length uint64
	Value  uint8
}

// Exposure is the subset of an exposure profile a layer record needs:
// exposure time and lift/retract distance and speed.
type Exposure struct {
	ExposureTime   float32
	LiftDistance   float32
	LiftSpeed      float32
	RetractDistance float32
	RetractSpeed   float32
}

// ExposureSource supplies the per-layer exposure parameters an encoder
// needs to build its container-specific layer record, decoupling the
// codecs from any particular container or SliceConfig type.
type ExposureSource interface {
	ExposureFor(layerIndex uint64) Exposure
	SliceHeight() float32
}

// EncodableLayer is the shared contract every per-layer encoder satisfies:
// runs accumulate via AddRun, and Finish converts the accumulated bytes
// plus the layer's exposure parameters into a container-specific record.
type EncodableLayer[T any] interface {
	AddRun(length uint64, value uint8)
	Finish(layerIndex uint64, src ExposureSource) T
}

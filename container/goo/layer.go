package goo

import (
	"github.com/gviegas/mslice/internal/binio"
	"github.com/gviegas/mslice/internal/slicerr"
	"github.com/gviegas/mslice/rle"
)

// Layer is one layer's record: its pause/motion parameters and its
// RLE-encoded exposure mask.
type Layer struct {
	Pause          bool
	PausePositionZ float32 // mm

	LayerPositionZ    float32 // mm
	LayerExposureTime float32 // s
	LayerOffTime      float32 // s

	BeforeLiftTime   float32 // s
	AfterLiftTime    float32 // s
	AfterRetractTime float32 // s

	LiftDistance       float32 // mm
	LiftSpeed          float32 // mm/min
	SecondLiftDistance float32 // mm
	SecondLiftSpeed    float32 // mm/min

	RetractDistance       float32 // mm
	RetractSpeed          float32 // mm/min
	SecondRetractDistance float32 // mm
	SecondRetractSpeed    float32 // mm/min

	LightPWM uint8

	Data     []byte
	Checksum uint8
}

// Serialize writes the layer record: fixed fields, then the
// length-prefixed, checksummed, delimiter-framed payload.
func (l *Layer) Serialize(w *binio.Writer) {
	pause := uint16(0)
	if l.Pause {
		pause = 1
	}
	w.WriteU16BE(pause)
	w.WriteF32BE(l.PausePositionZ)
	w.WriteF32BE(l.LayerPositionZ)
	w.WriteF32BE(l.LayerExposureTime)
	w.WriteF32BE(l.LayerOffTime)
	w.WriteF32BE(l.BeforeLiftTime)
	w.WriteF32BE(l.AfterLiftTime)
	w.WriteF32BE(l.AfterRetractTime)
	w.WriteF32BE(l.LiftDistance)
	w.WriteF32BE(l.LiftSpeed)
	w.WriteF32BE(l.SecondLiftDistance)
	w.WriteF32BE(l.SecondLiftSpeed)
	w.WriteF32BE(l.RetractDistance)
	w.WriteF32BE(l.RetractSpeed)
	w.WriteF32BE(l.SecondRetractDistance)
	w.WriteF32BE(l.SecondRetractSpeed)
	w.WriteU16BE(uint16(l.LightPWM))
	w.WriteBytes(delimiter)
	w.WriteU32BE(uint32(len(l.Data)) + 2)
	w.WriteBytes([]byte{0x55})
	w.WriteBytes(l.Data)
	w.WriteU8(l.Checksum)
	w.WriteBytes(delimiter)
}

// DeserializeLayer reads one layer record, validating both delimiters,
// the 0x55 payload marker and the trailing checksum.
func DeserializeLayer(r *binio.Reader) (*Layer, error) {
	var l Layer
	var err error

	pauseFlag, err := r.ReadU16BE()
	if err != nil {
		return nil, err
	}
	l.Pause = pauseFlag != 0

	if l.PausePositionZ, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.LayerPositionZ, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.LayerExposureTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.LayerOffTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.BeforeLiftTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.AfterLiftTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.AfterRetractTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.LiftDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.LiftSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.SecondLiftDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.SecondLiftSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.RetractDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.RetractSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.SecondRetractDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if l.SecondRetractSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	pwm, err := r.ReadU16BE()
	if err != nil {
		return nil, err
	}
	l.LightPWM = clampPWM(pwm)

	if err := expectDelimiter(r); err != nil {
		return nil, err
	}
	payloadLen, err := r.ReadU32BE()
	if err != nil {
		return nil, err
	}
	if payloadLen < 2 {
		return nil, slicerr.New(slicerr.Malformed, "layer payload length underflows marker+checksum")
	}
	dataLen := int(payloadLen) - 2
	marker, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	if marker != 0x55 {
		return nil, slicerr.New(slicerr.Malformed, "bad layer payload marker")
	}
	if l.Data, err = r.ReadBytes(dataLen); err != nil {
		return nil, err
	}
	l.Data = append([]byte(nil), l.Data...)
	if l.Checksum, err = r.ReadU8(); err != nil {
		return nil, err
	}
	if err := expectDelimiter(r); err != nil {
		return nil, err
	}

	if want := rle.Checksum(l.Data); l.Checksum != want {
		return nil, slicerr.Newf(slicerr.Malformed, "layer checksum = %#x, want %#x", l.Checksum, want)
	}

	return &l, nil
}

// LayerEncoder accumulates one layer's exposure mask and produces a
// Layer record, satisfying rle.EncodableLayer[Layer].
type LayerEncoder struct {
	enc *rle.Codec2Encoder
}

// NewLayerEncoder returns an empty LayerEncoder.
func NewLayerEncoder() *LayerEncoder {
	return &LayerEncoder{enc: rle.NewCodec2Encoder()}
}

// AddRun appends one run of the exposure mask.
func (e *LayerEncoder) AddRun(length uint64, value uint8) { e.enc.AddRun(length, value) }

// Finish builds the Layer record for layerIndex: the position and
// exposure profile come from src, the pause fields are left at their
// zero value (set separately by FromSliceResult, since they depend on
// platform geometry rather than per-layer exposure).
func (e *LayerEncoder) Finish(layerIndex uint64, src rle.ExposureSource) Layer {
	data, checksum := e.enc.Finish()
	exp := src.ExposureFor(layerIndex)

	return Layer{
		LayerPositionZ:    src.SliceHeight() * float32(layerIndex+1),
		LayerExposureTime: exp.ExposureTime,
		LiftDistance:      exp.LiftDistance,
		LiftSpeed:         exp.LiftSpeed,
		RetractDistance:   exp.RetractDistance,
		RetractSpeed:      exp.RetractSpeed,
		LightPWM:          255,
		Data:              data,
		Checksum:          checksum,
	}
}

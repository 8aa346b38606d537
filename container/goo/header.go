package goo

import (
	"bytes"

	"github.com/gviegas/mslice/internal/binio"
	"github.com/gviegas/mslice/internal/slicerr"
)

// Header is the fixed-size section at the start of a Goo file: printer
// identification, the two preview images, and every default timing and
// motion parameter a layer can inherit.
type Header struct {
	Version         FixedString // 4
	SoftwareInfo    FixedString // 32
	SoftwareVersion FixedString // 24
	FileTime        FixedString // 24
	PrinterName     FixedString // 32
	PrinterType     FixedString // 32
	ProfileName     FixedString // 32

	AntiAliasingLevel uint16
	GreyLevel         uint16
	BlurLevel         uint16

	SmallPreview PreviewImage // 116x116
	BigPreview   PreviewImage // 290x290

	LayerCount  uint32
	XResolution uint16
	YResolution uint16
	XMirror     bool
	YMirror     bool

	XSize          float32 // mm
	YSize          float32 // mm
	ZSize          float32 // mm
	LayerThickness float32 // mm

	ExposureTime float32 // s
	// ExposureDelayMode selects which wait-time fields apply: false uses
	// TurnOffTime, true uses the Before/After lift and retract times.
	ExposureDelayMode bool
	TurnOffTime       float32 // s

	BottomBeforeLiftTime   float32 // s
	BottomAfterLiftTime    float32 // s
	BottomAfterRetractTime float32 // s
	BeforeLiftTime         float32 // s
	AfterLiftTime          float32 // s
	AfterRetractTime       float32 // s

	BottomExposureTime float32 // s
	BottomLayers       uint32

	BottomLiftDistance float32 // mm
	BottomLiftSpeed    float32 // mm/min
	LiftDistance       float32 // mm
	LiftSpeed          float32 // mm/min

	BottomRetractDistance float32 // mm
	BottomRetractSpeed    float32 // mm/min
	RetractDistance       float32 // mm
	RetractSpeed          float32 // mm/min

	BottomSecondLiftDistance float32 // mm
	BottomSecondLiftSpeed    float32 // mm/min
	SecondLiftDistance       float32 // mm
	SecondLiftSpeed          float32 // mm/min

	BottomSecondRetractDistance float32 // mm
	BottomSecondRetractSpeed    float32 // mm/min
	SecondRetractDistance       float32 // mm
	SecondRetractSpeed          float32 // mm/min

	BottomLightPWM uint8
	LightPWM       uint8

	// PerLayerSettings, when set, tells the printer to use each layer's
	// own timing fields instead of these defaults ("advance mode").
	PerLayerSettings bool

	PrintingTime uint32 // s
	TotalVolume  float32 // mm^3
	TotalWeight  float32 // g
	TotalPrice   float32
	PriceUnit    FixedString // 8

	// GreyScaleLevel, when false, restricts layer grey values to 0x00-0x0f.
	GreyScaleLevel   bool
	TransitionLayers uint16
}

// NewHeader returns a Header with the fixed-width string fields sized
// correctly and populated with the given identification text.
func NewHeader(version, softwareInfo, softwareVersion, fileTime, printerName, printerType, profileName string) Header {
	return Header{
		Version:         NewFixedString(4, version),
		SoftwareInfo:    NewFixedString(32, softwareInfo),
		SoftwareVersion: NewFixedString(24, softwareVersion),
		FileTime:        NewFixedString(24, fileTime),
		PrinterName:     NewFixedString(32, printerName),
		PrinterType:     NewFixedString(32, printerType),
		ProfileName:     NewFixedString(32, profileName),
		SmallPreview:    NewPreviewImage(116, 116),
		BigPreview:      NewPreviewImage(290, 290),
		PriceUnit:       NewFixedString(8, "$"),
	}
}

// Serialize writes the header in wire order.
func (h *Header) Serialize(w *binio.Writer) {
	h.Version.Serialize(w)
	w.WriteBytes(magic)
	h.SoftwareInfo.Serialize(w)
	h.SoftwareVersion.Serialize(w)
	h.FileTime.Serialize(w)
	h.PrinterName.Serialize(w)
	h.PrinterType.Serialize(w)
	h.ProfileName.Serialize(w)
	w.WriteU16BE(h.AntiAliasingLevel)
	w.WriteU16BE(h.GreyLevel)
	w.WriteU16BE(h.BlurLevel)
	h.SmallPreview.Serialize(w)
	w.WriteBytes(delimiter)
	h.BigPreview.Serialize(w)
	w.WriteBytes(delimiter)
	w.WriteU32BE(h.LayerCount)
	w.WriteU16BE(h.XResolution)
	w.WriteU16BE(h.YResolution)
	w.WriteBool(h.XMirror)
	w.WriteBool(h.YMirror)
	w.WriteF32BE(h.XSize)
	w.WriteF32BE(h.YSize)
	w.WriteF32BE(h.ZSize)
	w.WriteF32BE(h.LayerThickness)
	w.WriteF32BE(h.ExposureTime)
	w.WriteBool(h.ExposureDelayMode)
	w.WriteF32BE(h.TurnOffTime)
	w.WriteF32BE(h.BottomBeforeLiftTime)
	w.WriteF32BE(h.BottomAfterLiftTime)
	w.WriteF32BE(h.BottomAfterRetractTime)
	w.WriteF32BE(h.BeforeLiftTime)
	w.WriteF32BE(h.AfterLiftTime)
	w.WriteF32BE(h.AfterRetractTime)
	w.WriteF32BE(h.BottomExposureTime)
	w.WriteU32BE(h.BottomLayers)
	w.WriteF32BE(h.BottomLiftDistance)
	w.WriteF32BE(h.BottomLiftSpeed)
	w.WriteF32BE(h.LiftDistance)
	w.WriteF32BE(h.LiftSpeed)
	w.WriteF32BE(h.BottomRetractDistance)
	w.WriteF32BE(h.BottomRetractSpeed)
	w.WriteF32BE(h.RetractDistance)
	w.WriteF32BE(h.RetractSpeed)
	w.WriteF32BE(h.BottomSecondLiftDistance)
	w.WriteF32BE(h.BottomSecondLiftSpeed)
	w.WriteF32BE(h.SecondLiftDistance)
	w.WriteF32BE(h.SecondLiftSpeed)
	w.WriteF32BE(h.BottomSecondRetractDistance)
	w.WriteF32BE(h.BottomSecondRetractSpeed)
	w.WriteF32BE(h.SecondRetractDistance)
	w.WriteF32BE(h.SecondRetractSpeed)
	w.WriteU16BE(uint16(h.BottomLightPWM))
	w.WriteU16BE(uint16(h.LightPWM))
	w.WriteBool(h.PerLayerSettings)
	w.WriteU32BE(h.PrintingTime)
	w.WriteF32BE(h.TotalVolume)
	w.WriteF32BE(h.TotalWeight)
	w.WriteF32BE(h.TotalPrice)
	h.PriceUnit.Serialize(w)
	w.WriteU32BE(headerSize)
	w.WriteBool(h.GreyScaleLevel)
	w.WriteU16BE(h.TransitionLayers)
}

// DeserializeHeader reads a Header, validating the magic tag, both
// preview delimiters and the size sentinel near its end.
func DeserializeHeader(r *binio.Reader) (*Header, error) {
	var h Header
	var err error

	if h.Version, err = DeserializeFixedString(r, 4); err != nil {
		return nil, err
	}
	got, err := r.ReadBytes(len(magic))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(got, magic) {
		return nil, slicerr.New(slicerr.Malformed, "bad magic tag")
	}
	if h.SoftwareInfo, err = DeserializeFixedString(r, 32); err != nil {
		return nil, err
	}
	if h.SoftwareVersion, err = DeserializeFixedString(r, 24); err != nil {
		return nil, err
	}
	if h.FileTime, err = DeserializeFixedString(r, 24); err != nil {
		return nil, err
	}
	if h.PrinterName, err = DeserializeFixedString(r, 32); err != nil {
		return nil, err
	}
	if h.PrinterType, err = DeserializeFixedString(r, 32); err != nil {
		return nil, err
	}
	if h.ProfileName, err = DeserializeFixedString(r, 32); err != nil {
		return nil, err
	}
	if h.AntiAliasingLevel, err = r.ReadU16BE(); err != nil {
		return nil, err
	}
	if h.GreyLevel, err = r.ReadU16BE(); err != nil {
		return nil, err
	}
	if h.BlurLevel, err = r.ReadU16BE(); err != nil {
		return nil, err
	}
	if h.SmallPreview, err = DeserializePreviewImage(r, 116, 116); err != nil {
		return nil, err
	}
	if err := expectDelimiter(r); err != nil {
		return nil, err
	}
	if h.BigPreview, err = DeserializePreviewImage(r, 290, 290); err != nil {
		return nil, err
	}
	if err := expectDelimiter(r); err != nil {
		return nil, err
	}
	if h.LayerCount, err = r.ReadU32BE(); err != nil {
		return nil, err
	}
	if h.XResolution, err = r.ReadU16BE(); err != nil {
		return nil, err
	}
	if h.YResolution, err = r.ReadU16BE(); err != nil {
		return nil, err
	}
	if h.XMirror, err = r.ReadBool(); err != nil {
		return nil, err
	}
	if h.YMirror, err = r.ReadBool(); err != nil {
		return nil, err
	}
	if h.XSize, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.YSize, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.ZSize, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.LayerThickness, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.ExposureTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.ExposureDelayMode, err = r.ReadBool(); err != nil {
		return nil, err
	}
	if h.TurnOffTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomBeforeLiftTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomAfterLiftTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomAfterRetractTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BeforeLiftTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.AfterLiftTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.AfterRetractTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomExposureTime, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomLayers, err = r.ReadU32BE(); err != nil {
		return nil, err
	}
	if h.BottomLiftDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomLiftSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.LiftDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.LiftSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomRetractDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomRetractSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.RetractDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.RetractSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomSecondLiftDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomSecondLiftSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.SecondLiftDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.SecondLiftSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomSecondRetractDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.BottomSecondRetractSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.SecondRetractDistance, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.SecondRetractSpeed, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	pwm, err := r.ReadU16BE()
	if err != nil {
		return nil, err
	}
	h.BottomLightPWM = clampPWM(pwm)
	pwm, err = r.ReadU16BE()
	if err != nil {
		return nil, err
	}
	h.LightPWM = clampPWM(pwm)
	if h.PerLayerSettings, err = r.ReadBool(); err != nil {
		return nil, err
	}
	if h.PrintingTime, err = r.ReadU32BE(); err != nil {
		return nil, err
	}
	if h.TotalVolume, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.TotalWeight, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.TotalPrice, err = r.ReadF32BE(); err != nil {
		return nil, err
	}
	if h.PriceUnit, err = DeserializeFixedString(r, 8); err != nil {
		return nil, err
	}
	sentinel, err := r.ReadU32BE()
	if err != nil {
		return nil, err
	}
	if sentinel != headerSize {
		return nil, slicerr.Newf(slicerr.Malformed, "header size sentinel = %#x, want %#x", sentinel, headerSize)
	}
	if h.GreyScaleLevel, err = r.ReadBool(); err != nil {
		return nil, err
	}
	if h.TransitionLayers, err = r.ReadU16BE(); err != nil {
		return nil, err
	}

	return &h, nil
}

func expectDelimiter(r *binio.Reader) error {
	got, err := r.ReadBytes(len(delimiter))
	if err != nil {
		return err
	}
	if !bytes.Equal(got, delimiter) {
		return slicerr.New(slicerr.Malformed, "bad delimiter")
	}
	return nil
}

func clampPWM(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

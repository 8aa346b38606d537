package goo

import (
	"bytes"

	"github.com/gviegas/mslice/internal/binio"
	"github.com/gviegas/mslice/internal/slicerr"
	"github.com/gviegas/mslice/slicer"
)

// File is a complete Goo container: the header plus one record per
// layer.
type File struct {
	Header Header
	Layers []Layer
}

// FromSliceResult builds a File from a slicing job's output: the header
// is populated from result.Config, and each layer's pause position is
// set to the platform's physical Z size, matching the reference
// container's derived-defaults behavior.
func FromSliceResult(result *slicer.SliceResult[Layer]) *File {
	cfg := result.Config

	h := NewHeader("V3.0", "mslice", "0.1.0", "", "standard", "Default", "default")
	h.AntiAliasingLevel = 8
	h.XResolution = uint16(cfg.PlatformResolutionX)
	h.YResolution = uint16(cfg.PlatformResolutionY)
	h.XSize = cfg.PlatformSizeX
	h.YSize = cfg.PlatformSizeY
	h.ZSize = cfg.PlatformSizeZ
	h.LayerThickness = cfg.SliceHeightMM
	h.LayerCount = uint32(len(result.Layers))
	h.BottomLayers = cfg.FirstLayers
	h.TransitionLayers = uint16(cfg.FirstLayers) + 1
	if cfg.TransitionLayers != 0 {
		h.TransitionLayers = uint16(cfg.TransitionLayers)
	}

	h.ExposureTime = cfg.Exposure.ExposureTime
	h.LiftDistance = cfg.Exposure.LiftDistance
	h.LiftSpeed = cfg.Exposure.LiftSpeed
	h.RetractDistance = cfg.Exposure.RetractDistance
	h.RetractSpeed = cfg.Exposure.RetractSpeed
	h.SecondLiftDistance = cfg.Exposure.LiftDistance2
	h.SecondLiftSpeed = cfg.Exposure.LiftSpeed2
	h.SecondRetractDistance = cfg.Exposure.RetractDistance2
	h.SecondRetractSpeed = cfg.Exposure.RetractSpeed2

	h.BottomExposureTime = cfg.FirstExposure.ExposureTime
	h.BottomLiftDistance = cfg.FirstExposure.LiftDistance
	h.BottomLiftSpeed = cfg.FirstExposure.LiftSpeed
	h.BottomRetractDistance = cfg.FirstExposure.RetractDistance
	h.BottomRetractSpeed = cfg.FirstExposure.RetractSpeed
	h.BottomSecondLiftDistance = cfg.FirstExposure.LiftDistance2
	h.BottomSecondLiftSpeed = cfg.FirstExposure.LiftSpeed2
	h.BottomSecondRetractDistance = cfg.FirstExposure.RetractDistance2
	h.BottomSecondRetractSpeed = cfg.FirstExposure.RetractSpeed2

	h.BottomLightPWM = 255
	h.LightPWM = 255
	h.GreyScaleLevel = true
	h.PrintingTime = uint32(cfg.PrintTime(uint32(len(result.Layers))))

	layers := make([]Layer, len(result.Layers))
	for i, l := range result.Layers {
		l.PausePositionZ = cfg.PlatformSizeZ
		layers[i] = l
	}

	return &File{Header: h, Layers: layers}
}

// Serialize writes the complete file: header, every layer, then the
// terminator.
func (f *File) Serialize() []byte {
	w := binio.NewWriter()
	f.Header.Serialize(w)
	for i := range f.Layers {
		f.Layers[i].Serialize(w)
	}
	w.WriteBytes(terminator)
	return w.Bytes()
}

// Deserialize reads a complete file, including its layer_count-driven
// layer records and the trailing terminator.
func Deserialize(buf []byte) (*File, error) {
	r := binio.NewReader(buf)

	h, err := DeserializeHeader(r)
	if err != nil {
		return nil, err
	}

	layers := make([]Layer, h.LayerCount)
	for i := range layers {
		l, err := DeserializeLayer(r)
		if err != nil {
			return nil, err
		}
		layers[i] = *l
	}

	got, err := r.ReadBytes(len(terminator))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(got, terminator) {
		return nil, slicerr.New(slicerr.Malformed, "bad file terminator")
	}

	return &File{Header: *h, Layers: layers}, nil
}

package main

import (
	"github.com/spf13/viper"

	"github.com/gviegas/mslice/internal/slicerr"
	"github.com/gviegas/mslice/slicer"
)

// loadConfig converts bound flag/file values into a slicer.SliceConfig.
// Only the format is checked here; range checks (slice height,
// resolution, platform size) are done by slicer.NewDriver. Flags take
// precedence over config-file values,
// which take precedence over viper's built-in defaults (set in main.go).
func loadConfig(v *viper.Viper) (*slicer.SliceConfig, error) {
	format, err := parseFormat(v.GetString("format"))
	if err != nil {
		return nil, err
	}

	cfg := &slicer.SliceConfig{
		Format:               format,
		PlatformResolutionX:  v.GetUint32("res-x"),
		PlatformResolutionY:  v.GetUint32("res-y"),
		PlatformSizeX:        float32(v.GetFloat64("size-x")),
		PlatformSizeY:        float32(v.GetFloat64("size-y")),
		PlatformSizeZ:        float32(v.GetFloat64("size-z")),
		SliceHeightMM:        float32(v.GetFloat64("layer-height")),
		FirstLayers:          v.GetUint32("first-layers"),
		TransitionLayers:     v.GetUint32("transition-layers"),
		Exposure: slicer.ExposureProfile{
			ExposureTime:    float32(v.GetFloat64("exposure-time")),
			LiftDistance:    float32(v.GetFloat64("lift-distance")),
			LiftSpeed:       float32(v.GetFloat64("lift-speed")),
			RetractDistance: float32(v.GetFloat64("retract-distance")),
			RetractSpeed:    float32(v.GetFloat64("retract-speed")),
		},
		FirstExposure: slicer.ExposureProfile{
			ExposureTime:    float32(v.GetFloat64("first-exposure-time")),
			LiftDistance:    float32(v.GetFloat64("first-lift-distance")),
			LiftSpeed:       float32(v.GetFloat64("first-lift-speed")),
			RetractDistance: float32(v.GetFloat64("first-retract-distance")),
			RetractSpeed:    float32(v.GetFloat64("first-retract-speed")),
		},
	}

	return cfg, nil
}

func parseFormat(s string) (slicer.Format, error) {
	switch s {
	case "goo":
		return slicer.FormatGoo, nil
	case "ctb":
		return slicer.FormatCtb, slicerr.New(slicerr.Unsupported, "ctb container is not implemented")
	case "svg":
		return slicer.FormatSvg, slicerr.New(slicerr.Unsupported, "svg output is not implemented")
	default:
		return 0, slicerr.Newf(slicerr.Unsupported, "unknown format %q", s)
	}
}

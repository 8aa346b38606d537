// Command mslice is the reference CLI for the slicer core: it loads one or
// more meshes, slices them against a SliceConfig assembled from flags, and
// writes a "Goo V3.0" container to the requested output path.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gviegas/mslice/container/goo"
	"github.com/gviegas/mslice/internal/slicerr"
	"github.com/gviegas/mslice/mesh"
	"github.com/gviegas/mslice/meshio"
	"github.com/gviegas/mslice/rle"
	"github.com/gviegas/mslice/slicer"
)

// Loader supplies mesh geometry for --mesh paths. OBJ/STL parsing is an
// external collaborator (spec §6); this build ships no implementation, so
// Loader is nil until an embedding program sets it.
var Loader meshio.Loader

// Preview supplies the embedded preview thumbnails. Image decoding and
// scaling are external collaborators (spec §6); when nil, blank previews
// are embedded.
var Preview meshio.PreviewProvider

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mslice",
		Short: "Slice triangle meshes into an MSLA exposure-mask container",
	}
	root.AddCommand(newSliceCmd())
	return root
}

func newSliceCmd() *cobra.Command {
	v := viper.New()
	v.SetDefault("format", "goo")
	v.SetDefault("layer-height", 0.05)
	v.SetDefault("exposure-time", 3.0)
	v.SetDefault("lift-speed", 65.0)
	v.SetDefault("retract-speed", 150.0)
	v.SetDefault("first-exposure-time", 30.0)
	v.SetDefault("first-lift-speed", 65.0)
	v.SetDefault("first-retract-speed", 150.0)
	v.SetDefault("first-layers", 1)

	var meshArgs []string
	var configPath string

	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Slice meshes and write a container file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				v.SetConfigFile(configPath)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config file: %w", err)
				}
			}
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			return runSlice(cmd.Context(), v, meshArgs, v.GetString("output"))
		},
	}

	flags := cmd.Flags()
	flags.Uint32("res-x", 0, "platform X resolution, in pixels")
	flags.Uint32("res-y", 0, "platform Y resolution, in pixels")
	flags.Float64("size-x", 0, "platform X size, in mm")
	flags.Float64("size-y", 0, "platform Y size, in mm")
	flags.Float64("size-z", 0, "platform Z size, in mm")
	flags.Float64("layer-height", 0.05, "layer height, in mm")
	flags.Uint32("first-layers", 1, "number of first (\"bottom\") layers")
	flags.Uint32("transition-layers", 0, "number of layers transitioning from first to regular exposure")

	flags.Float64("exposure-time", 3.0, "regular layer exposure time, in seconds")
	flags.Float64("lift-distance", 5.0, "regular layer lift distance, in mm")
	flags.Float64("lift-speed", 65.0, "regular layer lift speed, in mm/min")
	flags.Float64("retract-distance", 5.0, "regular layer retract distance, in mm")
	flags.Float64("retract-speed", 150.0, "regular layer retract speed, in mm/min")

	flags.Float64("first-exposure-time", 30.0, "first-layer exposure time, in seconds")
	flags.Float64("first-lift-distance", 5.0, "first-layer lift distance, in mm")
	flags.Float64("first-lift-speed", 65.0, "first-layer lift speed, in mm/min")
	flags.Float64("first-retract-distance", 5.0, "first-layer retract distance, in mm")
	flags.Float64("first-retract-speed", 150.0, "first-layer retract speed, in mm/min")

	flags.String("preview", "", "when non-empty, embed previews from the configured PreviewProvider (the path itself is not read)")
	flags.StringArrayVar(&meshArgs, "mesh", nil, "mesh path, optionally suffixed with @px,py,pz@rx,ry,rz@sx,sy,sz")
	flags.String("format", "goo", "container format (only \"goo\" is implemented)")
	flags.StringP("output", "o", "", "output file path")
	flags.StringVar(&configPath, "config", "", "optional config file (flags override it)")

	return cmd
}

func runSlice(ctx context.Context, v *viper.Viper, meshArgs []string, output string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	if output == "" {
		return fmt.Errorf("--output is required")
	}

	meshes, err := loadMeshes(meshArgs)
	if err != nil {
		return err
	}

	driver, err := slicer.NewDriver(cfg, meshes)
	if err != nil {
		return err
	}

	total := driver.TotalLayers()
	logger.Info().Int("meshes", len(meshes)).Uint32("layers", total).Msg("slice job starting")

	progress := slicer.NewProgress(total)
	done := make(chan struct{})
	go reportProgress(logger, progress, done)

	result, err := slicer.Slice(ctx, driver, func() rle.EncodableLayer[goo.Layer] {
		return goo.NewLayerEncoder()
	}, progress)
	close(done)
	if err != nil {
		return err
	}

	file := goo.FromSliceResult(result)
	if err := applyPreview(file, v.GetString("preview")); err != nil {
		return err
	}

	buf := file.Serialize()
	if err := os.WriteFile(output, buf, 0o644); err != nil {
		return slicerr.Newf(slicerr.IO, "writing %s: %v", output, err)
	}

	logger.Info().Str("path", output).Int("bytes", len(buf)).Msg("container written")
	return nil
}

func loadMeshes(meshArgs []string) ([]*mesh.Mesh, error) {
	if len(meshArgs) == 0 {
		return nil, slicerr.New(slicerr.InvalidMesh, "no --mesh arguments given")
	}
	if Loader == nil {
		return nil, fmt.Errorf("no mesh loader configured: OBJ/STL parsing is an external collaborator (meshio.Loader)")
	}

	meshes := make([]*mesh.Mesh, len(meshArgs))
	for i, arg := range meshArgs {
		spec, err := parseMeshSpec(arg)
		if err != nil {
			return nil, err
		}
		vertices, faces, normals, err := Loader.Load(spec.path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", spec.path, err)
		}
		m := mesh.New(vertices, faces, normals)
		m.SetPosition(spec.position)
		m.SetRotation(spec.rotation)
		m.SetScale(spec.scale)
		meshes[i] = m
	}
	return meshes, nil
}

func applyPreview(file *goo.File, path string) error {
	if path == "" || Preview == nil {
		return nil
	}
	small, err := Preview.Preview(116, 116)
	if err != nil {
		return fmt.Errorf("rendering small preview: %w", err)
	}
	big, err := Preview.Preview(290, 290)
	if err != nil {
		return fmt.Errorf("rendering large preview: %w", err)
	}
	file.Header.SmallPreview = goo.PreviewFromRGBA(116, 116, small)
	file.Header.BigPreview = goo.PreviewFromRGBA(290, 290, big)
	return nil
}

func reportProgress(logger zerolog.Logger, progress *slicer.Progress, done <-chan struct{}) {
	lastDecile := -1
	for {
		completed := progress.Wait()
		total := progress.Total()
		if total == 0 {
			continue
		}
		decile := int(completed * 10 / total)
		if decile != lastDecile {
			lastDecile = decile
			logger.Info().Uint32("completed", completed).Uint32("total", total).Msg("slicing progress")
		}
		select {
		case <-done:
			return
		default:
		}
		if completed >= total {
			return
		}
	}
}

func exitCode(err error) int {
	var serr *slicerr.Error
	if !asSlicerr(err, &serr) {
		log.Error().Err(err).Msg("mslice failed")
		return 1
	}
	log.Error().Err(err).Str("kind", serr.Kind.String()).Msg("mslice failed")
	switch serr.Kind {
	case slicerr.Malformed:
		return 2
	case slicerr.Truncated:
		return 3
	case slicerr.InvalidMesh:
		return 4
	case slicerr.ConfigRange:
		return 5
	case slicerr.Unsupported:
		return 6
	case slicerr.IO:
		return 7
	default:
		return 1
	}
}

func asSlicerr(err error, target **slicerr.Error) bool {
	return errors.As(err, target)
}

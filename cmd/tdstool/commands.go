package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-3ds/internal/config"
	"github.com/Faultbox/midgard-3ds/internal/logger"
	"github.com/Faultbox/midgard-3ds/pkg/convert"
	"github.com/Faultbox/midgard-3ds/pkg/formats"
	"github.com/Faultbox/midgard-3ds/pkg/scene"
	"github.com/Faultbox/midgard-3ds/pkg/texture"
)

var errNotTDS = errors.New("not a 3DS file")

// load reads and imports a single file.
func load(path string, cfg *config.Config) (*scene.Scene, error) {
	opts, err := importOptions(cfg)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !formats.IsTDS(data) {
		return nil, fmt.Errorf("%s: %w", path, errNotTDS)
	}

	logger.Debug("importing", zap.String("file", path), zap.Int("bytes", len(data)))
	s, err := convert.Import(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func singleFile(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: tdstool %s", usage)
	}
	return args[0], nil
}

// cmdInfo prints statistics for every file given. A broken file does not
// stop the others; all failures are reported together.
func cmdInfo(w io.Writer, args []string, cfg *config.Config) error {
	if len(args) < 1 {
		return errors.New("usage: tdstool info <file.3ds>...")
	}

	var errs error
	printed := 0
	for _, path := range args {
		s, err := load(path, cfg)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if printed > 0 {
			fmt.Fprintln(w)
		}
		printed++

		vertices := 0
		for _, m := range s.Meshes {
			vertices += len(m.Positions)
		}
		fmt.Fprintf(w, "File:       %s\n", filepath.Base(path))
		fmt.Fprintf(w, "Meshes:     %d\n", len(s.Meshes))
		fmt.Fprintf(w, "Vertices:   %d\n", vertices)
		fmt.Fprintf(w, "Faces:      %d\n", s.FaceCount())
		fmt.Fprintf(w, "Materials:  %d\n", len(s.Materials))
		fmt.Fprintf(w, "Nodes:      %d\n", s.NodeCount())
		fmt.Fprintf(w, "Lights:     %d\n", len(s.Lights))
		fmt.Fprintf(w, "Cameras:    %d\n", len(s.Cameras))
		if len(s.Animations) > 0 {
			a := s.Animations[0]
			fmt.Fprintf(w, "Animation:  %d channels, %.0f frames\n", len(a.Channels), a.Duration)
		}
	}
	return errs
}

func cmdTree(w io.Writer, args []string, cfg *config.Config) error {
	path, err := singleFile(args, "tree <file.3ds>")
	if err != nil {
		return err
	}
	s, err := load(path, cfg)
	if err != nil {
		return err
	}

	s.Root.Walk(func(n *scene.Node, depth int) {
		fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), n.Name)
		if len(n.Meshes) > 0 {
			names := make([]string, len(n.Meshes))
			for i, idx := range n.Meshes {
				m := s.Meshes[idx]
				names[i] = fmt.Sprintf("#%d %s", idx, s.Materials[m.MaterialIndex].Name)
			}
			fmt.Fprintf(w, " [%s]", strings.Join(names, ", "))
		}
		fmt.Fprintln(w)
	})
	return nil
}

func cmdMaterials(w io.Writer, args []string, cfg *config.Config) error {
	path, err := singleFile(args, "materials <file.3ds>")
	if err != nil {
		return err
	}
	s, err := load(path, cfg)
	if err != nil {
		return err
	}

	for i, m := range s.Materials {
		fmt.Fprintf(w, "%3d  %-24s %-12s diffuse(%.2f %.2f %.2f) opacity %.2f\n",
			i, m.Name, m.Shading, m.Diffuse.R, m.Diffuse.G, m.Diffuse.B, m.Opacity)
		for _, t := range m.Textures {
			fmt.Fprintf(w, "       %-10s %s (%s)\n", t.Type, t.Path, t.MapMode)
		}
	}
	return nil
}

func cmdAnim(w io.Writer, args []string, cfg *config.Config) error {
	path, err := singleFile(args, "anim <file.3ds>")
	if err != nil {
		return err
	}
	s, err := load(path, cfg)
	if err != nil {
		return err
	}

	if len(s.Animations) == 0 {
		fmt.Fprintln(w, "(no animation)")
		return nil
	}
	for _, a := range s.Animations {
		fmt.Fprintf(w, "%s: %.0f frames, %d channels\n", a.Name, a.Duration, len(a.Channels))
		for _, ch := range a.Channels {
			fmt.Fprintf(w, "  %-24s pos %-4d rot %-4d scale %d\n",
				ch.NodeName, len(ch.PositionKeys), len(ch.RotationKeys), len(ch.ScalingKeys))
		}
	}
	return nil
}

func cmdDump(w io.Writer, args []string, cfg *config.Config) error {
	path, err := singleFile(args, "dump <file.3ds>")
	if err != nil {
		return err
	}
	s, err := load(path, cfg)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(scene.Summarize(s)); err != nil {
		return err
	}
	return enc.Close()
}

// cmdConfig writes the default configuration, to the user config directory
// unless a path is given.
func cmdConfig(w io.Writer, args []string, _ *config.Config) error {
	cfg := config.Default()
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", args[0])
		return nil
	}

	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

// cmdTextures looks up every texture the materials refer to in the model's
// directory. Missing or unreadable files are reported, not fatal, unless
// -strict is given.
func cmdTextures(w io.Writer, args []string, cfg *config.Config) error {
	fs := flag.NewFlagSet("textures", flag.ContinueOnError)
	decode := fs.Bool("decode", false, "Decode every image instead of reading headers")
	strict := fs.Bool("strict", false, "Fail if any texture is missing or unreadable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := singleFile(fs.Args(), "textures [-decode] [-strict] <file.3ds>")
	if err != nil {
		return err
	}
	s, err := load(path, cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	var errs error
	check := func(material, kind, name string) {
		status, err := textureStatus(dir, name, *decode)
		if err != nil {
			errs = multierr.Append(errs, err)
			status = err.Error()
		}
		fmt.Fprintf(w, "%-24s %-12s %-16s %s\n", material, kind, name, status)
	}

	for _, m := range s.Materials {
		for _, t := range m.Textures {
			check(m.Name, t.Type.String(), t.Path)
		}
		if m.BackgroundImage != "" {
			check(m.Name, "Background", m.BackgroundImage)
		}
	}
	if *strict {
		return errs
	}
	return nil
}

func textureStatus(dir, name string, decode bool) (string, error) {
	resolved, err := texture.Resolve(dir, name)
	if err != nil {
		return "", err
	}
	if decode {
		img, err := texture.Decode(resolved)
		if err != nil {
			return "", err
		}
		b := img.Bounds()
		return fmt.Sprintf("%dx%d decoded", b.Dx(), b.Dy()), nil
	}
	info, err := texture.Inspect(resolved)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%dx%d %s", info.Width, info.Height, info.Format), nil
}

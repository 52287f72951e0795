// Package texture locates and inspects the image files a 3DS material refers to.
//
// 3DS files store bare, usually upper-case DOS file names such as
// "WOOD.BMP"; Resolve finds them next to the model regardless of case.
// BMP and TIFF come from golang.org/x/image, JPEG, PNG and GIF from the
// standard library and TGA from this package.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
)

// ErrNotFound is returned when a texture file cannot be located.
var ErrNotFound = errors.New("texture file not found")

// Info describes a texture file on disk.
type Info struct {
	Path   string
	Format string // Decoder name: bmp, tga, jpeg, png, gif or tiff
	Width  int
	Height int
}

// Resolve finds the file named name relative to dir. Backslash separators
// are accepted, and when the exact path does not exist the base name is
// matched case-insensitively against the entries of dir.
func Resolve(dir, name string) (string, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	if name == "" {
		return "", ErrNotFound
	}

	exact := filepath.Join(dir, filepath.FromSlash(name))
	if fi, err := os.Stat(exact); err == nil && !fi.IsDir() {
		return exact, nil
	}

	base := filepath.Base(filepath.FromSlash(name))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), base) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Inspect reads the header of the image at path.
func Inspect(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, err
	}

	var cfg image.Config
	var format string
	if isTGA(path) {
		cfg, err = DecodeTGAConfig(data)
		format = "tga"
	} else {
		cfg, format, err = image.DecodeConfig(bytes.NewReader(data))
	}
	if err != nil {
		return Info{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return Info{Path: path, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Decode reads and fully decodes the image at path.
func Decode(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if isTGA(path) {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// TGA has no magic number, so it is recognized by extension.
func isTGA(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tga")
}

package texel

import (
	"fmt"
	"image"
	_ "image/png" // register PNG for image.Decode
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP for image.Decode
	_ "golang.org/x/image/tiff" // register TIFF for image.Decode
)

// Decode reads a PNG, BMP or TIFF image and converts it to a grid.
// The image must be square with a supported edge length.
func Decode(r io.Reader) (*Grid, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("texel: decode: %w", err)
	}
	g, err := GridFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("texel: %s image: %w", format, err)
	}
	return g, nil
}

// LoadFile decodes the image at path into a grid.
func LoadFile(path string) (*Grid, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("texel: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

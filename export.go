package texel

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for unknown export formats.
var ErrUnsupportedFormat = errors.New("texel: unsupported export format")

// Format is an export file format. All formats are lossless.
type Format uint8

const (
	// PNG is the default export format.
	PNG Format = iota
	// BMP writes a 32-bit bitmap.
	BMP
	// TIFF writes a deflate-compressed TIFF.
	TIFF
	// PDF writes a printable A4 sheet with one square per opaque pixel.
	PDF

	formatCount
)

var formatExt = [formatCount]string{"png", "bmp", "tiff", "pdf"}

var formatMediaType = [formatCount]string{"image/png", "image/bmp", "image/tiff", "application/pdf"}

// String returns the file extension without the dot.
func (f Format) String() string {
	if f < formatCount {
		return formatExt[f]
	}
	return "unknown"
}

// MediaType returns the MIME type used when offering the file for download.
func (f Format) MediaType() string {
	if f < formatCount {
		return formatMediaType[f]
	}
	return "application/octet-stream"
}

// ParseFormat parses a format name or file extension ("png", ".tif", "PDF").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "pdf":
		return PDF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ExportFilename returns the download name for a grid of edge n,
// e.g. "texture_16x16.png".
func ExportFilename(n int, f Format) string {
	return fmt.Sprintf("texture_%dx%d.%s", n, n, f)
}

// Export encodes the raster to w.
func Export(w io.Writer, r Raster, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, toNRGBA(r))
	case BMP:
		// The bmp encoder only keeps alpha for *image.NRGBA and *image.RGBA.
		err = bmp.Encode(w, toNRGBA(r))
	case TIFF:
		err = tiff.Encode(w, toNRGBA(r), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case PDF:
		err = exportPDF(w, r)
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("texel: export %s: %w", f, err)
	}
	return nil
}

func toNRGBA(r Raster) *image.NRGBA {
	if g, ok := r.(*Grid); ok {
		return g.ToImage()
	}
	img := image.NewNRGBA(image.Rect(0, 0, r.Size(), r.Size()))
	for y := 0; y < r.Size(); y++ {
		for x := 0; x < r.Size(); x++ {
			p, _ := r.Pixel(x, y)
			img.SetNRGBA(x, y, p.NRGBA())
		}
	}
	return img
}

// PDF sheet layout, in millimetres.
const (
	pdfMargin  = 20.0
	pdfSheet   = 170.0 // A4 is 210mm wide
	pdfCaption = 12.0
)

// exportPDF draws the raster as a grid of filled squares on one A4 page.
// Transparent cells are left blank; a thin frame marks the texture bounds.
func exportPDF(w io.Writer, r Raster) error {
	n := r.Size()
	cellMM := pdfSheet / float64(n)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ExportFilename(n, PDF), true)
	pdf.SetCreator("texel", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pdfMargin, pdfMargin, fmt.Sprintf("texture %dx%d", n, n))

	top := pdfMargin + pdfCaption
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			p, _ := r.Pixel(x, y)
			if p.IsTransparent() {
				continue
			}
			pdf.SetFillColor(int(p.R), int(p.G), int(p.B))
			pdf.Rect(pdfMargin+float64(x)*cellMM, top+float64(y)*cellMM, cellMM, cellMM, "F")
		}
	}

	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.2)
	pdf.Rect(pdfMargin, top, pdfSheet, pdfSheet, "D")

	return pdf.Output(w)
}

package publish

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
)

// FigureArtifact is a plotted figure that can persist itself. The two
// accepted families are RasterFigure and VectorFigure; the caller selects
// the backend explicitly by constructing one of them.
type FigureArtifact interface {
	// SaveTo writes the figure to path in the given format.
	SaveTo(path, format string) error
}

// RasterFigure wraps a decoded raster image and saves it with the standard
// image encoders.
type RasterFigure struct {
	Image image.Image
}

// SaveTo writes the image as png or jpeg.
func (f RasterFigure) SaveTo(path, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("publish: create %s: %w", path, err)
	}
	defer file.Close()
	switch format {
	case "png":
		err = png.Encode(file, f.Image)
	case "jpg", "jpeg":
		err = jpeg.Encode(file, f.Image, &jpeg.Options{Quality: 90})
	default:
		err = fmt.Errorf("publish: unsupported raster format %q", format)
	}
	if err != nil {
		return err
	}
	return file.Close()
}

// VectorFigure wraps SVG source. Formats other than svg require the
// optional Convert hook; without it the publisher falls back to writing the
// raw SVG bytes, except for eps output which has no usable fallback.
type VectorFigure struct {
	SVG []byte

	// Convert renders the SVG into another vector format.
	Convert func(svg []byte, format string) ([]byte, error)
}

// SaveTo writes the figure, converting when a converter is available.
func (f VectorFigure) SaveTo(path, format string) error {
	data := f.SVG
	if format != "svg" && f.Convert != nil {
		converted, err := f.Convert(f.SVG, format)
		if err != nil {
			return fmt.Errorf("publish: convert figure to %s: %w", format, err)
		}
		data = converted
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("publish: write %s: %w", path, err)
	}
	return nil
}

package colortest

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kovidgoyal/colortest/types"

	"golang.org/x/image/tiff"
)

type Format = types.Format

const (
	UNKNOWN = types.UNKNOWN
	PNG     = types.PNG
	TIFF    = types.TIFF
)

// ErrUnsupportedFormat is returned for output formats other than PNG and TIFF.
var ErrUnsupportedFormat = errors.New("colortest: unsupported image format")

// FormatFromExtension maps png, apng, tif and tiff (with or without the
// leading dot, any case) to an output format.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := types.FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return UNKNOWN, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

func FormatFromFilename(filename string) (Format, error) {
	return FormatFromExtension(filepath.Ext(filename))
}

type encodeConfig struct {
	pngCompressionLevel png.CompressionLevel
	tiffCompression     tiff.CompressionType
}

var defaultEncodeConfig = encodeConfig{
	pngCompressionLevel: png.DefaultCompression,
	tiffCompression:     tiff.Deflate,
}

// EncodeOption tweaks how Encode and Save compress their output.
type EncodeOption func(*encodeConfig)

// PNGCompressionLevel defaults to png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// TIFFCompression defaults to tiff.Deflate, with the horizontal predictor
// enabled whenever the data is compressed.
func TIFFCompression(ct tiff.CompressionType) EncodeOption {
	return func(c *encodeConfig) {
		c.tiffCompression = ct
	}
}

// full_depth makes sure a Framebuffer is written with 16 bits per channel,
// the encoders only do that for the standard 16 bit image types.
func full_depth(img image.Image) (image.Image, error) {
	if fb, ok := img.(*Framebuffer); ok {
		return fb.NRGBA64()
	}
	return img, nil
}

// Encode writes img to w with 16 bits per channel. A Framebuffer is
// quantized first.
func Encode(w io.Writer, img image.Image, format Format, opts ...EncodeOption) error {
	cfg := defaultEncodeConfig
	for _, o := range opts {
		o(&cfg)
	}
	img, err := full_depth(img)
	if err != nil {
		return err
	}
	switch format {
	case PNG:
		return (&png.Encoder{CompressionLevel: cfg.pngCompressionLevel}).Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: cfg.tiffCompression, Predictor: cfg.tiffCompression != tiff.Uncompressed})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Save encodes img into the file at path, the format is picked from its
// extension.
//
//	err := colortest.Save(fb, "out.png")
func Save(img image.Image, path string, opts ...EncodeOption) (err error) {
	format, err := FormatFromFilename(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err == nil {
			Logger().Info("saved image", "path", path, "format", format, "size", img.Bounds().Size())
		}
	}()
	return Encode(out, img, format, opts...)
}

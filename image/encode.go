package image

import (
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"github.com/disintegration/imaging"
)

// EncodeOpts are options for Encode.
type EncodeOpts struct {
	Verbose     bool // Print verbose logging.
	Scale       int  // Upscale factor, nearest neighbor. 0 or 1 leaves the image as is.
	JPEGQuality int  // JPEG quality, 1-100. If 0, the default of the encoder is used.
}

// FormatFromPath returns the image format for the extension of path, e.g. PNG
// for "polymon.png". Extensions are matched case-insensitively.
func FormatFromPath(path string) (imaging.Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return f, fmt.Errorf("format for %q: %w", path, err)
	}
	return f, nil
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format imaging.Format, opts *EncodeOpts) error {
	var xopts EncodeOpts
	if opts != nil {
		xopts = *opts
	}
	if xopts.Scale < 0 {
		return fmt.Errorf("invalid scale %d, must be >= 0", xopts.Scale)
	}
	if xopts.JPEGQuality < 0 || xopts.JPEGQuality > 100 {
		return fmt.Errorf("invalid jpeg quality %d, must be 1-100", xopts.JPEGQuality)
	}

	if xopts.Scale > 1 {
		size := img.Bounds().Size().Mul(xopts.Scale)
		if xopts.Verbose {
			log.Printf("resizing image from %v to %v", img.Bounds().Size(), size)
		}
		img = imageResize(img, size, xopts.Verbose)
	}

	var eopts []imaging.EncodeOption
	if format == imaging.JPEG && xopts.JPEGQuality > 0 {
		eopts = append(eopts, imaging.JPEGQuality(xopts.JPEGQuality))
	}
	if err := imaging.Encode(w, img, format, eopts...); err != nil {
		return fmt.Errorf("encoding %s: %v", format, err)
	}
	return nil
}

// imageResize resizes to the exact size, without smoothing so pixels stay sharp.
func imageResize(img image.Image, size image.Point, verbose bool) image.Image {
	t0 := time.Now()
	r := imaging.Resize(img, size.X, size.Y, imaging.NearestNeighbor)
	if verbose {
		log.Printf("resizing in %v", time.Since(t0))
	}
	return r
}

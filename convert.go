package polymon

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/polymon/polymon-go/image"
)

const (
	// DocumentExt is the suffix input documents must have.
	DocumentExt = ".json"

	// DefaultImageExt is used for the output image when no extension is given.
	DefaultImageExt = ".png"
)

// OutputPath returns the path of the image for the document at jsonPath: the
// DocumentExt suffix is replaced with imgExt, or DefaultImageExt if imgExt is
// empty. Paths without DocumentExt suffix result in ErrInputSuffix.
func OutputPath(jsonPath, imgExt string) (string, error) {
	if !strings.HasSuffix(jsonPath, DocumentExt) {
		return "", fmt.Errorf("%w: %q", ErrInputSuffix, jsonPath)
	}
	if imgExt == "" {
		imgExt = DefaultImageExt
	}
	return strings.TrimSuffix(jsonPath, DocumentExt) + imgExt, nil
}

// ConvertOpts are options for Convert.
type ConvertOpts struct {
	Verbose     bool // Print verbose logging.
	Scale       int  // Integer upscale factor for the saved image, nearest neighbor. 0 or 1 keeps 64x64.
	JPEGQuality int  // Quality for JPEG output, 1-100. 0 for the default.
}

// Convert reads the document at jsonPath and writes its image to imgPath.
// The image format is determined by the extension of imgPath. An existing
// file at imgPath is overwritten. On failure, imgPath is not modified.
func Convert(jsonPath, imgPath string, opts *ConvertOpts) error {
	var xopts ConvertOpts
	if opts != nil {
		xopts = *opts
	}

	logf := func(format string, args ...interface{}) {
		if xopts.Verbose {
			log.Printf(format, args...)
		}
	}

	// Resolve format first, to fail before doing any work.
	format, err := image.FormatFromPath(imgPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOutputWrite, imgPath, err)
	}

	t0 := time.Now()
	doc, err := ReadDocument(jsonPath)
	if err != nil {
		return err
	}
	pixels, err := doc.Pixels()
	if err != nil {
		return err
	}
	logf("parsed %d values from %s in %v", len(pixels), jsonPath, time.Since(t0))

	img, err := image.FromCHW(pixels)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	eopts := &image.EncodeOpts{
		Verbose:     xopts.Verbose,
		Scale:       xopts.Scale,
		JPEGQuality: xopts.JPEGQuality,
	}
	err = writeFile(imgPath, func(w io.Writer) error {
		return image.Encode(w, img, format, eopts)
	})
	if err != nil {
		return err
	}
	logf("wrote %s image %s", format, imgPath)
	return nil
}

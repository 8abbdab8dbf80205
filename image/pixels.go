// Package image turns flattened Polymon pixel arrays into images, and encodes
// them to files.
package image

import (
	"fmt"
	"image"
)

// Shape of the pixel arrays in Polymon documents. Values are stored channel
// first, then width, then height.
const (
	Channels = 3
	Width    = 64
	Height   = 64

	// Len is the number of values in a pixel array.
	Len = Channels * Width * Height
)

// FromCHW returns the RGB image for a flattened pixel array of Len values.
//
// The array is interpreted with shape (channel, x, y) and transposed to the
// usual (y, x, channel) layout: pixel (x, y) gets its red, green and blue
// components from flat[c*Width*Height + x*Height + y] for c = 0, 1, 2.
// Values are truncated to 8 bits, wrapping rather than clamping, so 256 reads
// as 0 and -1 as 255. The returned image is fully opaque.
func FromCHW(flat []int64) (*image.NRGBA, error) {
	if len(flat) != Len {
		return nil, fmt.Errorf("got %d values, expected %d", len(flat), Len)
	}
	img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	const plane = Width * Height
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			o := img.PixOffset(x, y)
			i := x*Height + y
			img.Pix[o+0] = uint8(flat[i])
			img.Pix[o+1] = uint8(flat[plane+i])
			img.Pix[o+2] = uint8(flat[2*plane+i])
			img.Pix[o+3] = 0xff
		}
	}
	return img, nil
}

package bitmap

import (
	"image"
)

// Encode converts src into the little-endian RGB565 layout used by dumps,
// scanning rows top to bottom.
func Encode(src image.Image) []byte {
	b := src.Bounds()
	d := NewRGB565(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d.Set(x, y, src.At(x, y))
		}
	}

	return d.pixels
}

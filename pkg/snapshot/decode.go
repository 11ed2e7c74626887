package snapshot

import (
	"image"

	"github.com/pkg/errors"

	"tembedsnap/pkg/bitmap"
)

// Decode expands a little-endian RGB565 dump into an opaque 8 bit raster.
// Word i lands at (i mod Width, i div Width). The buffer must hold exactly
// one word per pixel of geo.
func Decode(raw []byte, geo Geometry) (*image.NRGBA, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}

	if len(raw)%2 != 0 {
		return nil, errors.Wrapf(ErrSizeMismatch, "odd length %d bytes", len(raw))
	}

	if n := len(raw) / 2; n != geo.Pixels() {
		return nil, errors.Wrapf(ErrSizeMismatch, "got %d pixels, want %d (%s)", n, geo.Pixels(), geo)
	}

	src, err := bitmap.FromBytes(raw, geo.Rect())
	if err != nil {
		return nil, errors.Wrap(ErrSizeMismatch, err.Error())
	}

	dst := image.NewNRGBA(geo.Rect())
	for y := 0; y < geo.Height; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+geo.Width*4]
		for x := 0; x < geo.Width; x++ {
			r, g, b := src.RGB565At(x, y).RGB8()
			px := row[x*4 : x*4+4]
			px[0], px[1], px[2], px[3] = r, g, b, 0xFF
		}
	}

	return dst, nil
}

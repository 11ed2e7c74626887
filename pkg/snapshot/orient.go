package snapshot

import (
	"image"

	"github.com/disintegration/imaging"
)

// Orient rotates the raster by 270 degrees counter-clockwise and then
// mirrors it left to right. The result has swapped dimensions and
// out(x, y) == in(y, x).
func Orient(img image.Image) *image.NRGBA {
	return imaging.FlipH(imaging.Rotate270(img))
}

// Package snapshot turns RGB565 screen dumps taken from the device into PNG
// images.
//
// A dump is the LVGL snapshot of a 320x170 landscape screen, read out column
// by column. Decoding it row-major into a 170x320 raster and then applying
// Orient yields the picture as it appears on the display.
package snapshot

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

var (
	ErrFileNotFound    = errors.New("snapshot: input file not found")
	ErrSizeMismatch    = errors.New("snapshot: size mismatch")
	ErrWriteFailure    = errors.New("snapshot: write failed")
	ErrInvalidGeometry = errors.New("snapshot: invalid geometry")
	ErrNoDump          = errors.New("snapshot: no hex dump found")
)

// Default is the frame buffer of the 1.9" panel.
var Default = Geometry{Width: 170, Height: 320}

// Geometry is the raster layout of a dump before it gets oriented.
type Geometry struct {
	Width  int
	Height int
}

func (g Geometry) Pixels() int {
	return g.Width * g.Height
}

// Size is the expected dump length in bytes.
func (g Geometry) Size() int {
	return g.Pixels() * 2
}

func (g Geometry) Rect() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return errors.Wrapf(ErrInvalidGeometry, "%s", g)
	}
	return nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

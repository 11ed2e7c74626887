package bitmap

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ErrBufferLength is returned when a pixel buffer does not cover its rectangle.
var ErrBufferLength = errors.New("rgb565: buffer length mismatch")

// Model converts any color into an RGB565 Color.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return toRGB565(r, g, b)
})

func NewRGB565(r image.Rectangle) *RGB565 {
	return &RGB565{
		pixels: make([]byte, 2*r.Dx()*r.Dy()),
		stride: 2 * r.Dx(),
		bounds: r,
	}
}

// FromBytes wraps a little-endian RGB565 buffer without copying it.
func FromBytes(pix []byte, r image.Rectangle) (*RGB565, error) {
	if r.Empty() || len(pix) != 2*r.Dx()*r.Dy() {
		return nil, errors.Wrapf(ErrBufferLength, "got %d bytes for %dx%d", len(pix), r.Dx(), r.Dy())
	}

	return &RGB565{
		pixels: pix,
		stride: 2 * r.Dx(),
		bounds: r,
	}, nil
}

// RGB565 is a frame buffer dump. It implements the draw.Image interface.
type RGB565 struct {
	pixels []byte
	stride int
	bounds image.Rectangle
}

// Bounds implements the image.Image (and draw.Image) interface.
func (d *RGB565) Bounds() image.Rectangle {
	return d.bounds
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (d *RGB565) ColorModel() color.Model {
	return Model
}

// At implements the image.Image (and draw.Image) interface.
func (d *RGB565) At(x, y int) color.Color {
	return d.RGB565At(x, y)
}

func (d *RGB565) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(d.bounds)) {
		return Color(0)
	}
	i := d.offset(x, y)
	return Color(d.pixels[i+1])<<8 | Color(d.pixels[i])
}

// Set implements the draw.Image interface.
func (d *RGB565) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(d.bounds)) {
		return
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return
	}
	rgb := toRGB565(r, g, b)
	i := d.offset(x, y)
	// Words are stored low byte first, as the device dumps them.
	d.pixels[i+1] = byte(rgb >> 8)
	d.pixels[i] = byte(rgb & 0xFF)
}

func (d *RGB565) offset(x, y int) int {
	return (y-d.bounds.Min.Y)*d.stride + 2*(x-d.bounds.Min.X)
}

// toRGB565 keeps the highest 5 or 6 bits of each 16 bit channel.
func toRGB565(r, g, b uint32) Color {
	// RRRRRGGGGGGBBBBB
	return Color((r & 0xF800) +
		((g & 0xFC00) >> 5) +
		((b & 0xF800) >> 11))
}

// Color is a single pixel word. This shows the memory layout:
//
//    bit 76543210  76543210
//        RRRRRGGG  GGGBBBBB
//       high byte  low byte
type Color uint16

// RGB8 widens each channel to 8 bits by shifting. The low bits stay zero, so
// full intensity red or blue is 248 and green is 252.
func (c Color) RGB8() (r, g, b uint8) {
	r = uint8((c>>11)&0x1F) << 3
	g = uint8((c>>5)&0x3F) << 2
	b = uint8(c&0x1F) << 3
	return
}

// RGBA implements the color.Color interface. Each 8 bit channel is
// replicated into both bytes so converting back to 8 bits is exact.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB8()
	r = uint32(r8) * 0x101
	g = uint32(g8) * 0x101
	b = uint32(b8) * 0x101
	a = 0xFFFF
	return
}

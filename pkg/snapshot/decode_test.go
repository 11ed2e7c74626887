package snapshot

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDefaultBlack(t *testing.T) {
	raw := make([]byte, 108800)

	img, err := Decode(raw, Default)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 170, 320), img.Bounds())
	assert.Equal(t, 54400, img.Bounds().Dx()*img.Bounds().Dy())

	for y := 0; y < 320; y++ {
		for x := 0; x < 170; x++ {
			if c := img.NRGBAAt(x, y); c != (color.NRGBA{A: 0xFF}) {
				t.Fatalf("pixel (%d,%d) = %v, want black", x, y, c)
			}
		}
	}
}

func TestDecodeChannels(t *testing.T) {
	raw := []byte{
		0x00, 0xF8, // 0xF800
		0xE0, 0x07, // 0x07E0
		0x1F, 0x00, // 0x001F
	}

	img, err := Decode(raw, Geometry{Width: 3, Height: 1})
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 248, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{G: 252, A: 255}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{B: 248, A: 255}, img.NRGBAAt(2, 0))
}

func TestDecodeRowMajor(t *testing.T) {
	geo := Geometry{Width: 2, Height: 3}
	raw := make([]byte, geo.Size())
	for i := 0; i < geo.Pixels(); i++ {
		raw[2*i] = byte(i) // blue channel carries the index
	}

	img, err := Decode(raw, geo)
	require.NoError(t, err)

	for i := 0; i < geo.Pixels(); i++ {
		assert.Equal(t, uint8(i<<3), img.NRGBAAt(i%2, i/2).B, "index %d", i)
	}
}

func TestDecodeSizeMismatch(t *testing.T) {
	for _, n := range []int{0, 100, 101, 108799, 108802} {
		_, err := Decode(make([]byte, n), Default)
		assert.ErrorIs(t, err, ErrSizeMismatch, "len %d", n)
	}
}

func TestDecodeInvalidGeometry(t *testing.T) {
	_, err := Decode(nil, Geometry{Width: 0, Height: 320})
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = Decode(nil, Geometry{Width: 2, Height: -1})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

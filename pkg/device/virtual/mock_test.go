package virtual

import (
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func readAll(t *testing.T, m *Mocker) string {
	buf := make([]byte, 7)
	var out []byte
	for {
		n, err := m.Read(buf)
		require.NoError(t, err)
		if n == 0 {
			return string(out)
		}
		out = append(out, buf[:n]...)
	}
}

func TestMockSnapshot(t *testing.T) {
	screen := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	screen.Set(1, 0, color.NRGBA{R: 255, A: 255})
	screen.Set(0, 1, color.NRGBA{B: 255, A: 255})

	m := Mock(screen, zaptest.NewLogger(t))
	_, err := m.Write([]byte("sn"))
	require.NoError(t, err)
	assert.Empty(t, readAll(t, m))

	_, err = m.Write([]byte("ap\r\n"))
	require.NoError(t, err)

	// column by column: (0,0) (0,1) (1,0) (1,1)
	assert.Equal(t,
		"snap\r\nI (1000) tembed_lvgl: Snapshot 2x2\r\n0000 001f f800 0000 \ntembed> ",
		readAll(t, m))
}

func TestMockSnapshotColumnOrder(t *testing.T) {
	// 3x2 screen, blue channel numbers the pixels row by row
	screen := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			screen.SetNRGBA(x, y, color.NRGBA{B: uint8((y*3 + x) << 3), A: 255})
		}
	}

	m := Mock(screen, zaptest.NewLogger(t))
	_, err := m.Write([]byte("snap\n"))
	require.NoError(t, err)

	assert.Equal(t,
		"snap\r\nI (1000) tembed_lvgl: Snapshot 3x2\r\n0000 0003 0001 0004 0002 0005 \ntembed> ",
		readAll(t, m))
}

func TestMockUnknownCommand(t *testing.T) {
	m := Mock(image.NewNRGBA(image.Rect(0, 0, 1, 1)), zaptest.NewLogger(t))
	_, err := m.Write([]byte("reboot\n"))
	require.NoError(t, err)

	assert.Equal(t, "reboot\r\nUnrecognized command\r\ntembed> ", readAll(t, m))
}

func TestMockClosed(t *testing.T) {
	m := Mock(image.NewNRGBA(image.Rect(0, 0, 1, 1)), zaptest.NewLogger(t))
	require.NoError(t, m.Close())

	_, err := m.Write([]byte("snap\n"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	_, err = m.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}

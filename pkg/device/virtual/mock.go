package virtual

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"tembedsnap/pkg/bitmap"
)

// Mock emulates the firmware console. screen is the picture as seen on the
// display; "snap" dumps it column by column the way the device does.
func Mock(screen image.Image, logger *zap.Logger) *Mocker {
	return &Mocker{screen: screen, l: logger}
}

type Mocker struct {
	sync.Mutex
	screen image.Image
	l      *zap.Logger
	line   bytes.Buffer
	out    bytes.Buffer
	closed bool
	uptime int
}

func (m *Mocker) Write(p []byte) (int, error) {
	m.Lock()
	defer m.Unlock()

	if m.closed {
		return 0, io.ErrClosedPipe
	}

	for _, c := range p {
		switch c {
		case '\r':
		case '\n':
			m.exec(strings.TrimSpace(m.line.String()))
			m.line.Reset()
		default:
			m.line.WriteByte(c)
		}
	}

	return len(p), nil
}

// Read never blocks. An empty buffer yields 0 bytes like a serial read timeout.
func (m *Mocker) Read(p []byte) (int, error) {
	m.Lock()
	defer m.Unlock()

	if m.closed {
		return 0, io.EOF
	}
	if m.out.Len() == 0 {
		return 0, nil
	}

	return m.out.Read(p)
}

func (m *Mocker) Close() error {
	m.Lock()
	defer m.Unlock()

	m.closed = true
	m.l.Info("close")
	return nil
}

func (m *Mocker) exec(cmd string) {
	m.uptime += 1000
	fmt.Fprintf(&m.out, "%s\r\n", cmd)

	switch cmd {
	case "":
	case "snap":
		m.snapshot()
	default:
		m.out.WriteString("Unrecognized command\r\n")
	}

	m.out.WriteString("tembed> ")
	m.l.With(zap.String("cmd", cmd)).Info("exec")
}

func (m *Mocker) snapshot() {
	b := m.screen.Bounds()
	fmt.Fprintf(&m.out, "I (%d) tembed_lvgl: Snapshot %dx%d\r\n", m.uptime, b.Dx(), b.Dy())

	// Row-major over the transposed screen is the firmware's column walk.
	raw := bitmap.Encode(imaging.Transpose(m.screen))
	for i := 0; i+1 < len(raw); i += 2 {
		fmt.Fprintf(&m.out, "%04x ", binary.LittleEndian.Uint16(raw[i:]))
	}

	m.out.WriteString("\n")
}

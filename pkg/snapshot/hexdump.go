package snapshot

import (
	"bytes"
	"encoding/binary"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var headerRe = regexp.MustCompile(`Snapshot (\d+)x(\d+)`)

// ParseHeader reads the "Snapshot WxH" log line the firmware prints before a
// dump. The screen is walked column by column, so the raster geometry is the
// screen size transposed.
func ParseHeader(text []byte) (Geometry, bool) {
	m := headerRe.FindSubmatch(text)
	if m == nil {
		return Geometry{}, false
	}

	w, errW := strconv.Atoi(string(m[1]))
	h, errH := strconv.Atoi(string(m[2]))
	if errW != nil || errH != nil {
		return Geometry{}, false
	}

	return Geometry{Width: h, Height: w}, true
}

// ParseHexDump extracts the console rendering of a snapshot, one "%04x "
// token per pixel on a single line, and packs it into a little-endian raw
// buffer. Echoed commands and log lines around it are skipped.
func ParseHexDump(text []byte, geo Geometry) ([]byte, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}

	var best [][]byte
	for _, line := range bytes.Split(text, []byte("\n")) {
		fields := bytes.Fields(line)
		if len(fields) == 0 {
			continue
		}
		words := lo.Filter(fields, func(f []byte, _ int) bool { return isWord(f) })
		if len(words) == len(fields) && len(words) > len(best) {
			best = words
		}
	}

	if len(best) == 0 {
		return nil, ErrNoDump
	}

	if len(best) != geo.Pixels() {
		return nil, errors.Wrapf(ErrSizeMismatch, "dump has %d pixels, want %d (%s)", len(best), geo.Pixels(), geo)
	}

	raw := make([]byte, geo.Size())
	for i, w := range best {
		v, err := strconv.ParseUint(string(w), 16, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "parse word %q", w)
		}
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(v))
	}

	return raw, nil
}

func isWord(f []byte) bool {
	if len(f) != 4 {
		return false
	}
	for _, c := range f {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

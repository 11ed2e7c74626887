package tembed

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"tembedsnap/pkg/proto"
	"tembedsnap/pkg/snapshot"
)

const (
	CmdSnapshot = "snap"
	// Each pixel is printed as "%04x ".
	bytesPerPixel = 5
)

type Option func(t *Tembed)

// WithProgress renders a receive progress bar to w.
func WithProgress(w io.Writer) Option {
	return func(t *Tembed) {
		t.progress = w
	}
}

func New(port proto.Port, logger *zap.Logger, opts ...Option) *Tembed {
	t := &Tembed{
		port:   port,
		logger: logger,
		chunk:  4096,
		idle:   10 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

type Tembed struct {
	port     proto.Port
	logger   *zap.Logger
	progress io.Writer
	chunk    int
	idle     time.Duration
}

// Snapshot asks the firmware console for a screen dump and returns it as a
// little-endian raw buffer.
func (t *Tembed) Snapshot(ctx context.Context, geo snapshot.Geometry) ([]byte, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}

	if err := t.sendCMD(CmdSnapshot); err != nil {
		return nil, errors.Wrap(err, "send snap command")
	}

	return t.readDump(ctx, geo)
}

func (t *Tembed) readDump(ctx context.Context, geo snapshot.Geometry) ([]byte, error) {
	var bar *progressbar.ProgressBar
	if t.progress != nil {
		bar = progressbar.NewOptions64(
			int64(geo.Pixels()*bytesPerPixel),
			progressbar.OptionSetWriter(t.progress),
			progressbar.OptionSetDescription("receiving snapshot"),
			progressbar.OptionShowBytes(true),
		)
		defer func() {
			_ = bar.Finish()
		}()
	}

	var text bytes.Buffer
	buf := make([]byte, t.chunk)

	for {
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "snapshot incomplete after %d bytes", text.Len())
		default:
		}

		n, err := t.port.Read(buf)
		if n > 0 {
			text.Write(buf[:n])
			if bar != nil {
				_ = bar.Add(n)
			}

			// Only complete lines are parsed; the dump may still be arriving.
			if bytes.IndexByte(buf[:n], '\n') >= 0 {
				lines := text.Bytes()[:bytes.LastIndexByte(text.Bytes(), '\n')+1]
				raw, perr := snapshot.ParseHexDump(lines, geo)
				if perr == nil {
					t.logger.With(zap.Int("received", text.Len()), zap.Stringer("geometry", geo)).Debug("snapshot received")
					return raw, nil
				}
				if errors.Is(perr, snapshot.ErrSizeMismatch) {
					return nil, perr
				}
			}
		}

		if n == 0 && err == nil {
			select {
			case <-ctx.Done():
			case <-time.After(t.idle):
			}
			continue
		}

		if err != nil {
			if err == io.EOF {
				return nil, errors.Wrapf(snapshot.ErrNoDump, "console closed after %d bytes", text.Len())
			}
			return nil, errors.Wrap(err, "read console")
		}
	}
}

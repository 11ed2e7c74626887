package snapshot

import (
	"image"
	"os"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func NewConverter(fs afero.Fs, logger *zap.Logger, opts ...Option) *Converter {
	c := &Converter{
		fs:     fs,
		logger: logger,
		geo:    Default,
		format: FormatRaw,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type Converter struct {
	fs     afero.Fs
	logger *zap.Logger
	geo    Geometry
	format Format
}

type Result struct {
	Input  string
	Output string
	Pixels int
	Bounds image.Rectangle
}

func (c *Converter) Geometry() Geometry {
	return c.geo
}

// Convert reads a dump from input and writes the oriented PNG to output. An
// empty output selects the sibling path of input.
func (c *Converter) Convert(input, output string) (*Result, error) {
	if output == "" {
		output = OutputPath(input)
	}

	bs, err := afero.ReadFile(c.fs, input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", input)
		}
		return nil, errors.Wrapf(err, "read %s", input)
	}

	log := c.logger.With(zap.String("input", input), zap.String("format", c.format.String()))
	log.With(zap.String("size", bytesize.New(float64(len(bs))).String())).Debug("loaded")

	raw := bs
	if c.format == FormatHex {
		if geo, ok := ParseHeader(bs); ok && geo != c.geo {
			log.With(zap.Stringer("header", geo), zap.Stringer("expect", c.geo)).Warn("geometry differs from dump header")
		}
		if raw, err = ParseHexDump(bs, c.geo); err != nil {
			return nil, errors.Wrapf(err, "%s", input)
		}
	}

	img, err := c.Render(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", input)
	}

	if err := c.Save(output, img); err != nil {
		return nil, err
	}

	return &Result{
		Input:  input,
		Output: output,
		Pixels: c.geo.Pixels(),
		Bounds: img.Bounds(),
	}, nil
}

// Render decodes raw and puts it into viewing orientation.
func (c *Converter) Render(raw []byte) (*image.NRGBA, error) {
	img, err := Decode(raw, c.geo)
	if err != nil {
		return nil, err
	}

	return Orient(img), nil
}

func (c *Converter) Save(output string, img image.Image) error {
	if err := WritePNG(c.fs, output, img); err != nil {
		return err
	}

	size := "unknown"
	if fi, err := c.fs.Stat(output); err == nil {
		size = bytesize.New(float64(fi.Size())).String()
	}

	c.logger.With(
		zap.String("output", output),
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
		zap.String("size", size),
	).Info("png saved")

	return nil
}

package snapshot

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/spf13/afero"
)

// writeError keeps the underlying cause while matching ErrWriteFailure.
type writeError struct {
	err error
}

func writeFailure(err error, format string, args ...interface{}) error {
	return &writeError{err: errors.Wrapf(err, format, args...)}
}

func (e *writeError) Error() string {
	return ErrWriteFailure.Error() + ": " + e.err.Error()
}

func (e *writeError) Unwrap() error {
	return e.err
}

func (e *writeError) Is(target error) bool {
	return target == ErrWriteFailure
}

// OutputPath places the PNG next to the input, swapping the extension.
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	if strings.EqualFold(ext, ".png") {
		return input + ".png"
	}
	return strings.TrimSuffix(input, ext) + ".png"
}

// WritePNG encodes img losslessly and moves it into place once complete, so a
// failed write never leaves a truncated file at path.
func WritePNG(fs afero.Fs, path string, img image.Image) error {
	dir, base := filepath.Split(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, xid.New().String()))

	f, err := fs.Create(tmp)
	if err != nil {
		return writeFailure(err, "create %s", tmp)
	}

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		_ = fs.Remove(tmp)
		return writeFailure(err, "encode %s", path)
	}

	if err := f.Close(); err != nil {
		_ = fs.Remove(tmp)
		return writeFailure(err, "close %s", tmp)
	}

	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return writeFailure(err, "rename %s", path)
	}

	return nil
}

// WriteRaw stores a dump as is.
func WriteRaw(fs afero.Fs, path string, raw []byte) error {
	if err := afero.WriteFile(fs, path, raw, 0644); err != nil {
		return writeFailure(err, "write %s", path)
	}
	return nil
}

package tembed

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (t *Tembed) sendCMD(cmd string) error {
	return t.sendBytes([]byte(cmd + "\r\n"))
}

func (t *Tembed) sendBytes(bytes []byte) error {
	var sent int
	var cost time.Duration

	start := time.Now()
	if n, err := t.port.Write(bytes); err != nil {
		return err
	} else if n != len(bytes) {
		return errors.Errorf("short write: %d of %d bytes", n, len(bytes))
	} else {
		sent = n
		cost = time.Since(start)
	}

	t.logger.With(
		zap.Int("sent", sent),
		zap.String("cost", cost.String()),
		zap.ByteString("data", bytes),
	).Debug("transfer")

	return nil
}

package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialNotOpen(t *testing.T) {
	s := NewSerial("ttyACM0")

	_, err := s.Read(make([]byte, 8))
	assert.ErrorIs(t, err, ErrNotOpen)

	_, err = s.Write([]byte("snap\r\n"))
	assert.ErrorIs(t, err, ErrNotOpen)

	assert.NoError(t, s.Close())
}

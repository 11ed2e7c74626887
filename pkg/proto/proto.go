package proto

import (
	"context"
	"io"

	"tembedsnap/pkg/snapshot"
)

// Port is the console link to a device, either a serial line or a mock.
type Port interface {
	io.ReadWriteCloser
}

type Capturer interface {
	Snapshot(ctx context.Context, geo snapshot.Geometry) ([]byte, error)
}

package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureProcess(t *testing.T) {
	if os.Getenv("TEMBEDSNAP_CAPTURE") != "1" {
		t.Skip("helper process")
	}

	args := os.Args
	for i, a := range args {
		if a == "--" {
			args = args[i+1:]
			break
		}
	}
	os.Args = append([]string{"capture"}, args...)
	main()
}

func runCapture(t *testing.T, args ...string) int {
	cmd := exec.Command(os.Args[0], append([]string{"-test.run=^TestCaptureProcess$", "--"}, args...)...)
	cmd.Env = append(os.Environ(), "TEMBEDSNAP_CAPTURE=1")

	out, err := cmd.CombinedOutput()
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}
	require.NoError(t, err, string(out))
	return 0
}

func TestCaptureVirtual(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "snap.raw")

	require.Equal(t, 0, runCapture(t, "--virtual", "--raw", raw))

	fi, err := os.Stat(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(108800), fi.Size())

	_, err = os.Stat(filepath.Join(dir, "snap.png"))
	assert.NoError(t, err)
}

func TestCaptureFailures(t *testing.T) {
	dir := t.TempDir()

	assert.NotEqual(t, 0, runCapture(t, "--serial", "no-such-port-7f3a", "--raw", filepath.Join(dir, "snap.raw")))
	assert.NotEqual(t, 0, runCapture(t, "--virtual", "--raw", filepath.Join(dir, "missing", "snap.raw")))
}

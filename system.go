//go:build linux

package hardening

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ErrNoKernelConfig is returned when no kernel config source for the
// running kernel is available.
var ErrNoKernelConfig = errors.New("no kernel config found")

// configSource describes a kernel config file location.
type configSource struct {
	path       string
	compressed bool
}

// ReadSystemKconfig reads the running kernel's build configuration as one
// text snapshot. It tries sources in priority order:
//  1. /proc/config.gz (requires CONFIG_IKCONFIG_PROC=y)
//  2. /boot/config-$(uname -r)
//  3. /lib/modules/$(uname -r)/config
func ReadSystemKconfig() ([]byte, error) {
	release, err := kernelRelease()
	if err != nil {
		return nil, err
	}

	sources := []configSource{
		{path: "/proc/config.gz", compressed: true},
		{path: "/boot/config-" + release, compressed: false},
		{path: "/lib/modules/" + release + "/config", compressed: false},
	}

	var lastErr error
	for _, src := range sources {
		data, err := readConfigFrom(src)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %w", ErrNoKernelConfig, lastErr)
}

// kernelRelease returns the kernel release string (e.g., "6.17.0-1005-aws").
func kernelRelease() (string, error) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uname.Release[:]), nil
}

// readConfigFrom reads the whole config text from the given source.
func readConfigFrom(src configSource) ([]byte, error) {
	f, err := os.Open(src.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if src.compressed {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		reader = gr
	}

	return io.ReadAll(reader)
}

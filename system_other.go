//go:build !linux

package hardening

import "errors"

// ErrNoKernelConfig is returned when no kernel config source for the
// running kernel is available. On non-Linux platforms it always is.
var ErrNoKernelConfig = errors.New("no kernel config found")

// ReadSystemKconfig reads the running kernel's build configuration.
// On non-Linux platforms there is none to read.
func ReadSystemKconfig() ([]byte, error) {
	return nil, ErrNoKernelConfig
}

//go:build !windows

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// controlReuseAddrPort sets SO_REUSEADDR and, where supported, SO_REUSEPORT
// on the listening socket so multiple mDNS-aware processes (this library,
// a system mdnsd/Avahi) can coexist on port 5353.
func controlReuseAddrPort(_, _ string, c syscall.RawConn) error {
	var opErr error

	err := c.Control(func(fd uintptr) {
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
			opErr = err
			return
		}

		// Older kernels (<3.9 on Linux) lack SO_REUSEPORT; tolerate its
		// absence since SO_REUSEADDR alone is enough to bind.
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil && err != unix.ENOPROTOOPT {
			opErr = err
		}
	})
	if err != nil {
		return err
	}

	return opErr
}

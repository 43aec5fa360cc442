//go:build windows

package transport

import "syscall"

// controlReuseAddrPort is a no-op on Windows: SO_REUSEADDR has different,
// less safe semantics there, and SO_REUSEPORT does not exist.
func controlReuseAddrPort(_, _ string, _ syscall.RawConn) error {
	return nil
}

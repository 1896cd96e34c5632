package utils

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// IsAddrInUse reports whether err comes from binding an address another
// socket already holds.
func IsAddrInUse(err error) bool {
	return errors.Is(err, unix.EADDRINUSE)
}

// IsPermission reports whether err comes from binding a port the process
// may not use.
func IsPermission(err error) bool {
	return errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM)
}

// DescribeBindError wraps a listen error with the likely cause.
func DescribeBindError(addr string, err error) error {
	switch {
	case IsAddrInUse(err):
		return fmt.Errorf("bind %s: address already in use (another server running?): %w", addr, err)
	case IsPermission(err):
		return fmt.Errorf("bind %s: permission denied (privileged port?): %w", addr, err)
	default:
		return fmt.Errorf("bind %s: %w", addr, err)
	}
}

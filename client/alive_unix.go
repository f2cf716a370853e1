//go:build unix

package client

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// peek looks at the socket's receive queue without blocking or consuming it.
func peek(sc syscall.Conn) peekResult {
	rc, err := sc.SyscallConn()
	if err != nil {
		return peekUnsupported
	}

	var (
		n    int
		rerr error
		b    [1]byte
	)
	if err := rc.Read(func(fd uintptr) bool {
		n, _, rerr = unix.Recvfrom(int(fd), b[:], unix.MSG_PEEK|unix.MSG_DONTWAIT)
		return true
	}); err != nil {
		return peekClosed
	}

	switch {
	case rerr == unix.EAGAIN || rerr == unix.EWOULDBLOCK || rerr == unix.EINTR:
		return peekEmpty
	case rerr != nil:
		return peekClosed
	case n == 0:
		return peekClosed
	default:
		return peekPending
	}
}

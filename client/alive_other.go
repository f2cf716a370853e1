//go:build !unix

package client

import "syscall"

func peek(sc syscall.Conn) peekResult {
	return peekUnsupported
}

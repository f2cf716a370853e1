package client

import (
	"crypto/tls"
	"net"
	"syscall"
	"time"
)

// probeTimeout bounds the read used to check connections whose socket can't
// be peeked.
const probeTimeout = time.Millisecond

type peekResult int

const (
	peekUnsupported peekResult = iota
	peekEmpty
	peekPending
	peekClosed
)

// alive reports whether the peer still holds its side of conn open. TCP
// sockets are peeked without consuming data. A TLS connection with pending
// records, or any conn that isn't backed by a socket, falls back to a short
// deadline read through conn so that alerts and session tickets are
// processed; the collector never sends application data.
func alive(conn net.Conn) bool {
	raw := conn
	tlsConn, isTLS := conn.(*tls.Conn)
	if isTLS {
		raw = tlsConn.NetConn()
	}

	sc, ok := raw.(syscall.Conn)
	if !ok {
		return readAlive(conn)
	}
	switch peek(sc) {
	case peekEmpty:
		return true
	case peekClosed:
		return false
	case peekPending:
		if isTLS {
			return readAlive(conn)
		}
		return true
	default:
		return readAlive(conn)
	}
}

// readAlive reads at most one byte from conn with a short deadline. A timeout
// means the peer is still there; EOF or any other error means it is gone.
func readAlive(conn net.Conn) bool {
	if err := conn.SetReadDeadline(time.Now().Add(probeTimeout)); err != nil {
		return false
	}
	var b [1]byte
	_, err := conn.Read(b[:])
	if derr := conn.SetReadDeadline(time.Time{}); derr != nil {
		return false
	}
	if err == nil {
		return true
	}
	if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
		return true
	}
	return false
}

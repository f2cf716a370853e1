package testhelper

import (
	"net"
)

// Pipe returns a MockServer and a client connection to it that was not made
// through DialTimeout.
func Pipe() (*MockServer, net.Conn) {
	s := NewMockServer()
	server, client := net.Pipe()
	s.mu.Lock()
	s.accept(server)
	s.mu.Unlock()
	return s, client
}

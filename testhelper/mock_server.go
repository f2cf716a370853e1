package testhelper

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"sync"
	"time"
)

// Dial records a call to MockServer.DialTimeout.
type Dial struct {
	Network string
	Addr    string
	Timeout time.Duration
}

// MockServer is an in-memory collector. It implements client.Dialer, handing
// out net.Pipe connections and recording everything written to them.
type MockServer struct {
	mu       sync.Mutex
	conns    []net.Conn
	buf      bytes.Buffer
	dials    []Dial
	failNext int
	wg       sync.WaitGroup
}

// NewMockServer returns a new instance of a MockServer
func NewMockServer() *MockServer {
	return &MockServer{}
}

// DialTimeout returns a new net.Pipe client connection
func (s *MockServer) DialTimeout(network, addr string, timeout time.Duration) (net.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dials = append(s.dials, Dial{Network: network, Addr: addr, Timeout: timeout})

	if s.failNext > 0 {
		s.failNext--
		return nil, &net.OpError{
			Op:   "dial-mocktcp",
			Net:  "mocktcp pipe",
			Addr: nil,
			Err:  errors.New("connection failed"),
		}
	}

	server, client := net.Pipe()
	s.accept(server)
	return client, nil
}

func (s *MockServer) accept(server net.Conn) {
	s.conns = append(s.conns, server)
	s.wg.Add(1)
	go s.readLoop(server)
}

func (s *MockServer) readLoop(c net.Conn) {
	defer s.wg.Done()
	b := make([]byte, 1024*64)
	for {
		n, err := c.Read(b)
		if n > 0 {
			s.mu.Lock()
			s.buf.Write(b[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// FailDials causes the next n dials to fail.
func (s *MockServer) FailDials(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// Dials returns all dial attempts made so far.
func (s *MockServer) Dials() []Dial {
	s.mu.Lock()
	defer s.mu.Unlock()
	dials := make([]Dial, len(s.dials))
	copy(dials, s.dials)
	return dials
}

// Hangup closes the server side of every open connection, as a collector
// dropping its clients would.
func (s *MockServer) Hangup() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}

// Received returns all bytes read by the server.
func (s *MockServer) Received() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// WaitLines waits until at least n complete lines have been read, or the
// timeout elapses, and returns the lines read without terminators.
func (s *MockServer) WaitLines(n int, timeout time.Duration) []string {
	deadline := time.Now().Add(timeout)
	for {
		lines := splitLines(s.Received())
		if len(lines) >= n || time.Now().After(deadline) {
			return lines
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	var complete []string
	for _, line := range lines {
		if !strings.HasSuffix(line, "\n") {
			break
		}
		complete = append(complete, strings.TrimSuffix(line, "\n"))
	}
	return complete
}

// Close implements io.Closer
func (s *MockServer) Close() error {
	s.Hangup()
	s.wg.Wait()
	return nil
}

package client

import (
	"crypto/tls"
	"io"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/jeffrom/logentries/config"
	"github.com/jeffrom/logentries/internal"
)

// ErrNotConnected is returned when a write is attempted but no connection
// could be established.
var ErrNotConnected = errors.New("not connected")

// Dialer defines an interface for connecting to servers. It can be used for
// mocking in tests. network is "tcp" or "tls".
type Dialer interface {
	DialTimeout(network, addr string, timeout time.Duration) (net.Conn, error)
}

type netDialer struct {
	keepAlive time.Duration
	tlsConf   *tls.Config
}

func (nd *netDialer) DialTimeout(network, addr string, timeout time.Duration) (net.Conn, error) {
	d := &net.Dialer{Timeout: timeout, KeepAlive: nd.keepAlive}
	if network == networkTLS {
		return tls.DialWithDialer(d, networkTCP, addr, nd.tlsConf)
	}
	return d.Dial(network, addr)
}

func newNetDialer(conf *config.Config) *netDialer {
	keepAlive := conf.KeepAlive
	if !conf.Persistent {
		keepAlive = -1
	}
	return &netDialer{keepAlive: keepAlive, tlsConf: conf.TLSConfig}
}

// Client manages a lazily opened connection to the collector. It is safe for
// concurrent use.
type Client struct {
	conf   *config.Config
	dialer Dialer

	mu    sync.Mutex
	conn  net.Conn
	w     io.Writer
	dials int
}

// New returns a new instance of Client without a net.Conn. No connection is
// attempted until the first write.
func New(conf *config.Config) *Client {
	return &Client{
		conf:   conf,
		dialer: newNetDialer(conf),
	}
}

// SetDialer sets the Dialer used to connect.
func (c *Client) SetDialer(d Dialer) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialer = d
	return c
}

// SetConn sets net.Conn for a client, closing any previous connection.
func (c *Client) SetConn(conn net.Conn) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeConn()
	c.setConn(conn)
	return c
}

func (c *Client) setConn(conn net.Conn) {
	c.conn = conn
	c.w = conn
	if c.conf.Verbose {
		c.w = internal.NewWriteLogger("-> "+conn.RemoteAddr().String(), conn)
	}
}

func (c *Client) closeConn() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.w = nil
	return err
}

// Dials returns the number of connection attempts made.
func (c *Client) Dials() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dials
}

// IsOpen returns true if there is a connection and the peer has not closed
// it.
func (c *Client) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen()
}

func (c *Client) isOpen() bool {
	return c.conn != nil && alive(c.conn)
}

// EnsureOpen connects to the collector if there is no usable connection,
// returning true if a connection is available. Connection failures are not
// returned; they are logged when verbose.
func (c *Client) EnsureOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureOpen()
}

func (c *Client) ensureOpen() bool {
	if c.isOpen() {
		return true
	}
	if c.conn != nil {
		internal.Debugf(c.conf, "%s closed the connection", c.conn.RemoteAddr())
		internal.IgnoreError(c.conf.Verbose, c.closeConn())
	}

	ep := Resolve(c.conf)
	c.dials++
	internal.Debugf(c.conf, "connecting to %s (attempt %d)", ep, c.dials)
	conn, err := c.dialer.DialTimeout(ep.Network(), ep.Addr(), c.conf.ConnectTimeout)
	if err != nil {
		if conn != nil {
			internal.IgnoreError(c.conf.Verbose, conn.Close())
		}
		internal.Debugf(c.conf, "failed to connect to %s: %+v", ep, err)
		return false
	}
	if !alive(conn) {
		internal.Debugf(c.conf, "%s closed the connection after connecting", ep)
		internal.IgnoreError(c.conf.Verbose, conn.Close())
		return false
	}

	c.setConn(conn)
	return true
}

// Write sends p to the collector, connecting first if needed. A failed write
// closes the connection so the next write reconnects. When the configuration
// is not persistent, the connection is closed after every write.
func (c *Client) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ensureOpen() {
		return 0, ErrNotConnected
	}

	if timeout := c.conf.GetWriteTimeout(); timeout > 0 {
		internal.IgnoreError(c.conf.Verbose, c.conn.SetWriteDeadline(time.Now().Add(timeout)))
	}
	n, err := c.w.Write(p)
	if err != nil {
		internal.Debugf(c.conf, "write to %s failed: %+v", c.conn.RemoteAddr(), err)
		internal.IgnoreError(c.conf.Verbose, c.closeConn())
		return n, errors.Wrap(err, "write failed")
	}
	internal.IgnoreError(c.conf.Verbose, c.conn.SetWriteDeadline(time.Time{}))

	if !c.conf.Persistent {
		internal.IgnoreError(c.conf.Verbose, c.closeConn())
	}
	return n, nil
}

// Close closes the connection, if any. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeConn()
}

package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeffrom/logentries/config"
	"github.com/jeffrom/logentries/testhelper"
)

const waitTimeout = time.Second

func newTestClient(t *testing.T, conf *config.Config) (*Client, *testhelper.MockServer) {
	t.Helper()
	server := testhelper.NewMockServer()
	c := New(conf).SetDialer(server)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
		require.NoError(t, server.Close())
	})
	return c, server
}

func TestClientLazyConnect(t *testing.T) {
	conf := config.DefaultTestConfig(testing.Verbose())
	c, server := newTestClient(t, conf)

	require.False(t, c.IsOpen())
	require.Equal(t, 0, c.Dials())
	require.Len(t, server.Dials(), 0)

	require.True(t, c.EnsureOpen())
	require.True(t, c.EnsureOpen())
	require.True(t, c.IsOpen())
	require.Equal(t, 1, c.Dials())

	dials := server.Dials()
	require.Len(t, dials, 1)
	require.Equal(t, "tcp", dials[0].Network)
	require.Equal(t, "api.logentries.com:10000", dials[0].Addr)
	require.Equal(t, conf.ConnectTimeout, dials[0].Timeout)
}

func TestClientDialsResolvedEndpoint(t *testing.T) {
	conf := config.DefaultTestConfig(testing.Verbose())
	conf.TLS = true
	c, server := newTestClient(t, conf)

	require.True(t, c.EnsureOpen())
	dials := server.Dials()
	require.Len(t, dials, 1)
	require.Equal(t, "tls", dials[0].Network)
	require.Equal(t, "api.logentries.com:20000", dials[0].Addr)
}

func TestClientWrite(t *testing.T) {
	conf := config.DefaultTestConfig(testing.Verbose())
	c, server := newTestClient(t, conf)

	for _, line := range []string{"hi\n", "hallo\n", "sup\n"} {
		n, err := c.Write([]byte(line))
		require.NoError(t, err)
		require.Equal(t, len(line), n)
	}

	require.Equal(t, []string{"hi", "hallo", "sup"}, server.WaitLines(3, waitTimeout))
	require.Equal(t, 1, c.Dials())
}

func TestClientWriteDialFailure(t *testing.T) {
	conf := config.DefaultTestConfig(testing.Verbose())
	c, server := newTestClient(t, conf)
	server.FailDials(1)

	n, err := c.Write([]byte("dropped\n"))
	require.Equal(t, ErrNotConnected, err)
	require.Equal(t, 0, n)
	require.False(t, c.IsOpen())

	_, err = c.Write([]byte("delivered\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"delivered"}, server.WaitLines(1, waitTimeout))
	require.Equal(t, 2, c.Dials())
}

func TestClientReconnectsAfterHangup(t *testing.T) {
	conf := config.DefaultTestConfig(testing.Verbose())
	c, server := newTestClient(t, conf)

	_, err := c.Write([]byte("first\n"))
	require.NoError(t, err)
	server.WaitLines(1, waitTimeout)

	server.Hangup()
	require.False(t, c.IsOpen())

	_, err = c.Write([]byte("second\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, server.WaitLines(2, waitTimeout))
	require.Equal(t, 2, c.Dials())
}

func TestClientClose(t *testing.T) {
	conf := config.DefaultTestConfig(testing.Verbose())
	c, server := newTestClient(t, conf)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	require.True(t, c.EnsureOpen())
	require.NoError(t, c.Close())
	require.False(t, c.IsOpen())
	require.NoError(t, c.Close())

	require.True(t, c.EnsureOpen())
	require.Equal(t, 2, c.Dials())
	require.Len(t, server.Dials(), 2)
}

func TestClientNotPersistent(t *testing.T) {
	conf := config.DefaultTestConfig(testing.Verbose())
	conf.Persistent = false
	c, server := newTestClient(t, conf)

	_, err := c.Write([]byte("one\n"))
	require.NoError(t, err)
	require.False(t, c.IsOpen())

	_, err = c.Write([]byte("two\n"))
	require.NoError(t, err)

	require.Equal(t, []string{"one", "two"}, server.WaitLines(2, waitTimeout))
	require.Equal(t, 2, c.Dials())
}

func TestClientSetConn(t *testing.T) {
	conf := config.DefaultTestConfig(testing.Verbose())
	server, clientConn := testhelper.Pipe()
	defer server.Close()
	c := New(conf).SetConn(clientConn)
	defer c.Close()

	require.True(t, c.IsOpen())
	_, err := c.Write([]byte("hi\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"hi"}, server.WaitLines(1, waitTimeout))
	require.Equal(t, 0, c.Dials())
}

func TestClientConcurrentWrites(t *testing.T) {
	conf := config.DefaultTestConfig(testing.Verbose())
	c, server := newTestClient(t, conf)

	const writers = 8
	done := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			_, err := c.Write([]byte("concurrent\n"))
			done <- err
		}()
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-done)
	}

	lines := server.WaitLines(writers, waitTimeout)
	require.Len(t, lines, writers)
	for _, line := range lines {
		require.Equal(t, "concurrent", line)
	}
	require.Equal(t, 1, c.Dials())
}

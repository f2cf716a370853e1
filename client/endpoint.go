package client

import (
	"net"
	"strconv"

	"github.com/jeffrom/logentries/config"
)

const (
	// DefaultHost is the collector's public address.
	DefaultHost = "api.logentries.com"

	// DefaultPort is the collector's plain text token port.
	DefaultPort = 10000

	// DefaultTLSPort is the collector's TLS token port.
	DefaultTLSPort = 20000
)

const (
	networkTCP = "tcp"
	networkTLS = "tls"
)

// Endpoint is a resolved collector address.
type Endpoint struct {
	Host string
	Port int
	TLS  bool
}

// Addr returns the host:port of the endpoint.
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Network returns the network name passed to the Dialer, "tls" or "tcp".
func (e Endpoint) Network() string {
	if e.TLS {
		return networkTLS
	}
	return networkTCP
}

func (e Endpoint) String() string {
	return e.Network() + "://" + e.Addr()
}

// Resolve returns the endpoint to dial for a configuration. The TLS endpoint
// is used only when not sending to a relay; a relay is always dialed in plain
// text at the configured address.
func Resolve(conf *config.Config) Endpoint {
	switch {
	case conf.TLS && !conf.Relay:
		return Endpoint{Host: DefaultHost, Port: DefaultTLSPort, TLS: true}
	case conf.Relay:
		return Endpoint{Host: conf.RelayHost, Port: conf.RelayPort}
	default:
		return Endpoint{Host: DefaultHost, Port: DefaultPort}
	}
}

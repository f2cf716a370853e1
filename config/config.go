package config

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is the cause of all configuration validation errors.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds logger configuration variables
type Config struct {
	// File is the path of a file from which configuration is read.
	File string `json:"config-file"`

	// Verbose prints debugging information.
	Verbose bool `json:"verbose"`

	// Token identifies the log stream to the collector. It is prepended to
	// every line. Required unless Relay is set.
	Token string `json:"token"`

	// TLS connects to the collector's TLS endpoint.
	TLS bool `json:"tls"`

	// Relay sends lines to a local relay instead of the public collector.
	// Lines sent to a relay carry no token.
	Relay bool `json:"relay"`

	// RelayHost is the address of the relay. Required when Relay is set.
	RelayHost string `json:"relay-host"`

	// RelayPort is the port of the relay.
	RelayPort int `json:"relay-port"`

	// Hostname, if set, is added to every record.
	Hostname string `json:"hostname"`

	// Persistent keeps the connection open between records. When false, a
	// connection is dialed for each record and closed after writing it.
	Persistent bool `json:"persistent"`

	// ConnectTimeout defines the time limit for connecting to the collector.
	ConnectTimeout time.Duration `json:"connect-timeout"`

	// WriteTimeout defines the time limit for writing a line. A negative
	// value uses ConnectTimeout.
	WriteTimeout time.Duration `json:"write-timeout"`

	// KeepAlive is the TCP keep-alive period for persistent connections.
	KeepAlive time.Duration `json:"keep-alive"`

	// TLSConfig overrides the default TLS client configuration.
	TLSConfig *tls.Config `json:"-"`
}

// Default is the default logger config
var Default = &Config{
	Verbose:        false,
	RelayPort:      10000,
	Persistent:     true,
	ConnectTimeout: 60 * time.Second,
	WriteTimeout:   -1,
	KeepAlive:      30 * time.Second,
}

// New returns a new default configuration.
func New() *Config {
	conf := &Config{}
	*conf = *Default
	return conf
}

// Validate returns an error pointing to incorrect values for the
// configuration, if any. When Relay is set, the token is cleared.
func (c *Config) Validate() error {
	if c.Relay {
		if c.RelayHost == "" {
			return errors.Wrap(ErrInvalidConfig, "relay host not provided")
		}
		if c.RelayPort <= 0 || c.RelayPort > 65535 {
			return errors.Wrapf(ErrInvalidConfig, "relay port %d out of range", c.RelayPort)
		}
		c.Token = ""
		return nil
	}

	if c.Token == "" {
		return errors.Wrap(ErrInvalidConfig, "token not provided")
	}
	return nil
}

func (c *Config) String() string {
	cp := *c
	if cp.Token != "" {
		cp.Token = "<redacted>"
	}
	return fmt.Sprintf("%+v", cp)
}

// GetWriteTimeout returns the write deadline duration.
func (c *Config) GetWriteTimeout() time.Duration {
	if c.WriteTimeout >= 0 {
		return c.WriteTimeout
	}
	return c.ConnectTimeout
}

// DefaultTestConfig returns a testing configuration
func DefaultTestConfig(verbose bool) *Config {
	c := New()
	c.Verbose = verbose
	c.Token = "2bfbea1e-10c3-4419-bdad-7e6435882e1f"
	c.ConnectTimeout = 100 * time.Millisecond
	c.WriteTimeout = 100 * time.Millisecond
	return c
}

package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, ie LOGENTRIES_TOKEN.
const EnvPrefix = "logentries"

// BindFlags registers the configuration flags on flags and binds them to v.
func BindFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	d := Default

	flags.StringP("config", "c", "", "Load configuration from `FILE`")
	flags.BoolP("verbose", "v", d.Verbose, "print debug output")
	flags.String("token", d.Token, "log stream `TOKEN`")
	flags.Bool("tls", d.TLS, "connect to the TLS endpoint")
	flags.Bool("relay", d.Relay, "send to a local relay instead of the collector")
	flags.String("relay-host", d.RelayHost, "relay `HOST`")
	flags.Int("relay-port", d.RelayPort, "relay `PORT`")
	flags.String("hostname", d.Hostname, "`HOSTNAME` added to each record")
	flags.Bool("persistent", d.Persistent, "keep the connection open between records")
	flags.Duration("connect-timeout", d.ConnectTimeout, "time limit for connecting")
	flags.Duration("write-timeout", d.WriteTimeout, "time limit for writing a record")
	flags.Duration("keep-alive", d.KeepAlive, "TCP keep-alive period")

	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(f.Name, f)
	})
	return errors.Wrap(err, "binding flags")
}

// FromViper builds a validated Config from v. If a config file was set, it
// is read first; environment variables and flags take precedence over it.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	conf := New()
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", file)
		}
		conf.File = file
	}

	conf.Verbose = getBool(v, "verbose", conf.Verbose)
	conf.Token = getString(v, "token", conf.Token)
	conf.TLS = getBool(v, "tls", conf.TLS)
	conf.Relay = getBool(v, "relay", conf.Relay)
	conf.RelayHost = getString(v, "relay-host", conf.RelayHost)
	if v.IsSet("relay-port") {
		conf.RelayPort = v.GetInt("relay-port")
	}
	conf.Hostname = getString(v, "hostname", conf.Hostname)
	conf.Persistent = getBool(v, "persistent", conf.Persistent)
	if v.IsSet("connect-timeout") {
		conf.ConnectTimeout = v.GetDuration("connect-timeout")
	}
	if v.IsSet("write-timeout") {
		conf.WriteTimeout = v.GetDuration("write-timeout")
	}
	if v.IsSet("keep-alive") {
		conf.KeepAlive = v.GetDuration("keep-alive")
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

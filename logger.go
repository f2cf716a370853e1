package logentries

import (
	"bytes"

	"github.com/jeffrom/logentries/client"
	"github.com/jeffrom/logentries/config"
	"github.com/jeffrom/logentries/internal"
	"github.com/jeffrom/logentries/protocol"
)

// Logger writes records to the collector. It is safe for concurrent use.
// Close should be called when the logger is no longer needed.
type Logger struct {
	conf   *config.Config
	client *client.Client
}

// New returns a Logger for a copy of conf. It returns an error if the
// configuration is invalid. No connection is made until the first record is
// logged.
func New(conf *config.Config) (*Logger, error) {
	c := &config.Config{}
	*c = *conf
	if err := c.Validate(); err != nil {
		return nil, err
	}
	internal.Debugf(c, "starting options: %s", c)

	return &Logger{
		conf:   c,
		client: client.New(c),
	}, nil
}

// SetDialer sets the Dialer used to connect to the collector.
func (l *Logger) SetDialer(d client.Dialer) *Logger {
	l.client.SetDialer(d)
	return l
}

// Config returns the logger's configuration. It must not be modified.
func (l *Logger) Config() *config.Config {
	return l.conf
}

// Client returns the logger's connection.
func (l *Logger) Client() *client.Client {
	return l.client
}

// Log writes a record at level. Context maps are merged, later keys winning,
// and added to the record. Delivery failures are dropped. At most one
// connection attempt is made per call.
func (l *Logger) Log(level Level, message string, ctx ...map[string]interface{}) {
	if !l.client.EnsureOpen() {
		internal.Debugf(l.conf, "dropped %s record: %v", level, client.ErrNotConnected)
		return
	}

	line := protocol.Format(level.String(), message, mergeContext(ctx), l.conf.Hostname)
	_, err := l.client.Write(protocol.Line(l.conf.Token, line))
	internal.IgnoreError(l.conf.Verbose, err)
}

func mergeContext(ctx []map[string]interface{}) map[string]interface{} {
	switch len(ctx) {
	case 0:
		return nil
	case 1:
		return ctx[0]
	}

	merged := make(map[string]interface{})
	for _, m := range ctx {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

// Emergency logs a record at LevelEmergency: the system is unusable.
func (l *Logger) Emergency(message string, ctx ...map[string]interface{}) {
	l.Log(LevelEmergency, message, ctx...)
}

// Alert logs a record at LevelAlert: action must be taken immediately.
func (l *Logger) Alert(message string, ctx ...map[string]interface{}) {
	l.Log(LevelAlert, message, ctx...)
}

// Critical logs a record at LevelCritical.
func (l *Logger) Critical(message string, ctx ...map[string]interface{}) {
	l.Log(LevelCritical, message, ctx...)
}

// Error logs a record at LevelError.
func (l *Logger) Error(message string, ctx ...map[string]interface{}) {
	l.Log(LevelError, message, ctx...)
}

// Warning logs a record at LevelWarning.
func (l *Logger) Warning(message string, ctx ...map[string]interface{}) {
	l.Log(LevelWarning, message, ctx...)
}

// Notice logs a record at LevelNotice.
func (l *Logger) Notice(message string, ctx ...map[string]interface{}) {
	l.Log(LevelNotice, message, ctx...)
}

// Info logs a record at LevelInfo.
func (l *Logger) Info(message string, ctx ...map[string]interface{}) {
	l.Log(LevelInfo, message, ctx...)
}

// Debug logs a record at LevelDebug.
func (l *Logger) Debug(message string, ctx ...map[string]interface{}) {
	l.Log(LevelDebug, message, ctx...)
}

// Write implements io.Writer so a Logger can be the output of a log.Logger.
// Each call is logged as one info record without its trailing newline.
func (l *Logger) Write(p []byte) (int, error) {
	l.Info(string(bytes.TrimSuffix(p, []byte("\n"))))
	return len(p), nil
}

// Close closes the connection to the collector.
func (l *Logger) Close() error {
	internal.Debugf(l.conf, "closing logger")
	return l.client.Close()
}

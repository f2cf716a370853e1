package internal

import "io"

const maxTraceLen = 300

type writeLogger struct {
	prefix string
	w      io.Writer
}

func (l *writeLogger) Write(p []byte) (int, error) {
	n, err := l.w.Write(p)
	truncated := n
	var suff string
	if n > maxTraceLen {
		truncated = maxTraceLen
		suff = "..."
	}
	if err != nil {
		debugf("%s (%d) %q%s: %v", l.prefix, len(p), p[0:truncated], suff, err)
	} else {
		debugf("%s (%d) %q%s", l.prefix, len(p), p[0:truncated], suff)
	}
	return n, err
}

// NewWriteLogger returns a writer that behaves like w except that it logs
// each write at debug level, printing the prefix and the data written.
func NewWriteLogger(prefix string, w io.Writer) io.Writer {
	return &writeLogger{prefix, w}
}

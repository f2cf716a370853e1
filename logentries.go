// Package logentries sends log records to a Logentries-style collector using
// its token TCP protocol.
//
// Logger connects lazily on the first record and reconnects on demand when
// the collector drops the connection. Delivery is best effort: records that
// can't be written are dropped without returning an error, so logging never
// interrupts the application.
//
// Records are written one per line, prefixed by the log token. A message that
// is a JSON object has the level, hostname and context merged into it; any
// other message is written as text:
//
//	hostname=web-1 - ERROR - something broke - {"user":"jeff"}
//
// Records can be sent through a local relay instead of the public endpoint,
// in which case no token is sent.
package logentries

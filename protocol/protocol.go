// Package protocol builds the lines written to a Logentries-style collector.
//
// The token protocol is line oriented. Each record is written as:
//
// <token><payload>\n
//
// The token is empty when sending to a relay. The payload is either a JSON
// object or a plain text line. There is no length prefix, so a payload must
// never contain a line terminator; embedded terminators are replaced with a
// single carriage return.
package protocol

import "strings"

// Terminator ends every record on the wire.
const Terminator = "\n"

// lineSafe replaces CRLF and LF sequences with CR.
var lineSafe = strings.NewReplacer("\r\n", "\r", "\n", "\r")

// Armor replaces embedded line terminators in s so that it occupies exactly
// one line on the wire, and appends the record terminator.
func Armor(s string) string {
	return lineSafe.Replace(s) + Terminator
}

// Line returns the bytes to write for a formatted record. The token is
// prepended without a separator.
func Line(token, formatted string) []byte {
	b := make([]byte, 0, len(token)+len(formatted))
	b = append(b, token...)
	b = append(b, formatted...)
	return b
}

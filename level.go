package logentries

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is a record severity. Levels are written to the collector as their
// lower case names.
type Level string

// The eight syslog severities, most severe first.
const (
	LevelEmergency Level = "emergency"
	LevelAlert     Level = "alert"
	LevelCritical  Level = "critical"
	LevelError     Level = "error"
	LevelWarning   Level = "warning"
	LevelNotice    Level = "notice"
	LevelInfo      Level = "info"
	LevelDebug     Level = "debug"
)

// Levels lists all levels, most severe first.
var Levels = []Level{
	LevelEmergency,
	LevelAlert,
	LevelCritical,
	LevelError,
	LevelWarning,
	LevelNotice,
	LevelInfo,
	LevelDebug,
}

var levelAliases = map[string]Level{
	"emerg": LevelEmergency,
	"panic": LevelEmergency,
	"crit":  LevelCritical,
	"err":   LevelError,
	"warn":  LevelWarning,
}

func (l Level) String() string {
	return string(l)
}

// Valid returns true if l is one of the eight levels.
func (l Level) Valid() bool {
	for _, lvl := range Levels {
		if l == lvl {
			return true
		}
	}
	return false
}

// ParseLevel returns the level named by s. It is case insensitive and accepts
// the common short forms, ie "warn" and "crit".
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if lvl := Level(name); lvl.Valid() {
		return lvl, nil
	}
	if lvl, ok := levelAliases[name]; ok {
		return lvl, nil
	}
	return "", errors.Errorf("unknown level: %q", s)
}

package logentries

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/jeffrom/logentries/protocol"
)

// HandlerOptions configures a slog Handler.
type HandlerOptions struct {
	// Level is the minimum level logged. Defaults to slog.LevelInfo.
	Level slog.Leveler

	// AddSource adds a "source" key with the file:line of the log call.
	AddSource bool
}

// Handler is a slog.Handler that writes each record to a Logger as a JSON
// object message.
type Handler struct {
	l    *Logger
	opts HandlerOptions
	goas []groupOrAttrs
}

type groupOrAttrs struct {
	group string
	attrs []slog.Attr
}

var _ slog.Handler = (*Handler)(nil)

// Handler returns a slog.Handler writing to l. opts may be nil.
func (l *Logger) Handler(opts *HandlerOptions) *Handler {
	h := &Handler{l: l}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

// SlogLevel maps a slog level to a Level. Levels above slog.LevelError are
// critical.
func SlogLevel(level slog.Level) Level {
	switch {
	case level > slog.LevelError:
		return LevelCritical
	case level >= slog.LevelError:
		return LevelError
	case level >= slog.LevelWarn:
		return LevelWarning
	case level >= slog.LevelInfo:
		return LevelInfo
	default:
		return LevelDebug
	}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	obj := make(map[string]interface{})
	if !r.Time.IsZero() {
		obj[slog.TimeKey] = r.Time.Format(time.RFC3339Nano)
	}
	obj[slog.MessageKey] = r.Message
	if h.opts.AddSource && r.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := fs.Next()
		obj[slog.SourceKey] = fmt.Sprintf("%s:%d", f.File, f.Line)
	}

	var path []string
	for _, goa := range h.goas {
		if goa.group != "" {
			path = append(path, goa.group)
			continue
		}
		addAttrs(obj, path, goa.attrs)
	}

	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	addAttrs(obj, path, attrs)

	s, err := protocol.Encode(obj)
	if err != nil {
		return err
	}
	h.l.Log(SlogLevel(r.Level), s)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.with(groupOrAttrs{attrs: attrs})
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(groupOrAttrs{group: name})
}

func (h *Handler) with(goa groupOrAttrs) *Handler {
	h2 := *h
	h2.goas = make([]groupOrAttrs, len(h.goas)+1)
	copy(h2.goas, h.goas)
	h2.goas[len(h.goas)] = goa
	return &h2
}

// addAttrs adds attrs to the object nested at path, creating intermediate
// objects only when there is something to add.
func addAttrs(obj map[string]interface{}, path []string, attrs []slog.Attr) {
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			continue
		}
		if a.Value.Kind() == slog.KindGroup {
			group := a.Value.Group()
			if len(group) == 0 {
				continue
			}
			if a.Key == "" {
				addAttrs(obj, path, group)
			} else {
				addAttrs(obj, append(path[:len(path):len(path)], a.Key), group)
			}
			continue
		}
		nested(obj, path)[a.Key] = attrValue(a.Value)
	}
}

func nested(obj map[string]interface{}, path []string) map[string]interface{} {
	for _, key := range path {
		child, ok := obj[key].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			obj[key] = child
		}
		obj = child
	}
	return obj
}

func attrValue(v slog.Value) interface{} {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		if _, err := protocol.Encode(v.Any()); err != nil {
			return v.String()
		}
	}
	return v.Any()
}

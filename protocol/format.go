package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/valyala/fastjson"
)

var parserPool fastjson.ParserPool

// IsJSONObject returns true if s parses as JSON and the top level value is an
// object. Arrays and scalars are not objects.
func IsJSONObject(s string) bool {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.Parse(s)
	if err != nil {
		return false
	}
	return v.Type() == fastjson.TypeObject
}

// Format returns a single armored line for a record.
//
// If message is a JSON object, hostname, level and context are merged into
// it under the "hostname", "level" and "context" keys. Otherwise the line is
// built as text:
//
// [hostname=<hostname> - ]<LEVEL> - <message>[ - <context as JSON>]
func Format(level, message string, ctx map[string]interface{}, hostname string) string {
	if IsJSONObject(message) {
		if s, err := formatJSON(level, message, ctx, hostname); err == nil {
			return Armor(s)
		}
	}
	return Armor(formatText(level, message, ctx, hostname))
}

// formatJSON merges the record metadata into message. Keys already present
// are replaced in place and new keys are appended, so the message's own key
// order is kept.
func formatJSON(level, message string, ctx map[string]interface{}, hostname string) (string, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)
	v, err := p.Parse(message)
	if err != nil {
		return "", err
	}
	obj, err := v.Object()
	if err != nil {
		return "", err
	}

	meta := make(map[string]interface{}, 3)
	if hostname != "" {
		meta["hostname"] = hostname
	}
	meta["level"] = level
	if len(ctx) > 0 {
		meta["context"] = encodableContext(ctx)
	}
	s, err := Encode(meta)
	if err != nil {
		return "", err
	}
	mp := parserPool.Get()
	defer parserPool.Put(mp)
	mv, err := mp.Parse(s)
	if err != nil {
		return "", err
	}

	for _, key := range metaKeys {
		if val := mv.Get(key); val != nil {
			obj.Set(key, val)
		}
	}

	b := v.MarshalTo(nil)
	if err := fastjson.ValidateBytes(b); err != nil {
		return "", err
	}
	return string(b), nil
}

var metaKeys = []string{"hostname", "level", "context"}

func formatText(level, message string, ctx map[string]interface{}, hostname string) string {
	var b strings.Builder
	if hostname != "" {
		b.WriteString("hostname=")
		b.WriteString(hostname)
		b.WriteString(" - ")
	}
	b.WriteString(strings.ToUpper(level))
	b.WriteString(" - ")
	b.WriteString(message)

	if len(ctx) > 0 {
		if s, err := Encode(encodableContext(ctx)); err == nil {
			b.WriteString(" - ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// Encode marshals v as JSON without HTML escaping or a trailing newline.
func Encode(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// encodableContext returns ctx, replacing values that can't be marshaled
// with their default string representation.
func encodableContext(ctx map[string]interface{}) map[string]interface{} {
	if _, err := json.Marshal(ctx); err == nil {
		return ctx
	}

	safe := make(map[string]interface{}, len(ctx))
	for k, v := range ctx {
		if _, err := json.Marshal(v); err != nil {
			safe[k] = fmt.Sprintf("%v", v)
			continue
		}
		safe[k] = v
	}
	return safe
}

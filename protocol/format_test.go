package protocol

import (
	"encoding/json"
	"flag"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeffrom/logentries/testhelper"
)

func TestMain(m *testing.M) {
	// each test module must define this flag and pass its value to the
	// testhelper module.
	flag.BoolVar(&testhelper.Golden, "golden", false, "write the golden file for this module")
	flag.Parse()
	os.Exit(m.Run())
}

func TestIsJSONObject(t *testing.T) {
	tests := []struct {
		in       string
		expected bool
	}{
		{`{"a":1}`, true},
		{` { "a" : [1, 2] } `, true},
		{`{}`, true},
		{`[1,2,3]`, false},
		{`"a string"`, false},
		{`12`, false},
		{`null`, false},
		{`true`, false},
		{`{"a":1`, false},
		{`{"a":1} trailing`, false},
		{`hello`, false},
		{``, false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, IsJSONObject(tt.in), "IsJSONObject(%q)", tt.in)
	}
}

func TestFormatJSON(t *testing.T) {
	out := Format("error", `{"a":1}`, nil, "")
	require.True(t, strings.HasSuffix(out, "\n"))
	require.JSONEq(t, `{"a":1,"level":"error"}`, strings.TrimSuffix(out, "\n"))
	require.Equal(t, "{\"a\":1,\"level\":\"error\"}\n", out)
}

func TestFormatJSONHostnameAndContext(t *testing.T) {
	out := Format("warning", `{"msg":"slow query","ms":1530.25}`, map[string]interface{}{
		"table": "users",
	}, "db-2")

	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &obj))
	require.Equal(t, "db-2", obj["hostname"])
	require.Equal(t, "warning", obj["level"])
	require.Equal(t, "slow query", obj["msg"])
	require.Equal(t, 1530.25, obj["ms"])
	require.Equal(t, map[string]interface{}{"table": "users"}, obj["context"])
}

func TestFormatJSONOverwritesReservedKeys(t *testing.T) {
	out := Format("info", `{"level":"trace","hostname":"spoofed","context":"x"}`, nil, "real")
	require.Equal(t, "{\"level\":\"info\",\"hostname\":\"real\",\"context\":\"x\"}\n", out)
}

func TestFormatJSONKeepsKeyOrder(t *testing.T) {
	out := Format("info", `{"z":1,"a":{"y":"<b>","x":[1,2]},"m":null}`, map[string]interface{}{"k": "v"}, "h")
	require.Equal(t, "{\"z\":1,\"a\":{\"y\":\"<b>\",\"x\":[1,2]},\"m\":null,\"hostname\":\"h\",\"level\":\"info\",\"context\":{\"k\":\"v\"}}\n", out)
}

func TestFormatJSONKeepsEscapes(t *testing.T) {
	out := Format("info", `{"msg":"line\nbreak \"quoted\" \u00e9"}`, nil, "")
	require.Equal(t, "{\"msg\":\"line\\nbreak \\\"quoted\\\" \\u00e9\",\"level\":\"info\"}\n", out)
	require.Equal(t, 1, strings.Count(out, "\n"))
}

func TestFormatJSONPreservesLargeNumbers(t *testing.T) {
	out := Format("info", `{"id":9007199254740993}`, nil, "")
	require.Equal(t, "{\"id\":9007199254740993,\"level\":\"info\"}\n", out)
}

func TestFormatJSONGolden(t *testing.T) {
	out := Format("error", `{"msg":"disk full","path":"/var"}`, map[string]interface{}{
		"attempt": 3,
	}, "web-1")
	testhelper.CheckGoldenFile(t, "json.context", []byte(out))
}

func TestFormatText(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		message  string
		ctx      map[string]interface{}
		hostname string
		expected string
	}{
		{
			name:     "plain",
			level:    "info",
			message:  "hello",
			expected: "INFO - hello\n",
		},
		{
			name:     "hostname",
			level:    "info",
			message:  "hello",
			hostname: "host1",
			expected: "hostname=host1 - INFO - hello\n",
		},
		{
			name:     "context",
			level:    "notice",
			message:  "signed in",
			ctx:      map[string]interface{}{"user": "jeff"},
			expected: "NOTICE - signed in - {\"user\":\"jeff\"}\n",
		},
		{
			name:     "empty context",
			level:    "alert",
			message:  "hello",
			ctx:      map[string]interface{}{},
			expected: "ALERT - hello\n",
		},
		{
			name:     "json array",
			level:    "info",
			message:  "[1,2,3]",
			expected: "INFO - [1,2,3]\n",
		},
		{
			name:     "json scalar",
			level:    "debug",
			message:  `"quoted"`,
			expected: "DEBUG - \"quoted\"\n",
		},
		{
			name:     "malformed json",
			level:    "error",
			message:  `{"a":`,
			expected: "ERROR - {\"a\":\n",
		},
		{
			name:     "html in context",
			level:    "info",
			message:  "tag",
			ctx:      map[string]interface{}{"html": "<b>&</b>"},
			expected: "INFO - tag - {\"html\":\"<b>&</b>\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Format(tt.level, tt.message, tt.ctx, tt.hostname))
		})
	}
}

func TestFormatLineSafety(t *testing.T) {
	out := Format("debug", "hello\nworld", nil, "")
	require.Equal(t, "DEBUG - hello\rworld\n", out)
	require.Equal(t, 1, strings.Count(out, "\n"))
	require.True(t, strings.HasSuffix(out, "\n"))

	out = Format("debug", "windows\r\nline", nil, "")
	require.Equal(t, "DEBUG - windows\rline\n", out)

	for _, line := range testhelper.BenjaminLines {
		out := Format("info", line, map[string]interface{}{"note": "a\nb"}, "h")
		require.Equal(t, 1, strings.Count(out, "\n"), "%q", out)
		require.True(t, strings.HasSuffix(out, "\n"))
	}
}

func TestFormatTextGolden(t *testing.T) {
	out := Format("debug", "hello\nworld\r\nagain", map[string]interface{}{
		"user": "jeff",
		"id":   7,
	}, "web-1")
	testhelper.CheckGoldenFile(t, "text.multiline", []byte(out))
}

func TestFormatUnencodableContext(t *testing.T) {
	ch := make(chan int)
	out := Format("info", "hello", map[string]interface{}{
		"ok": 1,
		"ch": ch,
	}, "")
	require.True(t, strings.HasPrefix(out, "INFO - hello - {"), out)
	require.Contains(t, out, `"ok":1`)
	require.Contains(t, out, `"ch":"0x`)
}

package kvfile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251215-go-pkg-envexp/pkg/envexp"
	"github.com/lwmacct/251215-go-pkg-envexp/pkg/kvfile"
)

func TestParse_YAML(t *testing.T) {
	content := `
Z_LAST: first
PORT: 8080
DEBUG: true
EMPTY:
URL: http://${HOST}:${PORT}
QUOTED: 'pas\$word'
`
	set, err := kvfile.Parse("vars.yaml", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, []string{"Z_LAST", "PORT", "DEBUG", "EMPTY", "URL", "QUOTED"}, set.Keys())
	assert.Equal(t, map[string]string{
		"Z_LAST": "first",
		"PORT":   "8080",
		"DEBUG":  "true",
		"EMPTY":  "",
		"URL":    "http://${HOST}:${PORT}",
		"QUOTED": `pas\$word`,
	}, set.Map())
}

func TestParse_JSON(t *testing.T) {
	content := `{"B": "${A}", "A": 1.5, "ON": false, "NONE": null}`

	set, err := kvfile.Parse("vars.JSON", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A", "ON", "NONE"}, set.Keys())
	assert.Equal(t, map[string]string{"B": "${A}", "A": "1.5", "ON": "false", "NONE": ""}, set.Map())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		notFlat bool
	}{
		{name: "nested yaml", path: "a.yaml", content: "a:\n  b: c\n", notFlat: true},
		{name: "yaml list value", path: "a.yaml", content: "a: [1, 2]\n", notFlat: true},
		{name: "yaml root list", path: "a.yaml", content: "- a\n- b\n"},
		{name: "nested json", path: "a.json", content: `{"a": {"b": "c"}}`, notFlat: true},
		{name: "json root array", path: "a.json", content: `["a"]`},
		{name: "broken json", path: "a.json", content: `{"a": `},
		{name: "json trailing text", path: "a.json", content: `{"a": "1"} junk`},
		{name: "json second object", path: "a.json", content: `{"a": "1"}{"b": "2"}`},
		{name: "yaml second document", path: "a.yaml", content: "a: 1\n---\nb: 2\n"},
		{name: "yaml sequence key", path: "a.yaml", content: "? [a, b]\n: 1\n"},
		{name: "yaml mapping key", path: "a.yaml", content: "? {a: b}\n: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := kvfile.Parse(tt.path, []byte(tt.content))
			require.Error(t, err)
			if tt.notFlat {
				assert.ErrorIs(t, err, kvfile.ErrNotFlat)
			}
		})
	}
}

func TestParse_TrailingWhitespace(t *testing.T) {
	set, err := kvfile.Parse("a.json", []byte("{\"a\": \"1\"}\n\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1"}, set.Map())

	set, err = kvfile.Parse("a.yaml", []byte("---\na: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1"}, set.Map())
}

func TestParse_Empty(t *testing.T) {
	for _, path := range []string{"a.yaml", "a.json"} {
		set, err := kvfile.Parse(path, nil)
		require.NoError(t, err)
		assert.Zero(t, set.Len())
	}
}

func TestLoad_MergesInOrder(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	override := filepath.Join(dir, "override.json")
	require.NoError(t, os.WriteFile(base, []byte("A: 1\nB: 2\n"), 0o600))
	require.NoError(t, os.WriteFile(override, []byte(`{"C": "3", "A": "one"}`), 0o600))

	set, err := kvfile.Load(base, override)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, set.Keys())
	assert.Equal(t, map[string]string{"A": "one", "B": "2", "C": "3"}, set.Map())

	_, err = kvfile.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestParseAssignments(t *testing.T) {
	set, err := kvfile.ParseAssignments([]string{"A=1", "B=x=y", "C="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y", "C": ""}, set.Map())

	_, err = kvfile.ParseAssignments([]string{"NOEQUALS"})
	require.Error(t, err)
	_, err = kvfile.ParseAssignments([]string{"=value"})
	require.Error(t, err)
}

func TestWrite(t *testing.T) {
	set := envexp.NewSet("B", "it's", "A", "1")

	tests := []struct {
		format kvfile.Format
		want   string
	}{
		{format: kvfile.FormatEnv, want: "B='it'\\''s'\nA='1'\n"},
		{format: kvfile.FormatJSON, want: "{\n  \"B\": \"it's\",\n  \"A\": \"1\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, kvfile.Write(&buf, set, tt.format))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWrite_YAMLKeepsOrderAndStrings(t *testing.T) {
	set := envexp.NewSet("B", "true", "A", "1", "C", "plain")

	var buf bytes.Buffer
	require.NoError(t, kvfile.Write(&buf, set, kvfile.FormatYAML))

	parsed, err := kvfile.Parse("out.yaml", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, set.Keys(), parsed.Keys())
	assert.Equal(t, set.Map(), parsed.Map())
}

func TestWrite_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, kvfile.Write(&buf, envexp.NewSet(), kvfile.FormatJSON))
	assert.Equal(t, "{}\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	f, err := kvfile.ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, kvfile.FormatYAML, f)

	f, err = kvfile.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, kvfile.FormatEnv, f)

	_, err = kvfile.ParseFormat("toml")
	require.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellemenno/loomtasks/internal/errors"
)

func TestReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loom.config")
	content := `{"sdk_version": "sprint34", "display": {"width": 640, "title": "Foo"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := ReadJSON(path)
	require.NoError(t, err)

	sdk, ok := doc.GetString("sdk_version")
	assert.True(t, ok)
	assert.Equal(t, "sprint34", sdk)

	width, ok := doc.GetString("display.width")
	assert.True(t, ok)
	assert.Equal(t, "640", width)
}

func TestReadJSON_Null(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loom.config")
	require.NoError(t, os.WriteFile(path, []byte("null\n"), 0o644))

	doc, err := ReadJSON(path)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Empty(t, doc)
	assert.NoError(t, doc.Set(KeySDKVersion, "sprint34"))
}

func TestReadJSON_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadJSON(filepath.Join(dir, "missing.config"))
	assert.True(t, errors.Is(err, errors.ErrConfigMissing), "got %v", err)

	bad := filepath.Join(dir, "bad.config")
	require.NoError(t, os.WriteFile(bad, []byte(`{"sdk_version": `), 0o644))
	_, err = ReadJSON(bad)
	assert.True(t, errors.Is(err, errors.ErrConfigParse), "got %v", err)

	list := filepath.Join(dir, "list.config")
	require.NoError(t, os.WriteFile(list, []byte(`["not", "an", "object"]`), 0o644))
	_, err = ReadJSON(list)
	assert.True(t, errors.Is(err, errors.ErrConfigParse), "got %v", err)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loom.config")
	doc := Document{"sdk_version": "sprint34", "display": map[string]any{"width": 640}}

	require.NoError(t, WriteJSON(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "{\n  \"display\": {\n    \"width\": 640\n  },\n  \"sdk_version\": \"sprint34\"\n}\n"
	assert.Equal(t, want, string(data))

	back, err := ReadJSON(path)
	require.NoError(t, err)
	sdk, _ := back.GetString("sdk_version")
	assert.Equal(t, "sprint34", sdk)
}

func TestReadYAMLOrDefault(t *testing.T) {
	dir := t.TempDir()

	doc, err := ReadYAMLOrDefault(filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Empty(t, doc)

	empty := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	doc, err = ReadYAMLOrDefault(empty)
	require.NoError(t, err)
	assert.Empty(t, doc)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("a: [1, 2\n"), 0o644))
	_, err = ReadYAMLOrDefault(bad)
	assert.True(t, errors.Is(err, errors.ErrConfigParse), "got %v", err)
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".loomtasks.yml")
	doc := Document{"lib_name": "Foo"}
	require.NoError(t, doc.Set("tests.verbose", true))

	require.NoError(t, WriteYAML(path, doc))

	back, err := ReadYAMLOrDefault(path)
	require.NoError(t, err)
	v, ok := back.Get("tests.verbose")
	assert.True(t, ok)
	assert.Equal(t, true, v)
}

func TestEncode(t *testing.T) {
	doc := Document{
		"sdk_version": "sprint34",
		"unused":      nil,
		"display":     map[string]any{"width": 640},
	}

	out, err := Encode(doc, FormatTOML)
	require.NoError(t, err)
	assert.Regexp(t, `sdk_version = ['"]sprint34['"]`, string(out))
	assert.Contains(t, string(out), "[display]")
	assert.Contains(t, string(out), "width = 640")
	assert.NotContains(t, string(out), "unused")

	out, err = Encode(doc, FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(out), "sdk_version: sprint34")

	out, err = Encode(doc, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"sdk_version": "sprint34"`)

	_, err = Encode(doc, "ini")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "yaml", "toml"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

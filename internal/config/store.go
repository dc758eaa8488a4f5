package config

import (
	"bytes"
	"encoding/json"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/pkg/fileutil"
)

// Format is a serialization format for documents.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	}
	return "", errors.Newf("unknown format %q (want json, yaml or toml)", s)
}

// ReadJSON decodes the JSON document at path. A missing file yields
// ErrConfigMissing and malformed content ErrConfigParse.
func ReadJSON(path string) (Document, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrConfigMissing, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigParse, "%s: %v", path, err)
	}
	// A bare null decodes to a nil map.
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// WriteJSON writes doc as two-space indented JSON with a trailing newline.
func WriteJSON(path string, doc Document) error {
	if err := fileutil.AtomicWriteJSON(path, doc); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// ReadYAMLOrDefault decodes the YAML document at path. A missing or empty
// file yields an empty document.
func ReadYAMLOrDefault(path string) (Document, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	doc := Document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigParse, "%s: %v", path, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// WriteYAML writes doc as YAML.
func WriteYAML(path string, doc Document) error {
	if err := fileutil.AtomicWriteYAML(path, doc); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Encode renders doc in the given format.
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return fileutil.MarshalJSON(doc)
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		return EncodeTOML(doc)
	}
	return nil, errors.Newf("unknown format %q", format)
}

// EncodeTOML renders doc as TOML. Null values have no TOML form and are
// dropped.
func EncodeTOML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(withoutNulls(doc)); err != nil {
		return nil, errors.Wrap(err, "encoding toml")
	}
	return buf.Bytes(), nil
}

func withoutNulls(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch tv := v.(type) {
		case nil:
			continue
		case map[string]any:
			out[k] = withoutNulls(tv)
		case []any:
			items := make([]any, 0, len(tv))
			for _, item := range tv {
				if item == nil {
					continue
				}
				if child, ok := item.(map[string]any); ok {
					item = withoutNulls(child)
				}
				items = append(items, item)
			}
			out[k] = items
		default:
			out[k] = v
		}
	}
	return out
}

package document

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToJSON pretty-prints v with two-space indentation. It never fails: when v
// cannot be encoded a warning is logged and "{}" is returned.
func ToJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Warn("JSON encoding failed, emitting empty object", "error", err)
		return "{}"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// ToYAML encodes v as a YAML document. Like ToJSON it falls back to "{}".
func ToYAML(v any) string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		slog.Warn("YAML encoding failed, emitting empty object", "error", err)
		return "{}"
	}
	if err := enc.Close(); err != nil {
		slog.Warn("YAML encoding failed, emitting empty object", "error", err)
		return "{}"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

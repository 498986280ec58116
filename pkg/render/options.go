package render

import (
	"os"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

const DefaultIndent = 2

type Options struct {
	Format            string `yaml:"option-format,omitempty"`
	Indent            int    `yaml:"option-indent,omitempty"`
	IncludeSpans      bool   `yaml:"option-include-spans,omitempty"`
	TrimTokenOnOutput int    `yaml:"option-trim-token-on-output,omitempty"`
}

func DefaultOptions() *Options {
	return &Options{Format: "TEXT", Indent: DefaultIndent}
}

// LoadOptions reads options from a YAML file. Settings the file leaves out
// keep their defaults.
func LoadOptions(filename string) (*Options, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Errorf("reading options %s: %w", filename, err)
	}
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, errors.Errorf("parsing options %s: %w", filename, err)
	}
	if opts.Indent < 0 {
		return nil, errors.Errorf("option-indent must not be negative, got %d", opts.Indent)
	}
	return opts, nil
}

func (o *Options) indent() int {
	if o == nil || o.Indent <= 0 {
		return DefaultIndent
	}
	return o.Indent
}

func (o *Options) trim() int {
	if o == nil {
		return 0
	}
	return o.TrimTokenOnOutput
}

func (o *Options) spans() bool {
	return o != nil && o.IncludeSpans
}

// TrimValue shortens value to at most trimLength runes, ending with an
// ellipsis, for display. A trimLength of zero leaves value untouched.
func TrimValue(value string, trimLength int) string {
	if trimLength <= 0 || utf8.RuneCountInString(value) <= trimLength {
		return value
	}
	runes := []rune(value)
	if trimLength >= 2 {
		return string(runes[:trimLength-1]) + "…"
	}
	return string(runes[:trimLength])
}

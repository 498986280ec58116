// Package render turns syntax trees into the supported output formats. Every
// format is a walker.Visitor driven by the same traversal.
package render

import (
	"fmt"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/spicery/rusty-ast/pkg/document"
	"github.com/spicery/rusty-ast/pkg/syntax"
	"github.com/spicery/rusty-ast/pkg/walker"
)

// Func writes file to output in one format.
type Func func(file *syntax.File, output io.Writer, options *Options) error

var Formats = []string{"TEXT", "JSON", "YAML", "ASCIITREE", "DOT"}

func PickRenderer(format string) (Func, error) {
	switch strings.ToUpper(format) {
	case "", "TEXT":
		return RenderText, nil
	case "JSON":
		return writeJSON, nil
	case "YAML":
		return writeYAML, nil
	case "ASCIITREE":
		return RenderAsciiTree, nil
	case "DOT":
		return RenderDOT, nil
	}
	return nil, errors.Errorf("unknown format %q, expected one of %s", format, strings.Join(Formats, ", "))
}

// RenderText writes the indented human-readable outline of file.
func RenderText(file *syntax.File, output io.Writer, options *Options) error {
	r := NewTextRenderer(output, options)
	walker.Walk(file, r)
	return r.Err()
}

// Build produces the structured document for file.
func Build(file *syntax.File, options *Options) *document.Object {
	b := NewJSONBuilder(options)
	walker.Walk(file, b)
	return b.Document()
}

// RenderJSON returns the pretty-printed JSON document for file. It never
// fails; see document.ToJSON.
func RenderJSON(file *syntax.File, options *Options) string {
	return document.ToJSON(Build(file, options))
}

func RenderYAML(file *syntax.File, options *Options) string {
	return document.ToYAML(Build(file, options))
}

func writeJSON(file *syntax.File, output io.Writer, options *Options) error {
	_, err := fmt.Fprintln(output, RenderJSON(file, options))
	return err
}

func writeYAML(file *syntax.File, output io.Writer, options *Options) error {
	_, err := fmt.Fprintln(output, RenderYAML(file, options))
	return err
}

func RenderAsciiTree(file *syntax.File, output io.Writer, options *Options) error {
	b := NewAsciiTreeBuilder(options)
	walker.Walk(file, b)
	_, err := fmt.Fprintln(output, b.String())
	return err
}

func RenderDOT(file *syntax.File, output io.Writer, options *Options) error {
	r := NewDOTRenderer(output, options)
	r.Begin()
	walker.Walk(file, r)
	return r.End()
}

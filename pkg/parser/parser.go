// Package parser turns Rust source into the syntax model. It is backed by the
// tree-sitter Rust grammar; the concrete syntax tree never leaves the package.
package parser

import (
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	"gitlab.com/tozd/go/errors"

	"github.com/spicery/rusty-ast/pkg/syntax"
)

// Parser wraps a tree-sitter parser configured with the Rust grammar. A
// Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser constructs a parser with the Rust language loaded.
func NewParser() (*Parser, error) {
	p := sitter.NewParser()
	if err := p.SetLanguage(sitter.NewLanguage(rust.Language())); err != nil {
		p.Close()
		return nil, errors.Errorf("loading rust grammar: %w", err)
	}
	return &Parser{parser: p}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
	p.parser = nil
}

// Parse converts one compilation unit. Source containing syntax errors
// yields a *ParseError listing every error and missing token found.
func (p *Parser) Parse(source []byte) (*syntax.File, error) {
	if p == nil || p.parser == nil {
		return nil, errors.New("parser: closed or nil parser")
	}

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("parser: no syntax tree produced")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "source_file" {
		return nil, errors.New("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, collectIssues(root, source)
	}

	c := converter{source: source}
	return c.file(root), nil
}

// Parse converts source with a throwaway parser.
func Parse(source []byte) (*syntax.File, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Parse(source)
}

func ParseString(source string) (*syntax.File, error) {
	return Parse([]byte(source))
}

// ParseFile reads and parses the file at path. Read failures wrap the
// underlying fs error; syntax failures wrap a *ParseError.
func ParseFile(path string) (*syntax.File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	file, err := Parse(source)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}
	return file, nil
}

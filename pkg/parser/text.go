package parser

import (
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/spicery/rusty-ast/pkg/syntax"
)

func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	start := int(n.StartByte())
	end := int(n.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

func spanOf(n *sitter.Node) syntax.Span {
	if n == nil {
		return syntax.Span{}
	}
	start := n.StartPosition()
	end := n.EndPosition()
	return syntax.Span{
		StartLine:   int(start.Row) + 1,
		StartColumn: int(start.Column) + 1,
		EndLine:     int(end.Row) + 1,
		EndColumn:   int(end.Column) + 1,
	}
}

// squash collapses every whitespace run to a single space.
func squash(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func isComment(kind string) bool {
	return kind == "line_comment" || kind == "block_comment"
}

// Literals are copied verbatim so their inner whitespace survives.
var atomicKinds = map[string]bool{
	"string_literal":     true,
	"raw_string_literal": true,
	"char_literal":       true,
}

// reconstruct rebuilds the source text of nodes token by token. Adjacent
// tokens stay adjacent, any gap (whitespace or a dropped comment) becomes a
// single space. Only a multi-line literal can break the result across lines.
func reconstruct(source []byte, nodes ...*sitter.Node) string {
	var sb strings.Builder
	last := -1
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil || isComment(n.Kind()) {
			return
		}
		if n.ChildCount() == 0 || atomicKinds[n.Kind()] {
			start, end := int(n.StartByte()), int(n.EndByte())
			if end <= start || end > len(source) {
				return
			}
			if last >= 0 && start > last {
				sb.WriteByte(' ')
			}
			sb.Write(source[start:end])
			last = end
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			visit(n.Child(i))
		}
	}
	for _, n := range nodes {
		visit(n)
	}
	return sb.String()
}

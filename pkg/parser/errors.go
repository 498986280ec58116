package parser

import (
	"fmt"
	"io"

	sitter "github.com/tree-sitter/go-tree-sitter"
	"gitlab.com/tozd/go/errors"

	"github.com/spicery/rusty-ast/pkg/syntax"
)

const maxIssueText = 40

// Issue is a single syntax problem found in the source.
type Issue struct {
	Message string
	Span    syntax.Span
}

// ParseError reports source that the grammar could not fully recognise.
type ParseError struct {
	Issues []Issue
}

func (e *ParseError) Error() string {
	if len(e.Issues) == 0 {
		return "syntax error"
	}
	first := e.Issues[0]
	msg := fmt.Sprintf("%d:%d: %s", first.Span.StartLine, first.Span.StartColumn, first.Message)
	if len(e.Issues) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(e.Issues)-1)
	}
	return msg
}

// Report writes every issue, one per line.
func (e *ParseError) Report(w io.Writer) {
	fmt.Fprintln(w, "Errors found in the source code:")
	for i, issue := range e.Issues {
		fmt.Fprintf(w, "  [%d]. %s, at line %d, column %d\n", i+1, issue.Message, issue.Span.StartLine, issue.Span.StartColumn)
	}
}

// IsParseError reports whether err carries a *ParseError, as opposed to an
// I/O failure.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func collectIssues(root *sitter.Node, source []byte) *ParseError {
	pe := &ParseError{}
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		switch {
		case n.IsMissing():
			pe.Issues = append(pe.Issues, Issue{
				Message: fmt.Sprintf("missing `%s`", n.Kind()),
				Span:    spanOf(n),
			})
		case n.IsError():
			pe.Issues = append(pe.Issues, Issue{
				Message: fmt.Sprintf("unexpected `%s`", clip(squash(nodeText(n, source)))),
				Span:    spanOf(n),
			})
		case n.HasError():
			for i := uint(0); i < n.ChildCount(); i++ {
				if child := n.Child(i); child != nil {
					visit(child)
				}
			}
		}
	}
	visit(root)
	if len(pe.Issues) == 0 {
		pe.Issues = append(pe.Issues, Issue{Message: "syntax error", Span: spanOf(root)})
	}
	return pe
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= maxIssueText {
		return s
	}
	return string(r[:maxIssueText-1]) + "…"
}

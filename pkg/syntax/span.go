package syntax

import "fmt"

// Span locates a node in its source unit. Lines and columns are 1-based.
type Span struct {
	StartLine   int // The starting line number of the node
	StartColumn int // The starting column number of the node
	EndLine     int // The ending line number of the node
	EndColumn   int // The ending column number of the node
}

// Position returns the span itself so that every node embedding a Span
// satisfies the Node interface.
func (x Span) Position() Span {
	return x
}

func (x Span) SpanString() string {
	return fmt.Sprintf("%d %d %d %d", x.StartLine, x.StartColumn, x.EndLine, x.EndColumn)
}

// IsZero reports whether the span was never set, as for hand-built trees.
func (x Span) IsZero() bool {
	return x == Span{}
}

func (x Span) MergeSpan(y Span) Span {
	if y.IsZero() {
		return x
	}
	if x.IsZero() {
		return y
	}
	sofar := x
	if sofar.StartLine > y.StartLine || (sofar.StartLine == y.StartLine && sofar.StartColumn > y.StartColumn) {
		sofar.StartLine = y.StartLine
		sofar.StartColumn = y.StartColumn
	}
	if sofar.EndLine < y.EndLine || (sofar.EndLine == y.EndLine && sofar.EndColumn < y.EndColumn) {
		sofar.EndLine = y.EndLine
		sofar.EndColumn = y.EndColumn
	}
	return sofar
}

// Array packs the span as [startLine, startColumn, endLine, endColumn].
func (x Span) Array() [4]int {
	return [4]int{x.StartLine, x.StartColumn, x.EndLine, x.EndColumn}
}

package render

import (
	"fmt"

	asciitree "github.com/thediveo/go-asciitree"

	"github.com/spicery/rusty-ast/pkg/walker"
)

type AsciiNode struct {
	Label    string      `asciitree:"label"`
	Props    []string    `asciitree:"properties"`
	Children []AsciiNode `asciitree:"children"`
}

// AsciiTreeBuilder collects traversal events into an AsciiNode tree rooted
// at a "file" node. Slot headings become intermediate nodes; empty slots
// and inline slots do not.
type AsciiTreeBuilder struct {
	trim  int
	spans bool
	stack []*AsciiNode
}

func NewAsciiTreeBuilder(options *Options) *AsciiTreeBuilder {
	return &AsciiTreeBuilder{
		trim:  options.trim(),
		spans: options.spans(),
		stack: []*AsciiNode{{Label: "file"}},
	}
}

func (b *AsciiTreeBuilder) push(n AsciiNode) {
	b.stack = append(b.stack, &n)
}

func (b *AsciiTreeBuilder) pop(keepEmpty bool) {
	if len(b.stack) < 2 {
		return
	}
	done := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if !keepEmpty && len(done.Children) == 0 {
		return
	}
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, *done)
}

func (b *AsciiTreeBuilder) EnterNode(n walker.Node, _ int) {
	node := AsciiNode{Label: Header(n, b.trim)}
	if b.spans && !n.Span.IsZero() {
		node.Props = append(node.Props, "span: "+n.Span.SpanString())
	}
	b.push(node)
}

func (b *AsciiTreeBuilder) LeaveNode(walker.Node, int) {
	b.pop(true)
}

func (b *AsciiTreeBuilder) EnterSlot(s walker.Slot, _ int) {
	if s.Inline {
		return
	}
	label, ok := slotLabels[s.Key]
	if !ok {
		label = s.Key
	}
	b.push(AsciiNode{Label: label})
}

func (b *AsciiTreeBuilder) LeaveSlot(s walker.Slot, _ int) {
	if s.Inline {
		return
	}
	b.pop(false)
}

func (b *AsciiTreeBuilder) Attr(a walker.Attr, _ int) {
	top := b.stack[len(b.stack)-1]
	label, ok := attrLabels[a.Key]
	if !ok {
		label = a.Key
	}
	top.Props = append(top.Props, fmt.Sprintf("%s: %v", label, a.Value))
}

func (b *AsciiTreeBuilder) Tree() AsciiNode {
	return *b.stack[0]
}

func (b *AsciiTreeBuilder) String() string {
	return asciitree.RenderFancy(b.Tree())
}

package render

import (
	"github.com/spicery/rusty-ast/pkg/document"
	"github.com/spicery/rusty-ast/pkg/walker"
)

const (
	keyType  = "type"
	keySpan  = "span"
	keyItems = "items"
)

type jsonFrame struct {
	obj     *document.Object
	slot    *walker.Slot
	members []any
}

// JSONBuilder assembles the structured document from traversal events.
// Constructs carry a "type" discriminator first; empty lists and absent
// optional children are left out.
type JSONBuilder struct {
	includeSpans bool
	root         *document.Object
	stack        []*jsonFrame
}

func NewJSONBuilder(options *Options) *JSONBuilder {
	root := document.NewObject()
	items := walker.Slot{Key: keyItems, List: true}
	return &JSONBuilder{
		includeSpans: options.spans(),
		root:         root,
		stack:        []*jsonFrame{{obj: root, slot: &items}},
	}
}

func (b *JSONBuilder) top() *jsonFrame {
	return b.stack[len(b.stack)-1]
}

func (b *JSONBuilder) EnterNode(n walker.Node, _ int) {
	obj := document.NewObject()
	if tag := n.Kind.Tag(); tag != "" {
		obj.Set(keyType, tag)
	}
	for _, a := range n.Attrs {
		obj.Set(a.Key, a.Value)
	}
	if b.includeSpans && !n.Span.IsZero() {
		obj.Set(keySpan, n.Span.Array())
	}
	b.stack = append(b.stack, &jsonFrame{obj: obj})
}

func (b *JSONBuilder) LeaveNode(walker.Node, int) {
	if len(b.stack) < 2 {
		return
	}
	done := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	parent := b.top()
	parent.members = append(parent.members, done.obj)
}

func (b *JSONBuilder) EnterSlot(s walker.Slot, _ int) {
	f := b.top()
	f.slot, f.members = &s, nil
}

func (b *JSONBuilder) LeaveSlot(walker.Slot, int) {
	b.flush(b.top())
}

func (b *JSONBuilder) Attr(a walker.Attr, _ int) {
	b.top().obj.Set(a.Key, a.Value)
}

func (b *JSONBuilder) flush(f *jsonFrame) {
	if f.slot == nil {
		return
	}
	if len(f.members) > 0 {
		if f.slot.List {
			f.obj.Set(f.slot.Key, f.members)
		} else {
			f.obj.Set(f.slot.Key, f.members[0])
		}
	}
	f.slot, f.members = nil, nil
}

// Document closes the root and returns the finished document. The builder
// must not receive further events afterwards.
func (b *JSONBuilder) Document() *document.Object {
	b.flush(b.stack[0])
	return b.root
}

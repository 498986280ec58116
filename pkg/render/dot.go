package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/spicery/rusty-ast/pkg/walker"
)

var kindColors = map[walker.Kind]string{
	walker.KindFunction:  "lightpink",
	walker.KindStruct:    "#FFD8E1",
	walker.KindEnum:      "#FFD8E1",
	walker.KindCall:      "lightgreen",
	walker.KindIdent:     "Honeydew",
	walker.KindParameter: "PaleTurquoise",
	walker.KindReceiver:  "PaleTurquoise",
	walker.KindBinary:    "#C0FFC0",
	walker.KindIntLit:    "lightgoldenrodyellow",
	walker.KindFloatLit:  "lightgoldenrodyellow",
	walker.KindStringLit: "lightgoldenrodyellow",
	walker.KindBoolLit:   "lightgoldenrodyellow",
}

type dotFrame struct {
	id   string
	slot string
}

// DOTRenderer streams a Graphviz digraph. Edges are labelled with the slot
// the child sits in.
type DOTRenderer struct {
	output io.Writer
	trim   int
	next   int
	stack  []dotFrame
	err    error
}

func NewDOTRenderer(output io.Writer, options *Options) *DOTRenderer {
	return &DOTRenderer{output: output, trim: options.trim()}
}

func (r *DOTRenderer) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.output, format, args...)
}

func (r *DOTRenderer) node(label, color string) string {
	id := fmt.Sprintf("node_%d", r.next)
	r.next++
	r.printf("  \"%s\" [label=\"%s\", shape=\"box\", fillcolor=\"%s\"];\n", id, escapeDOTValue(label), color)
	return id
}

// Begin writes the graph header and the root file node.
func (r *DOTRenderer) Begin() {
	r.printf("digraph G {\n")
	r.printf("  bgcolor=\"transparent\";\n")
	r.printf("  node [shape=\"box\", style=\"filled\", fontname=\"Ubuntu Mono\"];\n")
	r.stack = []dotFrame{{id: r.node("file", "white"), slot: keyItems}}
}

func (r *DOTRenderer) End() error {
	r.printf("}\n")
	return r.err
}

func (r *DOTRenderer) EnterNode(n walker.Node, _ int) {
	color := kindColors[n.Kind]
	if color == "" {
		color = "lightgray"
	}
	id := r.node(Header(n, r.trim), color)
	if len(r.stack) > 0 {
		parent := r.stack[len(r.stack)-1]
		r.printf("  \"%s\" -> \"%s\" [label=\"%s\"];\n", parent.id, id, parent.slot)
	}
	r.stack = append(r.stack, dotFrame{id: id})
}

func (r *DOTRenderer) LeaveNode(walker.Node, int) {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

func (r *DOTRenderer) EnterSlot(s walker.Slot, _ int) {
	if len(r.stack) > 0 {
		r.stack[len(r.stack)-1].slot = s.Key
	}
}

func (r *DOTRenderer) LeaveSlot(walker.Slot, int) {}

func (r *DOTRenderer) Attr(a walker.Attr, _ int) {
	if len(r.stack) == 0 {
		return
	}
	parent := r.stack[len(r.stack)-1]
	label, ok := attrLabels[a.Key]
	if !ok {
		label = a.Key
	}
	id := r.node(fmt.Sprintf("%s: %v", label, a.Value), "white")
	r.printf("  \"%s\" -> \"%s\";\n", parent.id, id)
}

func escapeDOTValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `"`, `\"`)
	return strings.ReplaceAll(value, "\n", `\n`)
}

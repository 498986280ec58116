package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/spicery/rusty-ast/pkg/walker"
)

// slotLabels are the headings printed for non-inline slots. Slots listed in
// hideEmpty print nothing when they have no members.
var slotLabels = map[string]string{
	walker.SlotParameters.Key: "Parameters:",
	walker.SlotFields.Key:     "Fields:",
	walker.SlotVariants.Key:   "Variants:",
	walker.SlotBody.Key:       "Body:",
	walker.SlotThen.Key:       "Then branch:",
	walker.SlotArguments.Key:  "Arguments:",
	walker.SlotInit.Key:       "Initializer:",
	walker.SlotLeft.Key:       "Left:",
	walker.SlotRight.Key:      "Right:",
	walker.SlotFunction.Key:   "Function:",
	walker.SlotCondition.Key:  "Condition:",
	walker.SlotElse.Key:       "Else branch:",
}

var hideEmpty = map[string]bool{
	walker.SlotParameters.Key: true,
	walker.SlotFields.Key:     true,
	walker.SlotVariants.Key:   true,
	walker.SlotArguments.Key:  true,
}

var attrLabels = map[string]string{
	walker.KeyName:       "Name",
	walker.KeyReturnType: "Return type",
}

// Header returns the one-line description of a construct used by the text,
// asciitree and DOT renderers. Other text is trimmed to trim runes.
func Header(n walker.Node, trim int) string {
	name := n.String(walker.KeyName)
	switch n.Kind {
	case walker.KindFunction:
		return "Function: " + name
	case walker.KindParameter:
		return fmt.Sprintf("Parameter: %s - Type: %s", name, n.String(walker.KeyTypeInfo))
	case walker.KindReceiver:
		return "Self receiver: " + n.String(walker.KeyTypeInfo)
	case walker.KindStruct:
		return "Struct: " + name
	case walker.KindField:
		if name == "" {
			return "Tuple field: " + n.String(walker.KeyTypeInfo)
		}
		return fmt.Sprintf("Field: %s - Type: %s", name, n.String(walker.KeyTypeInfo))
	case walker.KindEnum:
		return "Enum: " + name
	case walker.KindVariant:
		return "Variant: " + name
	case walker.KindOtherItem:
		return "Other item: " + TrimValue(n.String(walker.KeyDescription), trim)
	case walker.KindVarDecl:
		return "Variable declaration:"
	case walker.KindExprStmt:
		return "Expression statement:"
	case walker.KindOtherStmt:
		return "Other statement: " + TrimValue(n.String(walker.KeyDescription), trim)
	case walker.KindIntLit:
		return "Integer literal: " + n.String(walker.KeyValue)
	case walker.KindFloatLit:
		return "Float literal: " + n.String(walker.KeyValue)
	case walker.KindStringLit:
		return fmt.Sprintf("String literal: %q", n.String(walker.KeyValue))
	case walker.KindBoolLit:
		v, _ := n.Lookup(walker.KeyValue)
		return fmt.Sprintf("Boolean literal: %v", v)
	case walker.KindBinary:
		return "Binary expression: " + n.String(walker.KeyOperator)
	case walker.KindCall:
		return "Function call:"
	case walker.KindIdent:
		return "Identifier: " + name
	case walker.KindIf:
		return "If statement:"
	case walker.KindLoop:
		return "Loop:"
	case walker.KindWhile:
		return "While loop:"
	case walker.KindReturn:
		return "Return statement:"
	case walker.KindOtherExpr:
		return "Other expression: " + TrimValue(n.String(walker.KeyDescription), trim)
	}
	return string(n.Kind)
}

// TextRenderer writes one indented line per construct, slot heading and
// detail attribute. The first write error stops output and is kept.
type TextRenderer struct {
	output io.Writer
	indent int
	trim   int
	err    error
}

func NewTextRenderer(output io.Writer, options *Options) *TextRenderer {
	return &TextRenderer{
		output: output,
		indent: options.indent(),
		trim:   options.trim(),
	}
}

func (r *TextRenderer) Err() error {
	return r.err
}

func (r *TextRenderer) line(depth int, text string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.output, "%s%s\n", strings.Repeat(" ", depth*r.indent), text)
}

func (r *TextRenderer) EnterNode(n walker.Node, depth int) {
	r.line(depth, Header(n, r.trim))
}

func (r *TextRenderer) LeaveNode(walker.Node, int) {}

func (r *TextRenderer) EnterSlot(s walker.Slot, depth int) {
	if s.Inline || (s.Len == 0 && hideEmpty[s.Key]) {
		return
	}
	if label, ok := slotLabels[s.Key]; ok {
		r.line(depth, label)
	}
}

func (r *TextRenderer) LeaveSlot(walker.Slot, int) {}

func (r *TextRenderer) Attr(a walker.Attr, depth int) {
	label, ok := attrLabels[a.Key]
	if !ok {
		label = a.Key
	}
	r.line(depth, fmt.Sprintf("%s: %v", label, a.Value))
}

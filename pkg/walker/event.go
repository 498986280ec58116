package walker

import "github.com/spicery/rusty-ast/pkg/syntax"

// Kind names a construct of the syntax model as seen by renderers.
type Kind string

const (
	KindFunction  Kind = "Function"
	KindParameter Kind = "Parameter"
	KindReceiver  Kind = "Receiver"
	KindStruct    Kind = "Struct"
	KindField     Kind = "Field"
	KindEnum      Kind = "Enum"
	KindVariant   Kind = "Variant"
	KindOtherItem Kind = "OtherItem"

	KindVarDecl   Kind = "VariableDeclaration"
	KindExprStmt  Kind = "Expression"
	KindOtherStmt Kind = "OtherStatement"

	KindIntLit    Kind = "IntLiteral"
	KindFloatLit  Kind = "FloatLiteral"
	KindStringLit Kind = "StringLiteral"
	KindBoolLit   Kind = "BoolLiteral"
	KindBinary    Kind = "Binary"
	KindCall      Kind = "Call"
	KindIdent     Kind = "Identifier"
	KindIf        Kind = "If"
	KindLoop      Kind = "Loop"
	KindWhile     Kind = "While"
	KindReturn    Kind = "Return"
	KindOtherExpr Kind = "OtherExpression"
)

const otherTag = "Other"

// Tag is the discriminator written to tagged-union documents. Parameters,
// receivers, fields and variants are plain records and have no tag.
func (k Kind) Tag() string {
	switch k {
	case KindParameter, KindReceiver, KindField, KindVariant:
		return ""
	case KindOtherItem, KindOtherStmt, KindOtherExpr:
		return otherTag
	}
	return string(k)
}

// IsOther reports whether the kind is one of the Other fallbacks.
func (k Kind) IsOther() bool {
	return k.Tag() == otherTag
}

// Attribute keys.
const (
	KeyName        = "name"
	KeyTypeInfo    = "type_info"
	KeyReturnType  = "return_type"
	KeyOperator    = "operator"
	KeyValue       = "value"
	KeyDescription = "description"
)

// Attr is a scalar property of a construct. Value is a string except for
// boolean literals.
type Attr struct {
	Key   string
	Value any
}

// Node is passed to EnterNode and LeaveNode. Attrs are the header
// attributes that identify the construct; detail attributes arrive later
// through Visitor.Attr.
type Node struct {
	Kind  Kind
	Attrs []Attr
	Span  syntax.Span
}

// Lookup returns the header attribute stored under key.
func (n Node) Lookup(key string) (any, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// String returns the header attribute under key as a string, or "".
func (n Node) String(key string) string {
	v, _ := n.Lookup(key)
	s, _ := v.(string)
	return s
}

// Slot is a named group of children: a list (parameters, body) or a single
// optional child (left, initializer). Members of an Inline slot sit directly
// under their parent instead of under a slot heading.
type Slot struct {
	Key    string
	List   bool
	Inline bool
	Len    int
}

// Slots used by the traversal.
var (
	SlotParameters = Slot{Key: "parameters", List: true}
	SlotFields     = Slot{Key: "fields", List: true}
	SlotVariants   = Slot{Key: "variants", List: true}
	SlotBody       = Slot{Key: "body", List: true}
	SlotLoopBody   = Slot{Key: "body", List: true, Inline: true}
	SlotThen       = Slot{Key: "then_branch", List: true}
	SlotArguments  = Slot{Key: "arguments", List: true}
	SlotInit       = Slot{Key: "initializer"}
	SlotExpr       = Slot{Key: "expr", Inline: true}
	SlotLeft       = Slot{Key: "left"}
	SlotRight      = Slot{Key: "right"}
	SlotFunction   = Slot{Key: "function"}
	SlotCondition  = Slot{Key: "condition"}
	SlotElse       = Slot{Key: "else_branch"}
	SlotValue      = Slot{Key: "value", Inline: true}
)

func (s Slot) sized(n int) Slot {
	s.Len = n
	return s
}

// Visitor consumes traversal events. depth is the nesting level of the line
// a text renderer would print for the event; it is computed by the walker
// and passed by value, so visitors need no depth bookkeeping of their own.
type Visitor interface {
	EnterNode(n Node, depth int)
	LeaveNode(n Node, depth int)
	EnterSlot(s Slot, depth int)
	LeaveSlot(s Slot, depth int)
	Attr(a Attr, depth int)
}

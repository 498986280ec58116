// Package walker performs the single depth-first traversal of a syntax tree
// that every output format is built from.
//
// For a construct at depth d the walker emits EnterNode at d, its detail
// attributes and slot headings at d+1, slot members at d+2 (d+1 for inline
// slots) and finally LeaveNode at d. Top-level items are emitted at depth 0.
// Children are always visited in source order.
package walker

import (
	"github.com/spicery/rusty-ast/pkg/syntax"
)

// Walk visits every item of file in order.
func Walk(file *syntax.File, v Visitor) {
	if file == nil {
		return
	}
	for _, item := range file.Items {
		walkItem(v, item, 0)
	}
}

// WalkItem visits a single item as if it were at depth.
func WalkItem(item syntax.Item, v Visitor, depth int) {
	walkItem(v, item, depth)
}

// WalkStmt visits a single statement as if it were at depth.
func WalkStmt(stmt syntax.Stmt, v Visitor, depth int) {
	walkStmt(v, stmt, depth)
}

// WalkExpr visits a single expression as if it were at depth.
func WalkExpr(expr syntax.Expr, v Visitor, depth int) {
	walkExpr(v, expr, depth)
}

func leaf(v Visitor, n Node, depth int) {
	v.EnterNode(n, depth)
	v.LeaveNode(n, depth)
}

// group emits a slot of a node sitting at depth.
func group(v Visitor, s Slot, depth int, members func(depth int)) {
	v.EnterSlot(s, depth+1)
	inner := depth + 2
	if s.Inline {
		inner = depth + 1
	}
	members(inner)
	v.LeaveSlot(s, depth+1)
}

func statements(v Visitor, s Slot, stmts []syntax.Stmt, depth int) {
	group(v, s.sized(len(stmts)), depth, func(d int) {
		for _, stmt := range stmts {
			walkStmt(v, stmt, d)
		}
	})
}

// optional emits a single-child slot; absent children produce no slot.
func optional(v Visitor, s Slot, expr syntax.Expr, depth int) {
	if expr == nil {
		return
	}
	group(v, s.sized(1), depth, func(d int) {
		walkExpr(v, expr, d)
	})
}

func otherNode(kind Kind, span syntax.Span, text string) Node {
	return Node{Kind: kind, Span: span, Attrs: []Attr{{KeyDescription, text}}}
}

func walkItem(v Visitor, item syntax.Item, depth int) {
	switch it := item.(type) {
	case *syntax.Function:
		n := Node{Kind: KindFunction, Span: it.Span, Attrs: []Attr{{KeyName, it.Name}}}
		v.EnterNode(n, depth)
		group(v, SlotParameters.sized(len(it.Params)), depth, func(d int) {
			for _, p := range it.Params {
				kind := KindParameter
				if p.Receiver {
					kind = KindReceiver
				}
				leaf(v, Node{Kind: kind, Span: p.Span, Attrs: []Attr{{KeyName, p.Name}, {KeyTypeInfo, p.Type}}}, d)
			}
		})
		if it.ReturnType != "" {
			v.Attr(Attr{KeyReturnType, it.ReturnType}, depth+1)
		}
		statements(v, SlotBody, it.Body, depth)
		v.LeaveNode(n, depth)
	case *syntax.Struct:
		n := Node{Kind: KindStruct, Span: it.Span, Attrs: []Attr{{KeyName, it.Name}}}
		v.EnterNode(n, depth)
		group(v, SlotFields.sized(len(it.Fields)), depth, func(d int) {
			for _, f := range it.Fields {
				var attrs []Attr
				if f.Name != "" {
					attrs = append(attrs, Attr{KeyName, f.Name})
				}
				attrs = append(attrs, Attr{KeyTypeInfo, f.Type})
				leaf(v, Node{Kind: KindField, Span: f.Span, Attrs: attrs}, d)
			}
		})
		v.LeaveNode(n, depth)
	case *syntax.Enum:
		n := Node{Kind: KindEnum, Span: it.Span, Attrs: []Attr{{KeyName, it.Name}}}
		v.EnterNode(n, depth)
		group(v, SlotVariants.sized(len(it.Variants)), depth, func(d int) {
			for _, variant := range it.Variants {
				leaf(v, Node{Kind: KindVariant, Span: variant.Span, Attrs: []Attr{{KeyName, variant.Name}}}, d)
			}
		})
		v.LeaveNode(n, depth)
	case *syntax.OtherItem:
		leaf(v, otherNode(KindOtherItem, it.Span, it.Text), depth)
	default:
		leaf(v, otherNode(KindOtherItem, syntax.Span{}, ""), depth)
	}
}

func walkStmt(v Visitor, stmt syntax.Stmt, depth int) {
	switch st := stmt.(type) {
	case *syntax.VarDecl:
		n := Node{Kind: KindVarDecl, Span: st.Span}
		v.EnterNode(n, depth)
		v.Attr(Attr{KeyName, st.Name}, depth+1)
		optional(v, SlotInit, st.Init, depth)
		v.LeaveNode(n, depth)
	case *syntax.ExprStmt:
		n := Node{Kind: KindExprStmt, Span: st.Span}
		v.EnterNode(n, depth)
		optional(v, SlotExpr, st.X, depth)
		v.LeaveNode(n, depth)
	case *syntax.ItemStmt:
		walkItem(v, st.Item, depth)
	case *syntax.OtherStmt:
		leaf(v, otherNode(KindOtherStmt, st.Span, st.Text), depth)
	default:
		leaf(v, otherNode(KindOtherStmt, syntax.Span{}, ""), depth)
	}
}

func walkExpr(v Visitor, expr syntax.Expr, depth int) {
	switch e := expr.(type) {
	case *syntax.IntLit:
		leaf(v, Node{Kind: KindIntLit, Span: e.Span, Attrs: []Attr{{KeyValue, e.Digits}}}, depth)
	case *syntax.FloatLit:
		leaf(v, Node{Kind: KindFloatLit, Span: e.Span, Attrs: []Attr{{KeyValue, e.Digits}}}, depth)
	case *syntax.StringLit:
		leaf(v, Node{Kind: KindStringLit, Span: e.Span, Attrs: []Attr{{KeyValue, e.Value}}}, depth)
	case *syntax.BoolLit:
		leaf(v, Node{Kind: KindBoolLit, Span: e.Span, Attrs: []Attr{{KeyValue, e.Value}}}, depth)
	case *syntax.Binary:
		n := Node{Kind: KindBinary, Span: e.Span, Attrs: []Attr{{KeyOperator, syntax.NormalizeOperator(e.Op)}}}
		v.EnterNode(n, depth)
		optional(v, SlotLeft, e.Left, depth)
		optional(v, SlotRight, e.Right, depth)
		v.LeaveNode(n, depth)
	case *syntax.Call:
		n := Node{Kind: KindCall, Span: e.Span}
		v.EnterNode(n, depth)
		optional(v, SlotFunction, e.Func, depth)
		group(v, SlotArguments.sized(len(e.Args)), depth, func(d int) {
			for _, arg := range e.Args {
				walkExpr(v, arg, d)
			}
		})
		v.LeaveNode(n, depth)
	case *syntax.Ident:
		leaf(v, Node{Kind: KindIdent, Span: e.Span, Attrs: []Attr{{KeyName, e.Path}}}, depth)
	case *syntax.If:
		n := Node{Kind: KindIf, Span: e.Span}
		v.EnterNode(n, depth)
		optional(v, SlotCondition, e.Cond, depth)
		statements(v, SlotThen, e.Then, depth)
		optional(v, SlotElse, e.Else, depth)
		v.LeaveNode(n, depth)
	case *syntax.Loop:
		n := Node{Kind: KindLoop, Span: e.Span}
		v.EnterNode(n, depth)
		statements(v, SlotLoopBody, e.Body, depth)
		v.LeaveNode(n, depth)
	case *syntax.While:
		n := Node{Kind: KindWhile, Span: e.Span}
		v.EnterNode(n, depth)
		optional(v, SlotCondition, e.Cond, depth)
		statements(v, SlotBody, e.Body, depth)
		v.LeaveNode(n, depth)
	case *syntax.Return:
		n := Node{Kind: KindReturn, Span: e.Span}
		v.EnterNode(n, depth)
		optional(v, SlotValue, e.Value, depth)
		v.LeaveNode(n, depth)
	case *syntax.OtherExpr:
		leaf(v, otherNode(KindOtherExpr, e.Span, e.Text), depth)
	default:
		leaf(v, otherNode(KindOtherExpr, syntax.Span{}, ""), depth)
	}
}

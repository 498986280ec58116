package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/spicery/rusty-ast/pkg/syntax"
)

// Node kinds that declare items when they appear in statement position.
var itemKinds = map[string]bool{
	"function_item":            true,
	"function_signature_item":  true,
	"struct_item":              true,
	"enum_item":                true,
	"union_item":               true,
	"impl_item":                true,
	"trait_item":               true,
	"mod_item":                 true,
	"foreign_mod_item":         true,
	"const_item":               true,
	"static_item":              true,
	"type_item":                true,
	"use_declaration":          true,
	"extern_crate_declaration": true,
	"macro_definition":         true,
	"associated_type":          true,
}

var pathKinds = map[string]bool{
	"identifier":        true,
	"scoped_identifier": true,
	"self":              true,
	"generic_function":  true,
}

// converter maps the concrete syntax tree onto the syntax model. Every
// tree-sitter node reaches exactly one model node; kinds without a mapping
// become Other nodes holding their reconstructed text.
type converter struct {
	source []byte
}

func (c *converter) text(n *sitter.Node) string {
	return nodeText(n, c.source)
}

func (c *converter) tokens(nodes ...*sitter.Node) string {
	return reconstruct(c.source, nodes...)
}

// children returns the named children of n, comments excluded.
func (c *converter) children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || isComment(child.Kind()) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func (c *converter) file(root *sitter.Node) *syntax.File {
	f := &syntax.File{Span: spanOf(root)}
	var attrs []*sitter.Node
	for _, child := range c.children(root) {
		switch child.Kind() {
		case "attribute_item":
			attrs = append(attrs, child)
			continue
		case "inner_attribute_item":
			// Crate-level attributes belong to the file, not to an item.
			continue
		}
		f.Items = append(f.Items, c.item(child, attrs))
		attrs = nil
	}
	for _, a := range attrs {
		f.Items = append(f.Items, c.otherItem(a, nil))
	}
	return f
}

// item converts a declaration. attrs are the outer attributes preceding it;
// they only show up in the text of an Other item.
func (c *converter) item(n *sitter.Node, attrs []*sitter.Node) syntax.Item {
	switch n.Kind() {
	case "function_item":
		return c.function(n)
	case "struct_item":
		return c.structItem(n)
	case "enum_item":
		return c.enumItem(n)
	default:
		return c.otherItem(n, attrs)
	}
}

func (c *converter) otherItem(n *sitter.Node, attrs []*sitter.Node) *syntax.OtherItem {
	span := spanOf(n)
	for _, a := range attrs {
		span = span.MergeSpan(spanOf(a))
	}
	return &syntax.OtherItem{Span: span, Text: c.tokens(append(attrs, n)...)}
}

func (c *converter) function(n *sitter.Node) *syntax.Function {
	fn := &syntax.Function{
		Span: spanOf(n),
		Name: c.text(n.ChildByFieldName("name")),
	}
	for _, p := range c.children(n.ChildByFieldName("parameters")) {
		switch p.Kind() {
		case "attribute_item":
			continue
		case "self_parameter":
			fn.Params = append(fn.Params, syntax.Param{
				Span:     spanOf(p),
				Name:     "self",
				Type:     c.tokens(p),
				Receiver: true,
			})
		case "parameter":
			pattern := p.ChildByFieldName("pattern")
			if pattern != nil && pattern.Kind() == "self" {
				// Typed receiver such as `self: Box<Self>`.
				fn.Params = append(fn.Params, syntax.Param{
					Span:     spanOf(p),
					Name:     "self",
					Type:     c.tokens(p),
					Receiver: true,
				})
				continue
			}
			fn.Params = append(fn.Params, syntax.Param{
				Span: spanOf(p),
				Name: c.patternName(pattern),
				Type: c.tokens(p.ChildByFieldName("type")),
			})
		default:
			// Variadic `...` or a bare type: no binding name.
			fn.Params = append(fn.Params, syntax.Param{Span: spanOf(p), Type: c.tokens(p)})
		}
	}
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		fn.ReturnType = c.tokens(rt)
	}
	fn.Body = c.block(n.ChildByFieldName("body"))
	return fn
}

func (c *converter) structItem(n *sitter.Node) *syntax.Struct {
	s := &syntax.Struct{
		Span: spanOf(n),
		Name: c.text(n.ChildByFieldName("name")),
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return s
	}
	switch body.Kind() {
	case "field_declaration_list":
		for _, f := range c.children(body) {
			if f.Kind() != "field_declaration" {
				continue
			}
			s.Fields = append(s.Fields, syntax.Field{
				Span: spanOf(f),
				Name: c.text(f.ChildByFieldName("name")),
				Type: c.tokens(f.ChildByFieldName("type")),
			})
		}
	case "ordered_field_declaration_list":
		for _, f := range c.children(body) {
			switch f.Kind() {
			case "attribute_item", "visibility_modifier":
				continue
			}
			s.Fields = append(s.Fields, syntax.Field{Span: spanOf(f), Type: c.tokens(f)})
		}
	}
	return s
}

func (c *converter) enumItem(n *sitter.Node) *syntax.Enum {
	e := &syntax.Enum{
		Span: spanOf(n),
		Name: c.text(n.ChildByFieldName("name")),
	}
	for _, v := range c.children(n.ChildByFieldName("body")) {
		if v.Kind() != "enum_variant" {
			continue
		}
		e.Variants = append(e.Variants, syntax.Variant{
			Span: spanOf(v),
			Name: c.text(v.ChildByFieldName("name")),
		})
	}
	return e
}

func (c *converter) patternName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind() == "identifier" {
		return c.text(n)
	}
	return c.tokens(n)
}

// block converts the statements of a block node in source order.
func (c *converter) block(n *sitter.Node) []syntax.Stmt {
	var stmts []syntax.Stmt
	var attrs []*sitter.Node
	for _, child := range c.children(n) {
		if child.Kind() == "attribute_item" {
			attrs = append(attrs, child)
			continue
		}
		stmts = append(stmts, c.stmt(child, attrs))
		attrs = nil
	}
	for _, a := range attrs {
		stmts = append(stmts, &syntax.OtherStmt{Span: spanOf(a), Text: c.tokens(a)})
	}
	return stmts
}

func (c *converter) stmt(n *sitter.Node, attrs []*sitter.Node) syntax.Stmt {
	switch n.Kind() {
	case "let_declaration":
		decl := &syntax.VarDecl{
			Span: spanOf(n),
			Name: c.patternName(n.ChildByFieldName("pattern")),
		}
		if value := n.ChildByFieldName("value"); value != nil {
			decl.Init = c.expr(value)
		}
		return decl
	case "expression_statement":
		children := c.children(n)
		if len(children) == 0 || children[0].Kind() == "macro_invocation" {
			return c.otherStmt(n, attrs)
		}
		return &syntax.ExprStmt{Span: spanOf(n), X: c.expr(children[0])}
	case "empty_statement", "inner_attribute_item":
		return c.otherStmt(n, attrs)
	}
	if itemKinds[n.Kind()] {
		return &syntax.ItemStmt{Span: spanOf(n), Item: c.item(n, attrs)}
	}
	// Anything else is the block's trailing expression.
	return &syntax.ExprStmt{Span: spanOf(n), X: c.expr(n)}
}

func (c *converter) otherStmt(n *sitter.Node, attrs []*sitter.Node) *syntax.OtherStmt {
	span := spanOf(n)
	for _, a := range attrs {
		span = span.MergeSpan(spanOf(a))
	}
	return &syntax.OtherStmt{Span: span, Text: c.tokens(append(attrs, n)...)}
}

func (c *converter) expr(n *sitter.Node) syntax.Expr {
	if n == nil {
		return &syntax.OtherExpr{}
	}
	span := spanOf(n)
	switch kind := n.Kind(); {
	case kind == "integer_literal":
		if text := c.text(n); isSuffixedFloat(text) {
			return &syntax.FloatLit{Span: span, Digits: floatDigits(text)}
		}
		return &syntax.IntLit{Span: span, Digits: intDigits(c.text(n))}
	case kind == "float_literal":
		return &syntax.FloatLit{Span: span, Digits: floatDigits(c.text(n))}
	case kind == "string_literal" || kind == "raw_string_literal":
		if value, ok := stringValue(c.text(n)); ok {
			return &syntax.StringLit{Span: span, Value: value}
		}
	case kind == "boolean_literal":
		return &syntax.BoolLit{Span: span, Value: c.text(n) == "true"}
	case kind == "binary_expression" || kind == "compound_assignment_expr":
		return &syntax.Binary{
			Span:  span,
			Op:    c.text(n.ChildByFieldName("operator")),
			Left:  c.expr(n.ChildByFieldName("left")),
			Right: c.expr(n.ChildByFieldName("right")),
		}
	case kind == "call_expression":
		call := &syntax.Call{Span: span, Func: c.expr(n.ChildByFieldName("function"))}
		for _, arg := range c.children(n.ChildByFieldName("arguments")) {
			if arg.Kind() == "attribute_item" {
				continue
			}
			call.Args = append(call.Args, c.expr(arg))
		}
		return call
	case pathKinds[kind]:
		return &syntax.Ident{Span: span, Path: c.tokens(n)}
	case kind == "if_expression":
		e := &syntax.If{
			Span: span,
			Cond: c.expr(n.ChildByFieldName("condition")),
			Then: c.block(n.ChildByFieldName("consequence")),
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if branch := c.children(alt); len(branch) > 0 {
				e.Else = c.expr(branch[0])
			}
		}
		return e
	case kind == "loop_expression":
		return &syntax.Loop{Span: span, Body: c.block(n.ChildByFieldName("body"))}
	case kind == "while_expression":
		return &syntax.While{
			Span: span,
			Cond: c.expr(n.ChildByFieldName("condition")),
			Body: c.block(n.ChildByFieldName("body")),
		}
	case kind == "return_expression":
		ret := &syntax.Return{Span: span}
		if value := c.children(n); len(value) > 0 {
			ret.Value = c.expr(value[0])
		}
		return ret
	}
	return &syntax.OtherExpr{Span: span, Text: c.tokens(n)}
}

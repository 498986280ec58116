// Package syntax defines the closed set of Rust constructs that rusty-ast
// renders. Anything outside the set is carried by an Other node holding the
// construct's reconstructed source text.
package syntax

// Node is implemented by every construct in the model.
type Node interface {
	Position() Span
}

// Item is a top-level or nested declaration.
type Item interface {
	Node
	itemNode()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// File is the root of one parsed compilation unit.
type File struct {
	Span
	Items []Item
}

// ---- Items -----------------------------------------------------------------

type Function struct {
	Span
	Name       string
	Params     []Param
	ReturnType string // Empty when the function returns unit implicitly.
	Body       []Stmt
}

// Param is one declared parameter. A method receiver is a Param named "self"
// with Receiver set and Type holding the receiver's text (e.g. "&mut self").
type Param struct {
	Span
	Name     string
	Type     string
	Receiver bool
}

type Struct struct {
	Span
	Name   string
	Fields []Field
}

// Field is a struct field; Name is empty for tuple-struct fields.
type Field struct {
	Span
	Name string
	Type string
}

type Enum struct {
	Span
	Name     string
	Variants []Variant
}

// Variant records only the name of an enum variant; payloads are not decomposed.
type Variant struct {
	Span
	Name string
}

type OtherItem struct {
	Span
	Text string
}

func (*Function) itemNode()  {}
func (*Struct) itemNode()    {}
func (*Enum) itemNode()      {}
func (*OtherItem) itemNode() {}

// ---- Statements ------------------------------------------------------------

// VarDecl is a `let` binding. Init is nil when there is no initializer.
type VarDecl struct {
	Span
	Name string
	Init Expr
}

type ExprStmt struct {
	Span
	X Expr
}

// ItemStmt is an item declared in statement position.
type ItemStmt struct {
	Span
	Item Item
}

type OtherStmt struct {
	Span
	Text string
}

func (*VarDecl) stmtNode()   {}
func (*ExprStmt) stmtNode()  {}
func (*ItemStmt) stmtNode()  {}
func (*OtherStmt) stmtNode() {}

// ---- Expressions -----------------------------------------------------------

type IntLit struct {
	Span
	Digits string
}

type FloatLit struct {
	Span
	Digits string
}

type StringLit struct {
	Span
	Value string
}

type BoolLit struct {
	Span
	Value bool
}

// Binary keeps the operator as written; see NormalizeOperator.
type Binary struct {
	Span
	Op    string
	Left  Expr
	Right Expr
}

type Call struct {
	Span
	Func Expr
	Args []Expr
}

type Ident struct {
	Span
	Path string
}

// If models `if cond { ... } else <expr>`. An `else { ... }` tail arrives
// as an OtherExpr holding the block text.
type If struct {
	Span
	Cond Expr
	Then []Stmt
	Else Expr
}

type Loop struct {
	Span
	Body []Stmt
}

type While struct {
	Span
	Cond Expr
	Body []Stmt
}

// Return has a nil Value for a bare `return`.
type Return struct {
	Span
	Value Expr
}

type OtherExpr struct {
	Span
	Text string
}

func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*Binary) exprNode()    {}
func (*Call) exprNode()      {}
func (*Ident) exprNode()     {}
func (*If) exprNode()        {}
func (*Loop) exprNode()      {}
func (*While) exprNode()     {}
func (*Return) exprNode()    {}
func (*OtherExpr) exprNode() {}

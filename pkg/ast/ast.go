// Package ast defines the tagged AST node the upstream parser builds and
// this module's analyser/lowering packages consume (spec.md §6, teacher
// parity with xplshn-gbc/pkg/ast.Node{Type, Tok, Data, Typ}).
package ast

import (
	"lacsap/pkg/token"
	"lacsap/pkg/types"
)

// Kind discriminates the variants of Node.
type Kind int

const (
	// Expressions.
	IntLit Kind = iota
	RealLit
	CharLit
	StringLit
	NilLit
	Ident
	RangeLit
	SetLit
	ArrayAccess
	FieldAccess
	Deref
	AddrOf
	BinaryOp
	UnaryOp
	Call

	// Statements.
	Assign
	IfStmt
	ForStmt
	WhileStmt
	RepeatStmt
	WriteStmt
	ReadStmt
	Block
	VarDecl
	FuncDecl
	TypeDecl
	Program
)

var kindNames = [...]string{
	"IntLit", "RealLit", "CharLit", "StringLit", "NilLit", "Ident",
	"RangeLit", "SetLit", "ArrayAccess", "FieldAccess", "Deref", "AddrOf",
	"BinaryOp", "UnaryOp", "Call",
	"Assign", "IfStmt", "ForStmt", "WhileStmt", "RepeatStmt", "WriteStmt",
	"ReadStmt", "Block", "VarDecl", "FuncDecl", "TypeDecl", "Program",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<unknown node kind>"
}

// Node is one AST node: a kind tag, its source position, a kind-specific
// Data payload, and the mutable Type slot the analyser fills in on typed
// (expression) nodes.
type Node struct {
	Kind Kind
	Pos  token.Position
	Data interface{}
	Typ  *types.Type
}

// --- Expression node data ---

type IntLitData struct{ Value int64 }
type RealLitData struct{ Value float64 }
type CharLitData struct{ Value byte }
type StringLitData struct{ Value string }
type NilLitData struct{}
type IdentData struct{ Name string }
type RangeLitData struct{ Low, High *Node }
type SetLitData struct{ Elems []*Node } // each elem is a value expr or a RangeLit
type ArrayAccessData struct {
	Array   *Node
	Indices []*Node
}
type FieldAccessData struct {
	Record *Node
	Field  string
}
type DerefData struct{ Expr *Node }
type AddrOfData struct{ Expr *Node }
type BinaryOpData struct {
	Op          token.Kind
	Left, Right *Node
}
type UnaryOpData struct {
	Op   token.Kind
	Expr *Node
}
type CallData struct {
	Callee string
	Args   []*Node
}

// --- Statement node data ---

type AssignData struct{ Lhs, Rhs *Node }
type IfData struct{ Cond, Then, Else *Node }
type ForData struct {
	Var        string
	Start, End *Node
	Down       bool
	Body       *Node
}
type WhileData struct{ Cond, Body *Node }
type RepeatData struct{ Body, Cond *Node }

// WriteArg is one argument of a write/writeln call, with optional
// field-width and (real-only) precision expressions.
type WriteArg struct {
	Expr      *Node
	Width     *Node
	Precision *Node
}
type WriteData struct {
	Args    []WriteArg
	Newline bool
}
type ReadData struct {
	Args    []*Node
	Newline bool
}
type BlockData struct{ Stmts []*Node }

// VarDeclData declares one or more names sharing a single type.
type VarDeclData struct {
	Names []string
	Type  *types.Type
}

// FuncDeclData is a procedure/function declaration. Forward marks a
// prototype-only declaration (Body and Locals are nil); a later
// non-forward FuncDecl of the same Name rebinds it (spec.md §4.5
// "Prototype").
type FuncDeclData struct {
	Name    string
	Params  []*types.Param
	Result  *types.Type // nil for a procedure
	Locals  []*Node     // VarDecl nodes
	Body    *Node       // Block, nil when Forward
	Forward bool
}

// TypeDeclData names a type declaration to be registered with the type
// registry (spec.md §4.1). Type may carry an incomplete pointer awaiting
// FixUpIncomplete.
type TypeDeclData struct {
	Name string
	Type *types.Type
}

// ProgramData is the root of a compilation unit: type and variable
// declarations in source order, then function/procedure declarations,
// then the top-level statement body.
type ProgramData struct {
	TypeDecls []*Node
	VarDecls  []*Node
	FuncDecls []*Node
	Body      *Node
}

// --- Constructors ---

func newNode(pos token.Position, kind Kind, data interface{}) *Node {
	return &Node{Kind: kind, Pos: pos, Data: data}
}

func NewIntLit(pos token.Position, v int64) *Node { return newNode(pos, IntLit, IntLitData{v}) }
func NewRealLit(pos token.Position, v float64) *Node {
	return newNode(pos, RealLit, RealLitData{v})
}
func NewCharLit(pos token.Position, v byte) *Node { return newNode(pos, CharLit, CharLitData{v}) }
func NewStringLit(pos token.Position, v string) *Node {
	return newNode(pos, StringLit, StringLitData{v})
}
func NewNilLit(pos token.Position) *Node { return newNode(pos, NilLit, NilLitData{}) }
func NewIdent(pos token.Position, name string) *Node {
	return newNode(pos, Ident, IdentData{Name: name})
}
func NewRangeLit(pos token.Position, low, high *Node) *Node {
	return newNode(pos, RangeLit, RangeLitData{Low: low, High: high})
}
func NewSetLit(pos token.Position, elems []*Node) *Node {
	return newNode(pos, SetLit, SetLitData{Elems: elems})
}
func NewArrayAccess(pos token.Position, array *Node, indices []*Node) *Node {
	return newNode(pos, ArrayAccess, ArrayAccessData{Array: array, Indices: indices})
}
func NewFieldAccess(pos token.Position, record *Node, field string) *Node {
	return newNode(pos, FieldAccess, FieldAccessData{Record: record, Field: field})
}
func NewDeref(pos token.Position, expr *Node) *Node {
	return newNode(pos, Deref, DerefData{Expr: expr})
}
func NewAddrOf(pos token.Position, expr *Node) *Node {
	return newNode(pos, AddrOf, AddrOfData{Expr: expr})
}
func NewBinaryOp(pos token.Position, op token.Kind, left, right *Node) *Node {
	return newNode(pos, BinaryOp, BinaryOpData{Op: op, Left: left, Right: right})
}
func NewUnaryOp(pos token.Position, op token.Kind, expr *Node) *Node {
	return newNode(pos, UnaryOp, UnaryOpData{Op: op, Expr: expr})
}
func NewCall(pos token.Position, callee string, args []*Node) *Node {
	return newNode(pos, Call, CallData{Callee: callee, Args: args})
}
func NewAssign(pos token.Position, lhs, rhs *Node) *Node {
	return newNode(pos, Assign, AssignData{Lhs: lhs, Rhs: rhs})
}
func NewIf(pos token.Position, cond, then, els *Node) *Node {
	return newNode(pos, IfStmt, IfData{Cond: cond, Then: then, Else: els})
}
func NewFor(pos token.Position, v string, start, end *Node, down bool, body *Node) *Node {
	return newNode(pos, ForStmt, ForData{Var: v, Start: start, End: end, Down: down, Body: body})
}
func NewWhile(pos token.Position, cond, body *Node) *Node {
	return newNode(pos, WhileStmt, WhileData{Cond: cond, Body: body})
}
func NewRepeat(pos token.Position, body, cond *Node) *Node {
	return newNode(pos, RepeatStmt, RepeatData{Body: body, Cond: cond})
}
func NewWrite(pos token.Position, args []WriteArg, newline bool) *Node {
	return newNode(pos, WriteStmt, WriteData{Args: args, Newline: newline})
}
func NewRead(pos token.Position, args []*Node, newline bool) *Node {
	return newNode(pos, ReadStmt, ReadData{Args: args, Newline: newline})
}
func NewBlock(pos token.Position, stmts []*Node) *Node {
	return newNode(pos, Block, BlockData{Stmts: stmts})
}
func NewVarDecl(pos token.Position, names []string, typ *types.Type) *Node {
	return newNode(pos, VarDecl, VarDeclData{Names: names, Type: typ})
}
func NewFuncDecl(pos token.Position, name string, params []*types.Param, result *types.Type, locals []*Node, body *Node, forward bool) *Node {
	return newNode(pos, FuncDecl, FuncDeclData{
		Name: name, Params: params, Result: result, Locals: locals, Body: body, Forward: forward,
	})
}
func NewTypeDecl(pos token.Position, name string, typ *types.Type) *Node {
	return newNode(pos, TypeDecl, TypeDeclData{Name: name, Type: typ})
}
func NewProgram(typeDecls, varDecls, funcDecls []*Node, body *Node) *Node {
	return newNode(token.Position{}, Program, ProgramData{
		TypeDecls: typeDecls, VarDecls: varDecls, FuncDecls: funcDecls, Body: body,
	})
}

// IsLValue reports whether n denotes an addressable location: a variable
// reference, pointer dereference, array element, or record/class field
// (spec.md §9 "a complete implementation should dispatch to an Address()
// contract on any lvalue").
func IsLValue(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case Ident, Deref, ArrayAccess, FieldAccess:
		return true
	}
	return false
}

package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump renders node and its descendants as an indented debug tree to w,
// one line per node with its kind, position, and a short summary of its
// Data -- the Go-idiomatic stand-in for the teacher's per-node Dump
// methods, implemented once via the shared Walk/type-switch machinery
// instead of one method per node type.
func Dump(w io.Writer, node *Node) {
	dump(w, node, 0)
}

func dump(w io.Writer, node *Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s %s%s\n", indent, node.Kind, node.Pos, summary(node))

	switch d := node.Data.(type) {
	case RangeLitData:
		dump(w, d.Low, depth+1)
		dump(w, d.High, depth+1)
	case SetLitData:
		for _, e := range d.Elems {
			dump(w, e, depth+1)
		}
	case ArrayAccessData:
		dump(w, d.Array, depth+1)
		for _, idx := range d.Indices {
			dump(w, idx, depth+1)
		}
	case FieldAccessData:
		dump(w, d.Record, depth+1)
	case DerefData:
		dump(w, d.Expr, depth+1)
	case AddrOfData:
		dump(w, d.Expr, depth+1)
	case BinaryOpData:
		dump(w, d.Left, depth+1)
		dump(w, d.Right, depth+1)
	case UnaryOpData:
		dump(w, d.Expr, depth+1)
	case CallData:
		for _, a := range d.Args {
			dump(w, a, depth+1)
		}
	case AssignData:
		dump(w, d.Lhs, depth+1)
		dump(w, d.Rhs, depth+1)
	case IfData:
		dump(w, d.Cond, depth+1)
		dump(w, d.Then, depth+1)
		dump(w, d.Else, depth+1)
	case ForData:
		dump(w, d.Start, depth+1)
		dump(w, d.End, depth+1)
		dump(w, d.Body, depth+1)
	case WhileData:
		dump(w, d.Cond, depth+1)
		dump(w, d.Body, depth+1)
	case RepeatData:
		dump(w, d.Body, depth+1)
		dump(w, d.Cond, depth+1)
	case WriteData:
		for _, a := range d.Args {
			dump(w, a.Expr, depth+1)
		}
	case ReadData:
		for _, a := range d.Args {
			dump(w, a, depth+1)
		}
	case BlockData:
		for _, s := range d.Stmts {
			dump(w, s, depth+1)
		}
	case FuncDeclData:
		for _, l := range d.Locals {
			dump(w, l, depth+1)
		}
		dump(w, d.Body, depth+1)
	case ProgramData:
		for _, t := range d.TypeDecls {
			dump(w, t, depth+1)
		}
		for _, v := range d.VarDecls {
			dump(w, v, depth+1)
		}
		for _, f := range d.FuncDecls {
			dump(w, f, depth+1)
		}
		dump(w, d.Body, depth+1)
	}
}

// summary renders the leaf-level scalar fields of a node's Data (the
// parts Walk/dump don't already recurse into as children).
func summary(node *Node) string {
	switch d := node.Data.(type) {
	case IntLitData:
		return fmt.Sprintf(" %d", d.Value)
	case RealLitData:
		return fmt.Sprintf(" %g", d.Value)
	case CharLitData:
		return fmt.Sprintf(" %q", rune(d.Value))
	case StringLitData:
		return fmt.Sprintf(" %q", d.Value)
	case IdentData:
		return " " + d.Name
	case FieldAccessData:
		return " ." + d.Field
	case BinaryOpData:
		return " " + d.Op.String()
	case UnaryOpData:
		return " " + d.Op.String()
	case CallData:
		return " " + d.Callee
	case ForData:
		dir := "to"
		if d.Down {
			dir = "downto"
		}
		return " " + d.Var + " " + dir
	case VarDeclData:
		return " " + strings.Join(d.Names, ",")
	case FuncDeclData:
		if d.Forward {
			return " " + d.Name + " (forward)"
		}
		return " " + d.Name
	case TypeDeclData:
		return " " + d.Name
	}
	return ""
}

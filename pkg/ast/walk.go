package ast

// Walk visits node and every descendant, depth-first, calling visit on
// each node before recursing into its children -- the same shape as the
// teacher's codegen.walkAST, generalized from a single-package helper
// into a reusable exported traversal since both pkg/sema and pkg/irgen
// need it.
func Walk(node *Node, visit func(*Node)) {
	if node == nil {
		return
	}
	visit(node)

	switch d := node.Data.(type) {
	case RangeLitData:
		Walk(d.Low, visit)
		Walk(d.High, visit)
	case SetLitData:
		for _, e := range d.Elems {
			Walk(e, visit)
		}
	case ArrayAccessData:
		Walk(d.Array, visit)
		for _, idx := range d.Indices {
			Walk(idx, visit)
		}
	case FieldAccessData:
		Walk(d.Record, visit)
	case DerefData:
		Walk(d.Expr, visit)
	case AddrOfData:
		Walk(d.Expr, visit)
	case BinaryOpData:
		Walk(d.Left, visit)
		Walk(d.Right, visit)
	case UnaryOpData:
		Walk(d.Expr, visit)
	case CallData:
		for _, a := range d.Args {
			Walk(a, visit)
		}
	case AssignData:
		Walk(d.Lhs, visit)
		Walk(d.Rhs, visit)
	case IfData:
		Walk(d.Cond, visit)
		Walk(d.Then, visit)
		Walk(d.Else, visit)
	case ForData:
		Walk(d.Start, visit)
		Walk(d.End, visit)
		Walk(d.Body, visit)
	case WhileData:
		Walk(d.Cond, visit)
		Walk(d.Body, visit)
	case RepeatData:
		Walk(d.Body, visit)
		Walk(d.Cond, visit)
	case WriteData:
		for _, a := range d.Args {
			Walk(a.Expr, visit)
			Walk(a.Width, visit)
			Walk(a.Precision, visit)
		}
	case ReadData:
		for _, a := range d.Args {
			Walk(a, visit)
		}
	case BlockData:
		for _, s := range d.Stmts {
			Walk(s, visit)
		}
	case FuncDeclData:
		for _, l := range d.Locals {
			Walk(l, visit)
		}
		Walk(d.Body, visit)
	case ProgramData:
		for _, t := range d.TypeDecls {
			Walk(t, visit)
		}
		for _, v := range d.VarDecls {
			Walk(v, visit)
		}
		for _, f := range d.FuncDecls {
			Walk(f, visit)
		}
		Walk(d.Body, visit)
	}
}

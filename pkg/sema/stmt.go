package sema

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/types"
)

// checkStmt type-checks a statement node. FuncDecl and TypeDecl nodes are
// handled by AnalyseProgram/analyseFuncBody directly and never reach here;
// a VarDecl appearing among the statements binds its names in the
// current scope.
func (a *Analyser) checkStmt(n *ast.Node) {
	if n == nil {
		return
	}
	switch d := n.Data.(type) {
	case ast.AssignData:
		a.checkAssign(n, d)
	case ast.IfData:
		a.checkIf(d)
	case ast.ForData:
		a.checkFor(n, d)
	case ast.WhileData:
		a.checkWhile(d)
	case ast.RepeatData:
		a.checkRepeat(d)
	case ast.WriteData:
		a.checkWrite(d)
	case ast.ReadData:
		a.checkRead(n, d)
	case ast.BlockData:
		for _, s := range d.Stmts {
			a.checkStmt(s)
		}
	case ast.VarDeclData:
		a.checkVarDecl(n)
	default:
		a.Diags.Internalf(n.Pos, "checkStmt: unhandled node kind %v", n.Kind)
	}
}

// checkAssign implements spec.md §4.4's CheckAssignExpr: the destination
// must be an lvalue (1), a range destination accepts an in-bounds integer
// literal source the way a binary range comparison does (2), a pointer
// destination accepts a nil literal (3), a string-like destination accepts
// a string-like source, except that a char-array destination accepts a
// string literal only when its element count equals the literal's length
// (4), a set
// destination with a still-unresolved range or subtype adopts the source
// set's (5), and everything else falls back to AssignableType (6).
func (a *Analyser) checkAssign(n *ast.Node, d ast.AssignData) {
	if !ast.IsLValue(d.Lhs) {
		a.Diags.Errorf(n.Pos, "left hand side of assignment must be an addressable location")
	}
	lty := a.checkExpr(d.Lhs)
	rty := a.checkExpr(d.Rhs)

	if lty.IsRange() {
		if v, ok := isIntLit(d.Rhs); ok {
			a.checkLiteralInRange(n, lty, v)
			return
		}
	}

	if lty.RawKind() == types.KindPointer && isNilLit(d.Rhs) {
		return
	}

	if lty.IsStringLike() && rty.IsStringLike() {
		if lit, ok := d.Rhs.Data.(ast.StringLitData); ok && lty.RawKind() == types.KindArray {
			count := int64(1)
			for _, r := range lty.Dims() {
				count *= r.Size()
			}
			if count != int64(len(lit.Value)) {
				a.Diags.Errorf(n.Pos, "string literal length does not match the array size")
			}
		}
		return
	}

	if lty.RawKind() == types.KindSet && rty.RawKind() == types.KindSet {
		if lty.SetSubType() == nil && rty.SetSubType() != nil {
			lty.SetElemType(rty.SetSubType())
		}
		if lty.GetRange() == nil && rty.GetRange() != nil {
			lty.SetRange(rty.GetRange())
		}
		return
	}

	if lty.AssignableType(rty) == nil {
		a.Diags.Errorf(n.Pos, "cannot assign a value of one type to a variable of an incompatible type")
	}
}

func (a *Analyser) checkIf(d ast.IfData) {
	cty := a.checkExpr(d.Cond)
	if cty.Kind() != types.KindBoolean {
		a.Diags.Errorf(d.Cond.Pos, "if condition must be boolean")
	}
	a.checkStmt(d.Then)
	if d.Else != nil {
		a.checkStmt(d.Else)
	}
}

// checkFor looks the loop variable up in the enclosing scope (a for loop
// introduces no new scope of its own, matching the original's reuse of the
// control variable's existing declaration) and checks that the bounds are
// integral and that the loop variable itself is.
func (a *Analyser) checkFor(n *ast.Node, d ast.ForData) {
	vty, ok := a.findVar(d.Var)
	if !ok {
		a.Diags.Errorf(n.Pos, "undeclared identifier %q", d.Var)
		vty = errorType
	} else if !vty.IsIntegral() {
		a.Diags.Errorf(n.Pos, "for loop variable must be of an integral type")
	}
	sty := a.checkExpr(d.Start)
	ety := a.checkExpr(d.End)
	if !sty.IsIntegral() || !ety.IsIntegral() {
		a.Diags.Errorf(n.Pos, "for loop bounds must be integral")
	}
	a.checkStmt(d.Body)
}

func (a *Analyser) checkWhile(d ast.WhileData) {
	cty := a.checkExpr(d.Cond)
	if cty.Kind() != types.KindBoolean {
		a.Diags.Errorf(d.Cond.Pos, "while condition must be boolean")
	}
	a.checkStmt(d.Body)
}

func (a *Analyser) checkRepeat(d ast.RepeatData) {
	a.checkStmt(d.Body)
	cty := a.checkExpr(d.Cond)
	if cty.Kind() != types.KindBoolean {
		a.Diags.Errorf(d.Cond.Pos, "repeat-until condition must be boolean")
	}
}

func (a *Analyser) checkWrite(d ast.WriteData) {
	for _, arg := range d.Args {
		t := a.checkExpr(arg.Expr)
		if !t.IsIntegral() && t.Kind() != types.KindReal && !t.IsStringLike() {
			a.Diags.Errorf(arg.Expr.Pos, "value is not writable")
		}
		if arg.Width != nil {
			if wt := a.checkExpr(arg.Width); !wt.IsIntegral() {
				a.Diags.Errorf(arg.Width.Pos, "field width must be integral")
			}
		}
		if arg.Precision != nil {
			if pt := a.checkExpr(arg.Precision); !pt.IsIntegral() {
				a.Diags.Errorf(arg.Precision.Pos, "precision must be integral")
			}
		}
	}
}

func (a *Analyser) checkRead(n *ast.Node, d ast.ReadData) {
	for _, arg := range d.Args {
		if !ast.IsLValue(arg) {
			a.Diags.Errorf(n.Pos, "read/readln arguments must be addressable")
			continue
		}
		a.checkExpr(arg)
	}
}

package sema

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/token"
	"lacsap/pkg/types"
)

// errorType stands in for "could not determine a type" so that analysis
// can continue past a lookup failure instead of panicking (spec.md §7:
// "analysis and lowering continue so more errors can be surfaced").
var errorType = types.NewVoidType()

// checkExpr computes and caches n.Typ, recursing into subexpressions
// first (bottom-up, matching the original visitor's post-order accept).
func (a *Analyser) checkExpr(n *ast.Node) *types.Type {
	if n == nil {
		return errorType
	}
	if n.Typ != nil {
		return n.Typ
	}
	var t *types.Type
	switch d := n.Data.(type) {
	case ast.IntLitData:
		t = types.NewIntegerType()
	case ast.RealLitData:
		t = types.NewRealType()
	case ast.CharLitData:
		t = types.NewCharType()
	case ast.StringLitData:
		t = types.NewStringType(255)
	case ast.NilLitData:
		t = errorType // nil carries no static type of its own; see isNilLit
	case ast.IdentData:
		t = a.checkIdent(n, d)
	case ast.RangeLitData:
		t = a.checkRangeLit(n, d)
	case ast.SetLitData:
		t = a.checkSetLit(n, d)
	case ast.ArrayAccessData:
		t = a.checkArrayAccess(n, d)
	case ast.FieldAccessData:
		t = a.checkFieldAccess(n, d)
	case ast.DerefData:
		t = a.checkDeref(n, d)
	case ast.AddrOfData:
		t = a.checkAddrOf(n, d)
	case ast.BinaryOpData:
		t = a.checkBinExpr(n, d)
	case ast.UnaryOpData:
		t = a.checkUnaryOp(n, d)
	case ast.CallData:
		t = a.checkCall(n, d)
	default:
		t = errorType
	}
	n.Typ = t
	return t
}

func (a *Analyser) checkIdent(n *ast.Node, d ast.IdentData) *types.Type {
	if t, ok := a.findVar(d.Name); ok {
		return t
	}
	if owner, ok := a.Reg.FindEnumValue(d.Name); ok {
		return owner
	}
	a.Diags.Errorf(n.Pos, "undeclared identifier %q", d.Name)
	return errorType
}

func (a *Analyser) checkRangeLit(n *ast.Node, d ast.RangeLitData) *types.Type {
	lo := a.checkExpr(d.Low)
	hi := a.checkExpr(d.High)
	if !lo.SameAs(hi) {
		a.Diags.Errorf(n.Pos, "range should be same type at both ends")
	}
	return lo
}

// checkSetLit mirrors CheckSetExpr: if the literal's element range is
// still unknown once a subtype has been established, derive one from the
// subtype's own range, clamp to MaxSetSize, and enqueue a fixup that
// writes the derived range back into the node's type once analysis of
// the whole unit (and any later-discovered subtype) has settled.
func (a *Analyser) checkSetLit(n *ast.Node, d ast.SetLitData) *types.Type {
	var subtype *types.Type
	for _, elem := range d.Elems {
		et := a.checkExpr(elem)
		if subtype == nil {
			subtype = et
			continue
		}
		if !subtype.SameAs(et) {
			a.Diags.Errorf(n.Pos, "set elements must share a single type")
		}
	}
	set := types.NewSetType(subtype, nil)

	if set.GetRange() == nil && subtype != nil {
		a.AddFixup(func() {
			if set.GetRange() != nil {
				return
			}
			r := a.clampToMaxSetSize(subtype.GetRange())
			if r != nil {
				set.SetRange(r)
			}
		})
	}
	return set
}

func (a *Analyser) clampToMaxSetSize(r *types.Range) *types.Range {
	if r == nil {
		return nil
	}
	maxSetSize := int64(a.Cfg.MaxSetSize)
	if r.Size() <= maxSetSize {
		return r
	}
	clamped, _ := types.NewRange(0, int32(maxSetSize-1))
	return clamped
}

func (a *Analyser) checkArrayAccess(n *ast.Node, d ast.ArrayAccessData) *types.Type {
	arr := a.checkExpr(d.Array)
	if arr.Kind() != types.KindArray && arr.RawKind() != types.KindString {
		if arr != errorType {
			a.Diags.Errorf(n.Pos, "cannot index a non-array type")
		}
	}
	for _, idx := range d.Indices {
		it := a.checkExpr(idx)
		if !it.IsIntegral() {
			a.Diags.Errorf(n.Pos, "array index must be integral")
		}
	}
	if len(d.Indices) != len(arr.Dims()) && len(arr.Dims()) > 0 {
		a.Diags.Errorf(n.Pos, "wrong number of array indices")
	}
	if sub := arr.SubType(); sub != nil {
		return sub
	}
	return errorType
}

func (a *Analyser) checkFieldAccess(n *ast.Node, d ast.FieldAccessData) *types.Type {
	rec := a.checkExpr(d.Record)
	switch rec.RawKind() {
	case types.KindRecord, types.KindVariant, types.KindClass:
	default:
		if rec != errorType {
			a.Diags.Errorf(n.Pos, "cannot access a field of a non-record type")
		}
		return errorType
	}
	idx, owner, ok := rec.FieldIndex(d.Field)
	if !ok {
		a.Diags.Errorf(n.Pos, "no field named %q", d.Field)
		return errorType
	}
	return owner.Fields()[idx].Type
}

func (a *Analyser) checkDeref(n *ast.Node, d ast.DerefData) *types.Type {
	t := a.checkExpr(d.Expr)
	if t.RawKind() != types.KindPointer {
		if t != errorType {
			a.Diags.Errorf(n.Pos, "cannot dereference a non-pointer type")
		}
		return errorType
	}
	if t.IsIncomplete() {
		a.Diags.Errorf(n.Pos, "dereference of an unresolved forward pointer")
		return errorType
	}
	return t.SubType()
}

func (a *Analyser) checkAddrOf(n *ast.Node, d ast.AddrOfData) *types.Type {
	if !ast.IsLValue(d.Expr) {
		a.Diags.Errorf(n.Pos, "@ requires an addressable expression")
		return errorType
	}
	inner := a.checkExpr(d.Expr)
	return types.NewPointerType(inner)
}

func (a *Analyser) checkUnaryOp(n *ast.Node, d ast.UnaryOpData) *types.Type {
	t := a.checkExpr(d.Expr)
	switch d.Op {
	case token.Not:
		if t.RawKind() != types.KindBoolean {
			a.Diags.Errorf(n.Pos, "'not' requires a boolean operand")
		}
		return types.NewBooleanType()
	case token.Minus:
		if !t.IsIntegral() && t.Kind() != types.KindReal {
			a.Diags.Errorf(n.Pos, "unary minus requires a numeric operand")
		}
		return t
	}
	return t
}

func (a *Analyser) checkCall(n *ast.Node, d ast.CallData) *types.Type {
	fn, ok := a.findVar(d.Callee)
	if !ok {
		a.Diags.Errorf(n.Pos, "call to undeclared function %q", d.Callee)
		for _, arg := range d.Args {
			a.checkExpr(arg)
		}
		return errorType
	}
	params := fn.Params()
	if len(params) != len(d.Args) {
		a.Diags.Errorf(n.Pos, "wrong number of arguments to %q", d.Callee)
	}
	for i, arg := range d.Args {
		at := a.checkExpr(arg)
		if i >= len(params) {
			continue
		}
		p := params[i]
		if p.ByRef && !ast.IsLValue(arg) {
			a.Diags.Errorf(arg.Pos, "argument %d to %q is by-reference and requires a variable", i+1, d.Callee)
			continue
		}
		if p.Type.AssignableType(at) == nil && !p.Type.SameAs(at) {
			a.Diags.Errorf(arg.Pos, "argument %d to %q has incompatible type", i+1, d.Callee)
		}
	}
	if fn.Result() != nil {
		return fn.Result()
	}
	return errorType
}

func isIntLit(n *ast.Node) (int64, bool) {
	if n == nil {
		return 0, false
	}
	if d, ok := n.Data.(ast.IntLitData); ok {
		return d.Value, true
	}
	return 0, false
}

func isNilLit(n *ast.Node) bool {
	if n == nil {
		return false
	}
	_, ok := n.Data.(ast.NilLitData)
	return ok
}

// checkBinExpr implements spec.md §4.4's binary-expression algorithm,
// steps 1-8, line-for-line grounded on CheckBinExpr.
func (a *Analyser) checkBinExpr(n *ast.Node, d ast.BinaryOpData) *types.Type {
	lty := a.checkExpr(d.Left)
	rty := a.checkExpr(d.Right)

	if d.Op == token.In {
		return a.checkInExpr(n, lty, rty)
	}

	if lty.RawKind() == types.KindSet && rty.RawKind() == types.KindSet {
		return a.unifySets(n, d.Left, d.Right, lty, rty)
	}

	if d.Op == token.Plus && lty.Kind() == types.KindChar && rty.Kind() == types.KindChar {
		return types.NewStringType(255)
	}

	if (lty.RawKind() == types.KindPointer && isNilLit(d.Right)) ||
		(rty.RawKind() == types.KindPointer && isNilLit(d.Left)) {
		if d.Op == token.Equal || d.Op == token.NotEqual {
			if lty.RawKind() == types.KindPointer {
				return lty
			}
			return rty
		}
	}

	// REDESIGN FLAG (spec.md §9): the range-vs-integer-literal check runs
	// symmetrically on both operand orders, not only left-range/right-literal.
	if lty.IsRange() {
		if v, ok := isIntLit(d.Right); ok {
			a.checkLiteralInRange(n, lty, v)
			return lty
		}
	}
	if rty.IsRange() {
		if v, ok := isIntLit(d.Left); ok {
			a.checkLiteralInRange(n, rty, v)
			return rty
		}
	}

	if result := lty.CompatibleType(rty); result != nil {
		return result
	}
	a.Diags.Errorf(n.Pos, "incompatible type in expression")
	return errorType
}

func (a *Analyser) checkLiteralInRange(n *ast.Node, rangeType *types.Type, v int64) {
	r := rangeType.GetRange()
	if r == nil {
		return
	}
	if v < int64(r.Start) || v > int64(r.End) {
		a.Diags.Errorf(n.Pos, "value %d out of range", v)
	}
}

func (a *Analyser) checkInExpr(n *ast.Node, lty, rty *types.Type) *types.Type {
	if !lty.IsIntegral() {
		a.Diags.Errorf(n.Pos, "left hand of 'in' expression should be integral")
	}
	if rty.RawKind() != types.KindSet {
		a.Diags.Errorf(n.Pos, "right hand of 'in' expression should be a set")
		return types.NewBooleanType()
	}
	if sub := rty.SetSubType(); sub != nil && !lty.SameAs(sub) {
		a.Diags.Errorf(n.Pos, "left hand type does not match constituent parts of set")
	}
	if rty.GetRange() == nil {
		r := a.clampToMaxSetSize(lty.GetRange())
		if r != nil {
			rty.SetRange(r)
		}
	}
	return types.NewBooleanType()
}

// unifySets mirrors the set+set arm of CheckBinExpr: an empty set
// literal on either side adopts the other side's subtype, subtypes must
// then agree, and a still-missing range is copied from whichever side
// has one (preferring the right operand), clamped to MaxSetSize.
func (a *Analyser) unifySets(n *ast.Node, leftNode, rightNode *ast.Node, lty, rty *types.Type) *types.Type {
	if isEmptySetLit(leftNode) && rty.SetSubType() != nil && lty.SetSubType() == nil {
		lty.SetElemType(rty.SetSubType())
	}
	if isEmptySetLit(rightNode) && lty.SetSubType() != nil && rty.SetSubType() == nil {
		rty.SetElemType(lty.SetSubType())
	}

	if lty.SetSubType() != nil && rty.SetSubType() != nil && !lty.SetSubType().SameAs(rty.SetSubType()) {
		a.Diags.Errorf(n.Pos, "set type content isn't the same")
	}

	if lty.GetRange() == nil {
		r := rty.GetRange()
		if r == nil && rty.SetSubType() != nil {
			r = a.clampToMaxSetSize(rty.SetSubType().GetRange())
		}
		if r != nil {
			lty.SetRange(r)
		}
	}
	if rty.GetRange() == nil {
		if r := lty.GetRange(); r != nil {
			rty.SetRange(r)
		}
	}
	return rty
}

func isEmptySetLit(n *ast.Node) bool {
	d, ok := n.Data.(ast.SetLitData)
	return ok && len(d.Elems) == 0
}

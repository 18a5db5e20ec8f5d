package irgen

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/ir"
	"lacsap/pkg/token"
	"lacsap/pkg/types"
)

// lowerExpr lowers n to the SSA value it evaluates to (spec.md §4.5).
// Lvalue node kinds delegate to lowerAddress and then load through it;
// every other kind computes its value directly.
func (c *Context) lowerExpr(n *ast.Node) ir.Value {
	switch d := n.Data.(type) {
	case ast.IntLitData:
		return &ir.Const{Value: d.Value, Typ: &ir.Type{Kind: ir.I32}}
	case ast.RealLitData:
		return &ir.FloatConst{Value: d.Value, Typ: &ir.Type{Kind: ir.Double}}
	case ast.CharLitData:
		return &ir.Const{Value: int64(d.Value), Typ: &ir.Type{Kind: ir.I8}}
	case ast.StringLitData:
		return c.Prog.StringGlobal(d.Value)
	case ast.NilLitData:
		return &ir.Const{Value: 0, Typ: &ir.Type{Kind: ir.Ptr}}
	case ast.BinaryOpData:
		return c.lowerBinaryOp(n, d)
	case ast.UnaryOpData:
		return c.lowerUnaryOp(n, d)
	case ast.CallData:
		return c.lowerCall(n, d)
	case ast.SetLitData:
		return c.lowerSetLit(n, d)
	case ast.IdentData, ast.DerefData, ast.ArrayAccessData, ast.FieldAccessData:
		addr, t := c.lowerAddress(n)
		return c.load(addr, t)
	case ast.AddrOfData:
		addr, _ := c.lowerAddress(d.Expr)
		return addr
	}
	c.Diags.Internalf(n.Pos, "lowerExpr: unhandled node kind %v", n.Kind)
	return &ir.Const{Value: 0}
}

// lowerAddress computes the pointer to an lvalue's storage and the
// source type stored there, the one Address() contract spec.md §9 calls
// for every addressable node to share.
func (c *Context) lowerAddress(n *ast.Node) (ir.Value, *types.Type) {
	switch d := n.Data.(type) {
	case ast.IdentData:
		t, addr, ok := c.findDecl(d.Name)
		if !ok {
			c.Diags.Internalf(n.Pos, "lowerAddress: undeclared identifier %q reached lowering", d.Name)
			return &ir.Const{Value: 0}, types.NewVoidType()
		}
		return addr, t
	case ast.DerefData:
		ptr := c.lowerExpr(d.Expr)
		return ptr, n.Typ
	case ast.ArrayAccessData:
		return c.lowerArrayAddress(n, d)
	case ast.FieldAccessData:
		return c.lowerFieldAddress(n, d)
	}
	c.Diags.Internalf(n.Pos, "lowerAddress: node kind %v is not an lvalue", n.Kind)
	return &ir.Const{Value: 0}, types.NewVoidType()
}

// lowerArrayAddress implements spec.md §4.5's multi-dimensional array
// addressing: indices are shifted to an origin of zero against each
// dimension's declared lower bound, weighted by that dimension's stride
// (the element size times the sizes of every dimension to its right), and
// summed into a single byte offset added to the array's base address via
// a byte-indexed GEP.
func (c *Context) lowerArrayAddress(n *ast.Node, d ast.ArrayAccessData) (ir.Value, *types.Type) {
	base, arrType := c.lowerAddress(d.Array)
	dims := arrType.Dims()
	elemType := arrType.SubType()
	elemSize := elemType.Size()

	stride := elemSize
	strides := make([]int64, len(dims))
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= dims[i].Size()
	}

	var offset ir.Value = &ir.Const{Value: 0, Typ: &ir.Type{Kind: ir.I64}}
	for i, idxNode := range d.Indices {
		idx := c.lowerExpr(idxNode)
		lower := &ir.Const{Value: int64(dims[i].Start), Typ: &ir.Type{Kind: ir.I32}}
		shifted := c.newTemp(&ir.Type{Kind: ir.I32})
		c.emit(&ir.Instruction{Op: ir.OpSub, Typ: &ir.Type{Kind: ir.I32}, Result: shifted, Args: []ir.Value{idx, lower}})

		scaled := c.newTemp(&ir.Type{Kind: ir.I64})
		c.emit(&ir.Instruction{Op: ir.OpMul, Typ: &ir.Type{Kind: ir.I64}, Result: scaled, Args: []ir.Value{shifted, &ir.Const{Value: strides[i], Typ: &ir.Type{Kind: ir.I64}}}})

		summed := c.newTemp(&ir.Type{Kind: ir.I64})
		c.emit(&ir.Instruction{Op: ir.OpAdd, Typ: &ir.Type{Kind: ir.I64}, Result: summed, Args: []ir.Value{offset, scaled}})
		offset = summed
	}

	addr := c.newTemp(&ir.Type{Kind: ir.Ptr, Elem: c.irTypeOf(elemType)})
	c.emit(&ir.Instruction{Op: ir.OpGEP, Result: addr, Args: []ir.Value{base, offset}})
	return addr, elemType
}

func (c *Context) lowerFieldAddress(n *ast.Node, d ast.FieldAccessData) (ir.Value, *types.Type) {
	recType := d.Record.Typ
	var base ir.Value
	if recType != nil && recType.RawKind() == types.KindPointer {
		base = c.lowerExpr(d.Record)
		recType = recType.SubType()
	} else {
		base, _ = c.lowerAddress(d.Record)
	}

	idx, owner, ok := recType.FieldIndex(d.Field)
	if !ok {
		c.Diags.Internalf(n.Pos, "lowerFieldAddress: field %q missing after analysis", d.Field)
		return base, types.NewVoidType()
	}
	fieldType := owner.Fields()[idx].Type

	addr := c.newTemp(&ir.Type{Kind: ir.Ptr, Elem: c.irTypeOf(fieldType)})
	c.emit(&ir.Instruction{Op: ir.OpGEP, Result: addr, Args: []ir.Value{base}, GEPIndex: []int64{int64(idx)}})
	return addr, fieldType
}

func (c *Context) lowerUnaryOp(n *ast.Node, d ast.UnaryOpData) ir.Value {
	v := c.lowerExpr(d.Expr)
	switch d.Op {
	case token.Not:
		res := c.newTemp(&ir.Type{Kind: ir.I8})
		c.emit(&ir.Instruction{Op: ir.OpNot, Typ: &ir.Type{Kind: ir.I8}, Result: res, Args: []ir.Value{v}})
		return res
	case token.Minus:
		if n.Typ.Kind() == types.KindReal {
			res := c.newTemp(&ir.Type{Kind: ir.Double})
			c.emit(&ir.Instruction{Op: ir.OpFNeg, Typ: &ir.Type{Kind: ir.Double}, Result: res, Args: []ir.Value{v}})
			return res
		}
		irt := c.irTypeOf(n.Typ)
		res := c.newTemp(irt)
		c.emit(&ir.Instruction{Op: ir.OpNeg, Typ: irt, Result: res, Args: []ir.Value{v}})
		return res
	}
	return v
}

var intCmpOps = map[token.Kind]ir.Op{
	token.Equal: ir.OpICmpEQ, token.NotEqual: ir.OpICmpNE,
	token.Less: ir.OpICmpSLT, token.Greater: ir.OpICmpSGT,
	token.LessEq: ir.OpICmpSLE, token.GreaterEq: ir.OpICmpSGE,
}

var floatCmpOps = map[token.Kind]ir.Op{
	token.Equal: ir.OpFCmpOEQ, token.NotEqual: ir.OpFCmpONE,
	token.Less: ir.OpFCmpOLT, token.Greater: ir.OpFCmpOGT,
	token.LessEq: ir.OpFCmpOLE, token.GreaterEq: ir.OpFCmpOGE,
}

var intArithOps = map[token.Kind]ir.Op{
	token.Plus: ir.OpAdd, token.Minus: ir.OpSub, token.Star: ir.OpMul,
	token.Div: ir.OpSDiv, token.Mod: ir.OpSRem,
}

var floatArithOps = map[token.Kind]ir.Op{
	token.Plus: ir.OpFAdd, token.Minus: ir.OpFSub, token.Star: ir.OpFMul, token.Slash: ir.OpFDiv,
}

var logicalOps = map[token.Kind]ir.Op{
	token.And: ir.OpAnd, token.Or: ir.OpOr, token.Xor: ir.OpXor,
}

func (c *Context) lowerBinaryOp(n *ast.Node, d ast.BinaryOpData) ir.Value {
	if d.Op == token.In {
		return c.lowerSetMembership(d)
	}
	if d.Left.Typ != nil && d.Left.Typ.RawKind() == types.KindSet {
		return c.lowerSetBinOp(n, d)
	}

	isFloat := n.Typ.Kind() == types.KindReal || (d.Left.Typ != nil && d.Left.Typ.Kind() == types.KindReal)

	lv := c.lowerExpr(d.Left)
	rv := c.lowerExpr(d.Right)
	if isFloat {
		lv = c.toFloat(lv, d.Left.Typ)
		rv = c.toFloat(rv, d.Right.Typ)
	}

	if op, ok := logicalOps[d.Op]; ok {
		irt := &ir.Type{Kind: ir.I8}
		res := c.newTemp(irt)
		c.emit(&ir.Instruction{Op: op, Typ: irt, Result: res, Args: []ir.Value{lv, rv}})
		return res
	}

	if d.Op.IsRelational() {
		res := c.newTemp(&ir.Type{Kind: ir.I1})
		if isFloat {
			c.emit(&ir.Instruction{Op: floatCmpOps[d.Op], Typ: &ir.Type{Kind: ir.Double}, Result: res, Args: []ir.Value{lv, rv}})
		} else {
			c.emit(&ir.Instruction{Op: intCmpOps[d.Op], Typ: &ir.Type{Kind: ir.I32}, Result: res, Args: []ir.Value{lv, rv}})
		}
		return res
	}

	if isFloat {
		irt := &ir.Type{Kind: ir.Double}
		res := c.newTemp(irt)
		c.emit(&ir.Instruction{Op: floatArithOps[d.Op], Typ: irt, Result: res, Args: []ir.Value{lv, rv}})
		return res
	}
	irt := c.irTypeOf(n.Typ)
	res := c.newTemp(irt)
	c.emit(&ir.Instruction{Op: intArithOps[d.Op], Typ: irt, Result: res, Args: []ir.Value{lv, rv}})
	return res
}

func (c *Context) toFloat(v ir.Value, srcType *types.Type) ir.Value {
	if srcType != nil && srcType.Kind() == types.KindReal {
		return v
	}
	res := c.newTemp(&ir.Type{Kind: ir.Double})
	c.emit(&ir.Instruction{Op: ir.OpSIToFP, Typ: &ir.Type{Kind: ir.Double}, Result: res, Args: []ir.Value{v}})
	return res
}

// lowerCall lowers both ordinary function calls and the small built-in
// dispatch table (spec.md §4.6); user functions take priority so a
// program can never accidentally shadow a name it did not declare.
func (c *Context) lowerCall(n *ast.Node, d ast.CallData) ir.Value {
	sig, isUserFunc := c.funcSigs[d.Callee]
	if b, ok := builtins[d.Callee]; ok && !isUserFunc {
		return b(c, n, d.Args)
	}

	var params []*types.Param
	if isUserFunc {
		params = sig.Params()
	}
	args := make([]ir.Value, len(d.Args))
	for i, a := range d.Args {
		args[i] = c.lowerCallArg(a, params, i)
	}
	var resultType *ir.Type
	if n.Typ != nil && n.Typ.Kind() != types.KindVoid {
		resultType = c.irTypeOf(n.Typ)
	}
	var result ir.Value
	if resultType != nil {
		result = c.newTemp(resultType)
	}
	c.emit(&ir.Instruction{Op: ir.OpCall, Typ: resultType, Result: result, Args: args, Callee: d.Callee})
	return result
}

// lowerCallArg passes an address for a by-reference parameter and a
// loaded value for everything else, using the callee's own signature
// (already validated compatible by pkg/sema) to tell them apart.
func (c *Context) lowerCallArg(arg *ast.Node, params []*types.Param, i int) ir.Value {
	if i < len(params) && params[i].ByRef {
		addr, _ := c.lowerAddress(arg)
		return addr
	}
	return c.lowerExpr(arg)
}

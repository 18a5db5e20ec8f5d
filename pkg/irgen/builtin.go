package irgen

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/ir"
	"lacsap/pkg/types"
)

// Builtin lowers one intrinsic call from its already type-checked
// argument nodes (each builtin lowers its own arguments), in the style of the teacher's small name -> codegen-function
// dispatch table for compiler-recognized builtins (spec.md §4.6 "a
// handful of intrinsics are recognized by name rather than declared").
type Builtin func(c *Context, call *ast.Node, args []*ast.Node) ir.Value

var builtins map[string]Builtin

func init() {
	builtins = map[string]Builtin{
		"abs": builtinAbs,
		"sqr": builtinSqr,
		"odd": builtinOdd,
	}
}

func builtinAbs(c *Context, call *ast.Node, args []*ast.Node) ir.Value {
	v := c.lowerExpr(args[0])
	if args[0].Typ.Kind() == types.KindReal {
		zero := &ir.FloatConst{Value: 0, Typ: &ir.Type{Kind: ir.Double}}
		neg := c.newTemp(&ir.Type{Kind: ir.Double})
		c.emit(&ir.Instruction{Op: ir.OpFSub, Typ: &ir.Type{Kind: ir.Double}, Result: neg, Args: []ir.Value{zero, v}})
		return c.selectNonNegative(v, neg, args[0].Typ, true)
	}
	irt := c.irTypeOf(args[0].Typ)
	zero := &ir.Const{Value: 0, Typ: irt}
	neg := c.newTemp(irt)
	c.emit(&ir.Instruction{Op: ir.OpSub, Typ: irt, Result: neg, Args: []ir.Value{zero, v}})
	return c.selectNonNegative(v, neg, args[0].Typ, false)
}

// selectNonNegative picks v when v >= 0 and neg otherwise, lowered as a
// compare plus a branch into a join block with a phi, since this IR has
// no select instruction of its own.
func (c *Context) selectNonNegative(v, neg ir.Value, srcType *types.Type, isFloat bool) ir.Value {
	irt := c.irTypeOf(srcType)
	cmp := c.newTemp(&ir.Type{Kind: ir.I1})
	zero := v.ValueType()
	if isFloat {
		c.emit(&ir.Instruction{Op: ir.OpFCmpOGE, Typ: zero, Result: cmp, Args: []ir.Value{v, &ir.FloatConst{Value: 0, Typ: &ir.Type{Kind: ir.Double}}}})
	} else {
		c.emit(&ir.Instruction{Op: ir.OpICmpSGE, Typ: zero, Result: cmp, Args: []ir.Value{v, &ir.Const{Value: 0, Typ: irt}}})
	}

	posL, negL, joinL := c.newLabel("abs.pos"), c.newLabel("abs.neg"), c.newLabel("abs.join")
	c.emit(&ir.Instruction{Op: ir.OpCondBr, Args: []ir.Value{cmp}, Targets: []*ir.Label{posL, negL}})

	c.startBlock(posL)
	c.emit(&ir.Instruction{Op: ir.OpBr, Targets: []*ir.Label{joinL}})

	c.startBlock(negL)
	c.emit(&ir.Instruction{Op: ir.OpBr, Targets: []*ir.Label{joinL}})

	c.startBlock(joinL)
	res := c.newTemp(irt)
	c.emit(&ir.Instruction{Op: ir.OpPhi, Typ: irt, Result: res, Args: []ir.Value{v, neg}, Targets: []*ir.Label{posL, negL}})
	return res
}

func builtinSqr(c *Context, call *ast.Node, args []*ast.Node) ir.Value {
	v := c.lowerExpr(args[0])
	if args[0].Typ.Kind() == types.KindReal {
		res := c.newTemp(&ir.Type{Kind: ir.Double})
		c.emit(&ir.Instruction{Op: ir.OpFMul, Typ: &ir.Type{Kind: ir.Double}, Result: res, Args: []ir.Value{v, v}})
		return res
	}
	irt := c.irTypeOf(args[0].Typ)
	res := c.newTemp(irt)
	c.emit(&ir.Instruction{Op: ir.OpMul, Typ: irt, Result: res, Args: []ir.Value{v, v}})
	return res
}

// builtinOdd reports whether an integer's lowest bit is set, via a
// modulo-by-two-then-compare rather than a bitwise AND with 1.
func builtinOdd(c *Context, call *ast.Node, args []*ast.Node) ir.Value {
	v := c.lowerExpr(args[0])
	irt := c.irTypeOf(args[0].Typ)
	rem := c.newTemp(irt)
	c.emit(&ir.Instruction{Op: ir.OpSRem, Typ: irt, Result: rem, Args: []ir.Value{v, &ir.Const{Value: 2, Typ: irt}}})
	res := c.newTemp(&ir.Type{Kind: ir.I1})
	c.emit(&ir.Instruction{Op: ir.OpICmpNE, Typ: irt, Result: res, Args: []ir.Value{rem, &ir.Const{Value: 0, Typ: irt}}})
	return res
}

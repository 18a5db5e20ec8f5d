package irgen

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/ir"
	"lacsap/pkg/token"
)

// Sets lower to a fixed-size bitmap (spec.md §3 "MaxSetSize" / §4.5
// "sets lower to an array of 32-bit words"); the bit-twiddling itself is
// delegated to a small runtime support library declared as externs
// (__set_clear/__set_add/__set_add_range/__set_contains/__set_union/
// __set_intersect/__set_diff/__set_equal) rather than inlined with shift
// instructions this IR's Op enum does not carry, the same "declare once,
// call at each use site" shape spec.md §4.5 already prescribes for
// write/read.
var (
	setPtrType = &ir.Type{Kind: ir.Ptr}
	i32Type    = &ir.Type{Kind: ir.I32}
)

func (c *Context) setExtern(name string, paramTypes []*ir.Type, result *ir.Type) *ir.Extern {
	return c.Prog.DeclareExtern(name, paramTypes, result)
}

// lowerSetLit allocates storage for the literal, clears it, and adds
// each member (a plain expression or a sub-range) through the runtime
// helpers.
func (c *Context) lowerSetLit(n *ast.Node, d ast.SetLitData) ir.Value {
	setType := n.Typ
	addr := c.alloca(setType)

	clear := c.setExtern("__set_clear", []*ir.Type{setPtrType}, nil)
	c.emit(&ir.Instruction{Op: ir.OpCall, Callee: clear.Name, Args: []ir.Value{addr}})

	for _, elem := range d.Elems {
		if rd, ok := elem.Data.(ast.RangeLitData); ok {
			lo := c.lowerExpr(rd.Low)
			hi := c.lowerExpr(rd.High)
			ext := c.setExtern("__set_add_range", []*ir.Type{setPtrType, i32Type, i32Type}, nil)
			c.emit(&ir.Instruction{Op: ir.OpCall, Callee: ext.Name, Args: []ir.Value{addr, lo, hi}})
			continue
		}
		v := c.lowerExpr(elem)
		ext := c.setExtern("__set_add", []*ir.Type{setPtrType, i32Type}, nil)
		c.emit(&ir.Instruction{Op: ir.OpCall, Callee: ext.Name, Args: []ir.Value{addr, v}})
	}
	return addr
}

func (c *Context) lowerSetMembership(d ast.BinaryOpData) ir.Value {
	v := c.lowerExpr(d.Left)
	setAddr, _ := c.lowerAddress(d.Right)
	ext := c.setExtern("__set_contains", []*ir.Type{setPtrType, i32Type}, &ir.Type{Kind: ir.I1})
	res := c.newTemp(&ir.Type{Kind: ir.I1})
	c.emit(&ir.Instruction{Op: ir.OpCall, Typ: &ir.Type{Kind: ir.I1}, Result: res, Callee: ext.Name, Args: []ir.Value{setAddr, v}})
	return res
}

var setBinOpExtern = map[token.Kind]string{
	token.Plus:  "__set_union",
	token.Minus: "__set_diff",
	token.Star:  "__set_intersect",
}

func (c *Context) lowerSetBinOp(n *ast.Node, d ast.BinaryOpData) ir.Value {
	la, _ := c.lowerAddress(d.Left)
	ra, _ := c.lowerAddress(d.Right)

	if d.Op == token.Equal || d.Op == token.NotEqual {
		ext := c.setExtern("__set_equal", []*ir.Type{setPtrType, setPtrType}, &ir.Type{Kind: ir.I1})
		res := c.newTemp(&ir.Type{Kind: ir.I1})
		c.emit(&ir.Instruction{Op: ir.OpCall, Typ: &ir.Type{Kind: ir.I1}, Result: res, Callee: ext.Name, Args: []ir.Value{la, ra}})
		if d.Op == token.NotEqual {
			notRes := c.newTemp(&ir.Type{Kind: ir.I1})
			c.emit(&ir.Instruction{Op: ir.OpNot, Typ: &ir.Type{Kind: ir.I1}, Result: notRes, Args: []ir.Value{res}})
			return notRes
		}
		return res
	}

	name, ok := setBinOpExtern[d.Op]
	if !ok {
		c.Diags.Internalf(n.Pos, "lowerSetBinOp: unsupported set operator %v", d.Op)
		return la
	}
	dst := c.alloca(n.Typ)
	ext := c.setExtern(name, []*ir.Type{setPtrType, setPtrType, setPtrType}, nil)
	c.emit(&ir.Instruction{Op: ir.OpCall, Callee: ext.Name, Args: []ir.Value{dst, la, ra}})
	return dst
}

package irgen

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/ir"
	"lacsap/pkg/types"
)

// lowerStmt lowers one statement node (spec.md §4.5).
func (c *Context) lowerStmt(n *ast.Node) {
	if n == nil {
		return
	}
	switch d := n.Data.(type) {
	case ast.AssignData:
		c.lowerAssign(d)
	case ast.IfData:
		c.lowerIf(d)
	case ast.ForData:
		c.lowerFor(n, d)
	case ast.WhileData:
		c.lowerWhile(d)
	case ast.RepeatData:
		c.lowerRepeat(d)
	case ast.WriteData:
		c.lowerWrite(d)
	case ast.ReadData:
		c.lowerRead(d)
	case ast.BlockData:
		for _, s := range d.Stmts {
			c.lowerStmt(s)
		}
	case ast.VarDeclData:
		c.lowerLocalVarDecl(n)
	default:
		c.Diags.Internalf(n.Pos, "lowerStmt: unhandled node kind %v", n.Kind)
	}
}

func (c *Context) lowerAssign(d ast.AssignData) {
	addr, dstType := c.lowerAddress(d.Lhs)
	v := c.lowerExpr(d.Rhs)
	if dstType.Kind() == types.KindReal && d.Rhs.Typ != nil && d.Rhs.Typ.Kind() != types.KindReal {
		v = c.toFloat(v, d.Rhs.Typ)
	}
	c.store(addr, v, dstType)
}

func (c *Context) lowerIf(d ast.IfData) {
	cond := c.lowerExpr(d.Cond)
	thenL, joinL := c.newLabel("if.then"), c.newLabel("if.end")
	elseL := joinL
	if d.Else != nil {
		elseL = c.newLabel("if.else")
	}
	c.emit(&ir.Instruction{Op: ir.OpCondBr, Args: []ir.Value{cond}, Targets: []*ir.Label{thenL, elseL}})

	c.startBlock(thenL)
	c.lowerStmt(d.Then)
	c.emit(&ir.Instruction{Op: ir.OpBr, Targets: []*ir.Label{joinL}})

	if d.Else != nil {
		c.startBlock(elseL)
		c.lowerStmt(d.Else)
		c.emit(&ir.Instruction{Op: ir.OpBr, Targets: []*ir.Label{joinL}})
	}

	c.startBlock(joinL)
}

// lowerFor lowers a to/downto loop. The control variable's own storage
// (already allocated by its declaration) is reused rather than
// introducing a shadow temporary.
//
// The bound check runs AFTER the body, against the already-advanced
// control variable -- preserved as-is from the original's CodeGen rather
// than silently fixed (spec.md §9 Open Question 2): the loop body always
// executes at least once, even when start is already past end, since
// there is no guard before the first pass through loopBB.
func (c *Context) lowerFor(n *ast.Node, d ast.ForData) {
	varType, addr, ok := c.findDecl(d.Var)
	if !ok {
		c.Diags.Internalf(n.Pos, "lowerFor: undeclared loop variable %q reached lowering", d.Var)
		return
	}
	irt := c.irTypeOf(varType)

	start := c.lowerExpr(d.Start)
	c.store(addr, start, varType)

	loopL, joinL := c.newLabel("for.loop"), c.newLabel("for.end")
	c.emit(&ir.Instruction{Op: ir.OpBr, Targets: []*ir.Label{loopL}})

	c.startBlock(loopL)
	c.lowerStmt(d.Body)

	cur := c.load(addr, varType)
	step := &ir.Const{Value: 1, Typ: irt}
	stepOp := ir.OpAdd
	if d.Down {
		stepOp = ir.OpSub
	}
	next := c.newTemp(irt)
	c.emit(&ir.Instruction{Op: stepOp, Typ: irt, Result: next, Args: []ir.Value{cur, step}})
	c.store(addr, next, varType)

	end := c.lowerExpr(d.End)
	cmp := c.newTemp(&ir.Type{Kind: ir.I1})
	cmpOp := ir.OpICmpSLE
	if d.Down {
		cmpOp = ir.OpICmpSGE
	}
	c.emit(&ir.Instruction{Op: cmpOp, Typ: irt, Result: cmp, Args: []ir.Value{next, end}})
	c.emit(&ir.Instruction{Op: ir.OpCondBr, Args: []ir.Value{cmp}, Targets: []*ir.Label{loopL, joinL}})

	c.startBlock(joinL)
}

func (c *Context) lowerWhile(d ast.WhileData) {
	condL, bodyL, joinL := c.newLabel("while.cond"), c.newLabel("while.body"), c.newLabel("while.end")
	c.emit(&ir.Instruction{Op: ir.OpBr, Targets: []*ir.Label{condL}})

	c.startBlock(condL)
	cond := c.lowerExpr(d.Cond)
	c.emit(&ir.Instruction{Op: ir.OpCondBr, Args: []ir.Value{cond}, Targets: []*ir.Label{bodyL, joinL}})

	c.startBlock(bodyL)
	c.lowerStmt(d.Body)
	c.emit(&ir.Instruction{Op: ir.OpBr, Targets: []*ir.Label{condL}})

	c.startBlock(joinL)
}

func (c *Context) lowerRepeat(d ast.RepeatData) {
	bodyL, joinL := c.newLabel("repeat.body"), c.newLabel("repeat.end")
	c.emit(&ir.Instruction{Op: ir.OpBr, Targets: []*ir.Label{bodyL}})

	c.startBlock(bodyL)
	c.lowerStmt(d.Body)
	cond := c.lowerExpr(d.Cond)
	c.emit(&ir.Instruction{Op: ir.OpCondBr, Args: []ir.Value{cond}, Targets: []*ir.Label{joinL, bodyL}})

	c.startBlock(joinL)
}

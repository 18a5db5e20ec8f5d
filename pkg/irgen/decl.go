package irgen

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/ir"
)

// lowerGlobalVarDecl emits one internal-linkage ir.Data per declared
// name, zero-initialized, and binds each name's address in the
// file-scope environment level (spec.md §4.5 "module-scope variables
// lower to an internally-linked, zero-initialized global").
func (c *Context) lowerGlobalVarDecl(n *ast.Node) {
	vd := n.Data.(ast.VarDeclData)
	irt := c.irTypeOf(vd.Type)
	for _, name := range vd.Names {
		g := &ir.Global{Name: name, Typ: &ir.Type{Kind: ir.Ptr, Elem: irt}}
		c.Prog.Globals = append(c.Prog.Globals, &ir.Data{Name: name, Typ: irt})
		c.declare(name, vd.Type, g)
	}
}

// lowerLocalVarDecl allocates entry-block storage for each declared name
// and binds it in the current scope.
func (c *Context) lowerLocalVarDecl(n *ast.Node) {
	vd := n.Data.(ast.VarDeclData)
	for _, name := range vd.Names {
		addr := c.alloca(vd.Type)
		c.declare(name, vd.Type, addr)
	}
}

// lowerFuncDecl lowers one function/procedure body. A second, forward
// declaration of the same name is never passed here (LowerProgram only
// lowers the non-forward FuncDecl node), matching spec.md §4.5's
// "forward declarations contribute no IR of their own; only the matching
// definition does".
func (c *Context) lowerFuncDecl(n *ast.Node) {
	fd := n.Data.(ast.FuncDeclData)

	var resultType *ir.Type
	if fd.Result != nil {
		resultType = c.irTypeOf(fd.Result)
	}
	params := make([]*ir.Param, len(fd.Params))
	paramVals := make([]ir.Value, len(fd.Params))
	for i, p := range fd.Params {
		pt := c.irTypeOf(p.Type)
		if p.ByRef {
			pt = &ir.Type{Kind: ir.Ptr, Elem: pt}
		}
		params[i] = &ir.Param{Name: p.Name, Typ: pt, ByRef: p.ByRef}
		paramVals[i] = &ir.Temporary{Name: "%" + p.Name, Typ: pt}
	}

	fn := &ir.Func{Name: fd.Name, Params: params, Result: resultType}
	c.Prog.Funcs = append(c.Prog.Funcs, fn)

	outerFunc, outerBlock := c.currentFunc, c.currentBlock
	c.currentFunc = fn
	c.openScope()
	defer func() {
		c.closeScope()
		c.currentFunc, c.currentBlock = outerFunc, outerBlock
	}()
	c.startBlock(c.newLabel("entry"))

	var resultAddr ir.Value
	if fd.Result != nil {
		resultAddr = c.alloca(fd.Result)
		c.declare(fd.Name, fd.Result, resultAddr)
	}
	for i, p := range fd.Params {
		if p.ByRef {
			// The argument IS the address; bind it directly rather than
			// allocating a fresh local, so writes through the parameter
			// reach the caller's storage.
			c.declare(p.Name, p.Type, paramVals[i])
			continue
		}
		addr := c.alloca(p.Type)
		c.store(addr, paramVals[i], p.Type)
		c.declare(p.Name, p.Type, addr)
	}
	for _, local := range fd.Locals {
		c.lowerLocalVarDecl(local)
	}

	c.lowerStmt(fd.Body)

	if fd.Result != nil {
		ret := c.load(resultAddr, fd.Result)
		c.emit(&ir.Instruction{Op: ir.OpRet, Typ: resultType, Args: []ir.Value{ret}})
	} else {
		c.emit(&ir.Instruction{Op: ir.OpRetVoid})
	}
}

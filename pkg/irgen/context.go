// Package irgen lowers a type-checked AST to the SSA IR in pkg/ir
// (spec.md §4.5), grounded on xplshn-gbc/pkg/codegen.Context: a single
// struct carrying the program under construction, the current
// function/block cursor, and the scoped variable environment, with one
// lowering method per AST node kind instead of a virtual visitor.
package irgen

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/config"
	"lacsap/pkg/diag"
	"lacsap/pkg/env"
	"lacsap/pkg/ir"
	"lacsap/pkg/types"
)

// declScope tracks each visible variable's source type alongside the
// ir.Value address pkg/env.Env already tracks for it -- kept as its own
// scope chain, distinct from both types.Registry (type names) and
// pkg/sema's varScope (the analyser's own copy, already discarded by the
// time lowering runs), because lowering needs the source type to compute
// field offsets, array strides and by-value-vs-by-reference loads that
// the IR address alone cannot express.
type declScope struct {
	vars   map[string]*types.Type
	parent *declScope
}

func newDeclScope(parent *declScope) *declScope {
	return &declScope{vars: make(map[string]*types.Type), parent: parent}
}

// Context is the CompileContext spec.md §9 calls for: the single struct
// gathering every piece of mutable state a lowering pass needs, so that
// no lowering method threads more than one receiver.
type Context struct {
	Prog  *ir.Program
	Reg   *types.Registry
	Diags *diag.Bag
	Cfg   *config.Config

	env    *env.Env
	decls  *declScope
	typeOf map[*types.Type]*ir.Type

	currentFunc  *ir.Func
	currentBlock *ir.BasicBlock

	funcSigs map[string]*types.Type
}

// NewContext builds a Context ready to lower a single compilation unit.
// cfg's WordSize is passed to ir.TypeOf, whose pointer lowering does not
// currently vary with it; a nil cfg falls back to config.Default(). NewContext also configures pkg/types'
// MaxSetSize/PointerSize from cfg, since Size()/AlignSize() read those
// package-level values rather than taking cfg as a parameter.
func NewContext(reg *types.Registry, diags *diag.Bag, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	types.Configure(int64(cfg.MaxSetSize), int64(cfg.WordSize))
	return &Context{
		Prog:     ir.NewProgram(),
		Reg:      reg,
		Diags:    diags,
		Cfg:      cfg,
		env:      env.New(),
		decls:    newDeclScope(nil),
		typeOf:   make(map[*types.Type]*ir.Type),
		funcSigs: make(map[string]*types.Type),
	}
}

// irTypeOf memoises ir.TypeOf per source type, the caching layer
// deferred to this package by pkg/ir's own doc comment.
func (c *Context) irTypeOf(t *types.Type) *ir.Type {
	if cached, ok := c.typeOf[t]; ok {
		return cached
	}
	irt := ir.TypeOf(t, c.Cfg.WordSize)
	c.typeOf[t] = irt
	return irt
}

func (c *Context) openScope() {
	c.env.NewLevel()
	c.decls = newDeclScope(c.decls)
}

func (c *Context) closeScope() {
	c.env.DropLevel()
	if c.decls.parent != nil {
		c.decls = c.decls.parent
	}
}

func (c *Context) declare(name string, srcType *types.Type, addr ir.Value) {
	c.env.Add(name, addr)
	c.decls.vars[name] = srcType
}

func (c *Context) findDecl(name string) (*types.Type, ir.Value, bool) {
	addr, ok := c.env.Find(name)
	if !ok {
		return nil, nil, false
	}
	for s := c.decls; s != nil; s = s.parent {
		if t, ok := s.vars[name]; ok {
			return t, addr, true
		}
	}
	return nil, addr, true
}

func (c *Context) newTemp(t *ir.Type) *ir.Temporary { return c.Prog.NewTemp(t) }
func (c *Context) newLabel(hint string) *ir.Label   { return c.Prog.NewLabel(hint) }

func (c *Context) startBlock(label *ir.Label) {
	b := &ir.BasicBlock{Label: label}
	c.currentFunc.Blocks = append(c.currentFunc.Blocks, b)
	c.currentBlock = b
}

func (c *Context) emit(instr *ir.Instruction) {
	if c.currentBlock == nil {
		c.startBlock(c.newLabel("L"))
	}
	c.currentBlock.Append(instr)
}

// load emits an OpLoad of typ from addr and returns the fresh temporary
// holding the result.
func (c *Context) load(addr ir.Value, typ *types.Type) ir.Value {
	irt := c.irTypeOf(typ)
	res := c.newTemp(irt)
	c.emit(&ir.Instruction{Op: ir.OpLoad, Typ: irt, Result: res, Args: []ir.Value{addr}})
	return res
}

// store emits an OpStore of value into addr.
func (c *Context) store(addr, value ir.Value, typ *types.Type) {
	c.emit(&ir.Instruction{Op: ir.OpStore, Typ: c.irTypeOf(typ), Args: []ir.Value{value, addr}})
}

// alloca emits an entry-block OpAlloca for typ and returns the pointer
// temporary, matching the teacher's habit of hoisting every local's
// storage to the function's first block regardless of where it is
// declared lexically (spec.md §4.5 "every local variable's storage is an
// entry-block alloca").
func (c *Context) alloca(typ *types.Type) ir.Value {
	irt := c.irTypeOf(typ)
	res := c.newTemp(&ir.Type{Kind: ir.Ptr, Elem: irt})
	entry := c.currentFunc.Blocks[0]
	entry.Instr = append(entry.Instr, &ir.Instruction{Op: ir.OpAlloca, Typ: irt, Result: res})
	return res
}

// LowerProgram lowers a whole, previously analysed compilation unit.
func (c *Context) LowerProgram(prog *ast.Node) *ir.Program {
	data := prog.Data.(ast.ProgramData)

	for _, vd := range data.VarDecls {
		c.lowerGlobalVarDecl(vd)
	}
	for _, fn := range data.FuncDecls {
		fd := fn.Data.(ast.FuncDeclData)
		c.funcSigs[fd.Name] = types.NewFunctionType(fd.Params, fd.Result)
	}
	for _, fn := range data.FuncDecls {
		fd := fn.Data.(ast.FuncDeclData)
		if !fd.Forward {
			c.lowerFuncDecl(fn)
		}
	}

	c.currentFunc = &ir.Func{Name: "main"}
	c.Prog.Funcs = append(c.Prog.Funcs, c.currentFunc)
	c.startBlock(c.newLabel("entry"))
	if data.Body != nil {
		c.lowerStmt(data.Body)
	}
	c.emit(&ir.Instruction{Op: ir.OpRetVoid})

	return c.Prog
}

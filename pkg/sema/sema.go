// Package sema implements the semantic analyser spec.md §4.4 describes:
// an AST visitor performing type checking, implicit-widening result
// computation, range-literal and set-literal inference, and deferred
// fixup scheduling. The per-expression checks are grounded line-by-line
// on original_source/semantics.cpp's TypeCheckVisitor
// (CheckBinExpr/CheckAssignExpr/CheckRangeExpr/CheckSetExpr); the
// Go-idiomatic struct-holding-current-scope visitor shape (rather than a
// virtual accept/visit pair) is grounded on
// xplshn-gbc/pkg/typeChecker.TypeChecker.
package sema

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/config"
	"lacsap/pkg/diag"
	"lacsap/pkg/token"
	"lacsap/pkg/types"
)

// varScope is one nesting level of name -> declared-type bindings, the
// same linked-list-of-maps shape as types.Registry's own scope, kept
// separate because it binds variable/parameter/function *names*, not
// type names.
type varScope struct {
	vars   map[string]*types.Type
	parent *varScope
}

func newVarScope(parent *varScope) *varScope {
	return &varScope{vars: make(map[string]*types.Type), parent: parent}
}

// Analyser walks a program's AST, annotating every expression node's Typ
// field, registering declared types and enum values into the type
// registry, and scheduling fixups for set-literal ranges discovered
// along the way (spec.md §4.4).
type Analyser struct {
	Reg   *types.Registry
	Diags *diag.Bag
	Cfg   *config.Config

	vars   *varScope
	funcs  map[string]*ast.Node // name -> most recent FuncDecl node (forward or body)
	fixups []func()
}

// NewAnalyser builds an Analyser over an already-built-in-populated type
// registry. cfg supplies the set-size clamp checkSetLit/checkInExpr/
// unifySets apply to inferred set ranges (spec.md §4.4); a nil cfg falls back to
// config.Default().
func NewAnalyser(reg *types.Registry, diags *diag.Bag, cfg *config.Config) *Analyser {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Analyser{
		Reg:   reg,
		Diags: diags,
		Cfg:   cfg,
		vars:  newVarScope(nil),
		funcs: make(map[string]*ast.Node),
	}
}

func (a *Analyser) openScope() { a.vars = newVarScope(a.vars) }
func (a *Analyser) closeScope() {
	if a.vars.parent != nil {
		a.vars = a.vars.parent
	}
}

// bind adds name to the current scope's bindings, reporting a
// redeclaration error and leaving the existing binding untouched if name
// is already bound in that same scope (spec.md §4.5 "Variable
// declaration": "adding a duplicate name at the current scope is an
// error").
func (a *Analyser) bind(pos token.Position, name string, t *types.Type) {
	if _, exists := a.vars.vars[name]; exists {
		a.Diags.Errorf(pos, "redeclaration of %q in this scope", name)
		return
	}
	a.vars.vars[name] = t
}

func (a *Analyser) findVar(name string) (*types.Type, bool) {
	for s := a.vars; s != nil; s = s.parent {
		if t, ok := s.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// AddFixup enqueues a deferred closure to run once, after every
// top-level declaration has been analysed (spec.md §5 "the fixup queue
// is drained exactly once, after semantic analysis of the entire unit
// and before IR emission").
func (a *Analyser) AddFixup(f func()) { a.fixups = append(a.fixups, f) }

// RunFixups drains the fixup queue.
func (a *Analyser) RunFixups() {
	for _, f := range a.fixups {
		f()
	}
	a.fixups = nil
}

// AnalyseProgram type-checks an entire compilation unit: type
// declarations are registered first (so later declarations and the body
// may reference them), then file-scope variables, then every
// function/procedure (prototype registration, forward/redefinition
// checking, and body analysis in a fresh scope), then the top-level
// statement body, and finally the fixup queue is drained.
func (a *Analyser) AnalyseProgram(prog *ast.Node) {
	data := prog.Data.(ast.ProgramData)

	for _, tdNode := range data.TypeDecls {
		td := tdNode.Data.(ast.TypeDeclData)
		if err := a.Reg.Add(td.Name, td.Type); err != nil {
			a.Diags.Errorf(tdNode.Pos, "%s", err)
			continue
		}
		if td.Type.Kind() == types.KindEnum {
			a.Reg.AddEnumValues(td.Type)
		}
	}
	for _, name := range a.Reg.FixUpIncomplete(a.Reg.Find) {
		a.Diags.Errorf(token.Position{}, "forward-declared pointer %q never resolved", name)
	}

	for _, vdNode := range data.VarDecls {
		a.checkVarDecl(vdNode)
	}

	for _, fn := range data.FuncDecls {
		a.declareFunc(fn)
	}
	for _, fn := range data.FuncDecls {
		a.analyseFuncBody(fn)
	}

	if data.Body != nil {
		a.checkStmt(data.Body)
	}

	a.RunFixups()
}

func (a *Analyser) checkVarDecl(n *ast.Node) {
	vd := n.Data.(ast.VarDeclData)
	for _, name := range vd.Names {
		a.bind(n.Pos, name, vd.Type)
	}
}

// declareFunc registers a function/procedure's callable signature,
// rebinding a forward declaration's slot in place when a matching
// non-forward definition follows it (spec.md §4.5 "Prototype": "on name
// collision, rebind to the existing declaration if it is a forward
// declaration with matching arity"), and reporting a redefinition
// diagnostic for a second non-forward definition (spec.md §8 testable
// property 7).
func (a *Analyser) declareFunc(n *ast.Node) {
	fd := n.Data.(ast.FuncDeclData)
	prev, exists := a.funcs[fd.Name]
	if !exists {
		a.funcs[fd.Name] = n
		sig := types.NewFunctionType(fd.Params, fd.Result)
		a.bind(n.Pos, fd.Name, sig)
		return
	}
	prevFd := prev.Data.(ast.FuncDeclData)
	if !prevFd.Forward && !fd.Forward {
		a.Diags.Errorf(n.Pos, "redefinition of function %q", fd.Name)
		return
	}
	if prevFd.Forward && len(prevFd.Params) != len(fd.Params) {
		a.Diags.Errorf(n.Pos, "definition of %q does not match forward declaration's arity", fd.Name)
		return
	}
	a.funcs[fd.Name] = n
}

func (a *Analyser) analyseFuncBody(n *ast.Node) {
	fd := n.Data.(ast.FuncDeclData)
	if fd.Forward || fd.Body == nil {
		return
	}
	a.openScope()
	defer a.closeScope()

	for _, p := range fd.Params {
		a.bind(n.Pos, p.Name, p.Type)
	}
	if fd.Result != nil {
		a.bind(n.Pos, fd.Name, fd.Result) // the function's own name aliases its result slot
	}
	for _, local := range fd.Locals {
		a.checkVarDecl(local)
	}
	a.checkStmt(fd.Body)
}

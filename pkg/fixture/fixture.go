// Package fixture loads the small JSON-encoded program fixtures
// cmd/lacsapfmt and cmd/lacsapgolden drive the compiler with, standing
// in for the external parser spec.md §1 treats as out of scope. The
// format intentionally mirrors pkg/ast's own Kind vocabulary rather than
// inventing a second grammar.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"lacsap/pkg/ast"
	"lacsap/pkg/token"
	"lacsap/pkg/types"
)

// Program is the root of a fixture file.
type Program struct {
	Vars  []VarDecl  `json:"vars"`
	Funcs []FuncDecl `json:"funcs"`
	Body  []Stmt     `json:"body"`
}

type VarDecl struct {
	Names []string `json:"names"`
	Type  string   `json:"type"`
}

type Param struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	ByRef bool   `json:"byRef"`
}

type FuncDecl struct {
	Name    string    `json:"name"`
	Params  []Param   `json:"params"`
	Result  string    `json:"result"`
	Locals  []VarDecl `json:"locals"`
	Body    []Stmt    `json:"body"`
	Forward bool      `json:"forward"`
}

// Stmt is a tagged statement; exactly one of its kind-specific fields is
// populated, selected by Kind.
type Stmt struct {
	Kind string `json:"kind"`

	Lhs *Expr `json:"lhs,omitempty"`
	Rhs *Expr `json:"rhs,omitempty"`

	Cond *Expr  `json:"cond,omitempty"`
	Then []Stmt `json:"then,omitempty"`
	Else []Stmt `json:"else,omitempty"`

	Var   string `json:"var,omitempty"`
	Start *Expr  `json:"start,omitempty"`
	End   *Expr  `json:"end,omitempty"`
	Down  bool   `json:"down,omitempty"`

	Body []Stmt `json:"loopBody,omitempty"`

	Args    []Expr `json:"args,omitempty"`
	Newline bool   `json:"newline,omitempty"`

	Decl *VarDecl `json:"decl,omitempty"`
}

// Expr is a tagged expression.
type Expr struct {
	Kind string `json:"kind"`

	IntVal    *int64   `json:"int,omitempty"`
	RealVal   *float64 `json:"real,omitempty"`
	CharVal   string   `json:"char,omitempty"`
	StringVal string   `json:"string,omitempty"`
	Name      string   `json:"name,omitempty"`

	Op      string `json:"op,omitempty"`
	Left    *Expr  `json:"left,omitempty"`
	Right   *Expr  `json:"right,omitempty"`
	Operand *Expr  `json:"operand,omitempty"`

	Callee string `json:"callee,omitempty"`
	Args   []Expr `json:"args,omitempty"`

	Array   *Expr  `json:"array,omitempty"`
	Indices []Expr `json:"indices,omitempty"`

	Record *Expr  `json:"record,omitempty"`
	Field  string `json:"field,omitempty"`
}

// Load reads and parses a fixture file from path.
func Load(path string) (*Program, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Program
	if err := json.Unmarshal(bytes, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

var opNames = map[string]token.Kind{
	"+": token.Plus, "-": token.Minus, "*": token.Star, "/": token.Slash,
	"div": token.Div, "mod": token.Mod,
	"=": token.Equal, "<>": token.NotEqual, "<": token.Less, "<=": token.LessEq,
	">": token.Greater, ">=": token.GreaterEq,
	"and": token.And, "or": token.Or, "not": token.Not, "xor": token.Xor,
	"in": token.In,
}

// ToAST builds the pkg/ast tree this fixture describes, resolving type
// names against reg.
func (p *Program) ToAST(reg *types.Registry) (*ast.Node, error) {
	var varDecls, funcDecls []*ast.Node
	for _, v := range p.Vars {
		n, err := v.toAST(reg)
		if err != nil {
			return nil, err
		}
		varDecls = append(varDecls, n)
	}
	for _, f := range p.Funcs {
		n, err := f.toAST(reg)
		if err != nil {
			return nil, err
		}
		funcDecls = append(funcDecls, n)
	}
	body, err := stmtsToAST(p.Body, reg)
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(nil, varDecls, funcDecls, ast.NewBlock(token.Position{}, body)), nil
}

func (v VarDecl) toAST(reg *types.Registry) (*ast.Node, error) {
	t, ok := reg.Find(v.Type)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", v.Type)
	}
	return ast.NewVarDecl(token.Position{}, v.Names, t), nil
}

func (f FuncDecl) toAST(reg *types.Registry) (*ast.Node, error) {
	params := make([]*types.Param, len(f.Params))
	for i, p := range f.Params {
		t, ok := reg.Find(p.Type)
		if !ok {
			return nil, fmt.Errorf("unknown type %q", p.Type)
		}
		params[i] = &types.Param{Name: p.Name, Type: t, ByRef: p.ByRef}
	}
	var result *types.Type
	if f.Result != "" {
		t, ok := reg.Find(f.Result)
		if !ok {
			return nil, fmt.Errorf("unknown result type %q", f.Result)
		}
		result = t
	}
	var locals []*ast.Node
	for _, l := range f.Locals {
		n, err := l.toAST(reg)
		if err != nil {
			return nil, err
		}
		locals = append(locals, n)
	}
	var body *ast.Node
	if !f.Forward {
		stmts, err := stmtsToAST(f.Body, reg)
		if err != nil {
			return nil, err
		}
		body = ast.NewBlock(token.Position{}, stmts)
	}
	return ast.NewFuncDecl(token.Position{}, f.Name, params, result, locals, body, f.Forward), nil
}

func stmtsToAST(stmts []Stmt, reg *types.Registry) ([]*ast.Node, error) {
	out := make([]*ast.Node, 0, len(stmts))
	for _, s := range stmts {
		n, err := s.toAST(reg)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (s Stmt) toAST(reg *types.Registry) (*ast.Node, error) {
	pos := token.Position{}
	switch s.Kind {
	case "assign":
		lhs, err := s.Lhs.toAST(reg)
		if err != nil {
			return nil, err
		}
		rhs, err := s.Rhs.toAST(reg)
		if err != nil {
			return nil, err
		}
		return ast.NewAssign(pos, lhs, rhs), nil
	case "if":
		cond, err := s.Cond.toAST(reg)
		if err != nil {
			return nil, err
		}
		thenStmts, err := stmtsToAST(s.Then, reg)
		if err != nil {
			return nil, err
		}
		var elseNode *ast.Node
		if len(s.Else) > 0 {
			elseStmts, err := stmtsToAST(s.Else, reg)
			if err != nil {
				return nil, err
			}
			elseNode = ast.NewBlock(pos, elseStmts)
		}
		return ast.NewIf(pos, cond, ast.NewBlock(pos, thenStmts), elseNode), nil
	case "for":
		start, err := s.Start.toAST(reg)
		if err != nil {
			return nil, err
		}
		end, err := s.End.toAST(reg)
		if err != nil {
			return nil, err
		}
		body, err := stmtsToAST(s.Body, reg)
		if err != nil {
			return nil, err
		}
		return ast.NewFor(pos, s.Var, start, end, s.Down, ast.NewBlock(pos, body)), nil
	case "while":
		cond, err := s.Cond.toAST(reg)
		if err != nil {
			return nil, err
		}
		body, err := stmtsToAST(s.Body, reg)
		if err != nil {
			return nil, err
		}
		return ast.NewWhile(pos, cond, ast.NewBlock(pos, body)), nil
	case "repeat":
		body, err := stmtsToAST(s.Body, reg)
		if err != nil {
			return nil, err
		}
		cond, err := s.Cond.toAST(reg)
		if err != nil {
			return nil, err
		}
		return ast.NewRepeat(pos, ast.NewBlock(pos, body), cond), nil
	case "write", "writeln":
		args := make([]ast.WriteArg, len(s.Args))
		for i, a := range s.Args {
			n, err := a.toAST(reg)
			if err != nil {
				return nil, err
			}
			args[i] = ast.WriteArg{Expr: n}
		}
		return ast.NewWrite(pos, args, s.Kind == "writeln"), nil
	case "read", "readln":
		nodes := make([]*ast.Node, len(s.Args))
		for i, a := range s.Args {
			n, err := a.toAST(reg)
			if err != nil {
				return nil, err
			}
			nodes[i] = n
		}
		return ast.NewRead(pos, nodes, s.Kind == "readln"), nil
	case "vardecl":
		return s.Decl.toAST(reg)
	}
	return nil, fmt.Errorf("unknown statement kind %q", s.Kind)
}

func (e *Expr) toAST(reg *types.Registry) (*ast.Node, error) {
	pos := token.Position{}
	switch e.Kind {
	case "int":
		return ast.NewIntLit(pos, *e.IntVal), nil
	case "real":
		return ast.NewRealLit(pos, *e.RealVal), nil
	case "char":
		return ast.NewCharLit(pos, e.CharVal[0]), nil
	case "string":
		return ast.NewStringLit(pos, e.StringVal), nil
	case "nil":
		return ast.NewNilLit(pos), nil
	case "ident":
		return ast.NewIdent(pos, e.Name), nil
	case "binary":
		op, ok := opNames[e.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", e.Op)
		}
		l, err := e.Left.toAST(reg)
		if err != nil {
			return nil, err
		}
		r, err := e.Right.toAST(reg)
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOp(pos, op, l, r), nil
	case "unary":
		op, ok := opNames[e.Op]
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", e.Op)
		}
		o, err := e.Operand.toAST(reg)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryOp(pos, op, o), nil
	case "call":
		args := make([]*ast.Node, len(e.Args))
		for i, a := range e.Args {
			n, err := a.toAST(reg)
			if err != nil {
				return nil, err
			}
			args[i] = n
		}
		return ast.NewCall(pos, e.Callee, args), nil
	case "index":
		arr, err := e.Array.toAST(reg)
		if err != nil {
			return nil, err
		}
		indices := make([]*ast.Node, len(e.Indices))
		for i, idx := range e.Indices {
			n, err := idx.toAST(reg)
			if err != nil {
				return nil, err
			}
			indices[i] = n
		}
		return ast.NewArrayAccess(pos, arr, indices), nil
	case "field":
		rec, err := e.Record.toAST(reg)
		if err != nil {
			return nil, err
		}
		return ast.NewFieldAccess(pos, rec, e.Field), nil
	}
	return nil, fmt.Errorf("unknown expression kind %q", e.Kind)
}

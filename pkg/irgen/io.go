package irgen

import (
	"lacsap/pkg/ast"
	"lacsap/pkg/ir"
	"lacsap/pkg/types"
)

// write/writeln/read/readln lower to calls into a small runtime support
// library, one fixed-signature helper per value kind, each declared once
// per module and memoised by ir.Program.DeclareExtern. The extern names
// and argument order are pinned by spec.md §6's "stable" runtime ABI --
// a write call always supplies a width argument (and, for reals, a
// precision argument), synthesising the spec's default literals when the
// source omitted them, grounded on original_source/expr.cpp's
// WriteAST::CodeGen.
func (c *Context) lowerWrite(d ast.WriteData) {
	for _, arg := range d.Args {
		v := c.lowerExpr(arg.Expr)
		name, paramTypes := writeHelperFor(arg.Expr.Typ)
		args := []ir.Value{v}

		if arg.Width != nil {
			args = append(args, c.lowerExpr(arg.Width))
		} else {
			args = append(args, &ir.Const{Value: defaultWriteWidth(arg.Expr.Typ), Typ: i32Type})
		}
		paramTypes = append(paramTypes, i32Type)

		if arg.Expr.Typ != nil && arg.Expr.Typ.Kind() == types.KindReal {
			if arg.Precision != nil {
				args = append(args, c.lowerExpr(arg.Precision))
			} else {
				args = append(args, &ir.Const{Value: -1, Typ: i32Type})
			}
			paramTypes = append(paramTypes, i32Type)
		}

		ext := c.setExtern(name, paramTypes, nil)
		c.emit(&ir.Instruction{Op: ir.OpCall, Callee: ext.Name, Args: args})
	}
	if d.Newline {
		ext := c.setExtern("__write_nl", nil, nil)
		c.emit(&ir.Instruction{Op: ir.OpCall, Callee: ext.Name})
	}
}

// defaultWriteWidth supplies the field width WriteAST::CodeGen fills in
// when the source gives none: 13 for integer, 15 for real, 0 otherwise.
func defaultWriteWidth(t *types.Type) int64 {
	if t == nil {
		return 13
	}
	switch t.Kind() {
	case types.KindInteger, types.KindInt64:
		return 13
	case types.KindReal:
		return 15
	}
	return 0
}

func writeHelperFor(t *types.Type) (string, []*ir.Type) {
	if t == nil {
		return "__write_int", []*ir.Type{i32Type}
	}
	switch t.Kind() {
	case types.KindReal:
		return "__write_real", []*ir.Type{{Kind: ir.Double}}
	case types.KindInt64:
		return "__write_int64", []*ir.Type{{Kind: ir.I64}}
	case types.KindBoolean:
		return "__write_bool", []*ir.Type{i32Type}
	case types.KindChar:
		return "__write_char", []*ir.Type{i32Type}
	}
	if t.IsStringLike() {
		return "__write_str", []*ir.Type{setPtrType}
	}
	return "__write_int", []*ir.Type{i32Type}
}

func (c *Context) lowerRead(d ast.ReadData) {
	for _, arg := range d.Args {
		addr, t := c.lowerAddress(arg)
		name, paramTypes := readHelperFor(t)
		ext := c.setExtern(name, paramTypes, nil)
		c.emit(&ir.Instruction{Op: ir.OpCall, Callee: ext.Name, Args: []ir.Value{addr}})
	}
	if d.Newline {
		ext := c.setExtern("__read_nl", nil, nil)
		c.emit(&ir.Instruction{Op: ir.OpCall, Callee: ext.Name})
	}
}

func readHelperFor(t *types.Type) (string, []*ir.Type) {
	ptr := &ir.Type{Kind: ir.Ptr}
	switch t.Kind() {
	case types.KindReal:
		return "__read_real", []*ir.Type{ptr}
	case types.KindInt64:
		return "__read_int64", []*ir.Type{ptr}
	case types.KindChar:
		return "__read_chr", []*ir.Type{ptr}
	}
	if t.IsStringLike() {
		return "__read_str", []*ir.Type{ptr}
	}
	return "__read_int", []*ir.Type{ptr}
}

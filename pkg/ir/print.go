package ir

import (
	"fmt"
	"io"
	"strings"
)

// Dump renders prog as a stable, LLVM-flavored text listing -- globals,
// externs, then one function per definition with its basic blocks and
// instructions in order -- the same "one Dump pass over the whole
// structure instead of per-node String methods" shape as pkg/ast.Dump,
// adapted to a program instead of a tree so cmd/lacsapgolden has
// deterministic text to hash and diff.
func Dump(w io.Writer, prog *Program) {
	for _, g := range prog.Globals {
		init := "zeroinitializer"
		if g.Init != nil {
			init = g.Init.String()
		}
		fmt.Fprintf(w, "@%s = global %s %s\n", g.Name, g.Typ, init)
	}
	for _, e := range prog.Externs {
		fmt.Fprintf(w, "declare %s @%s(%s)\n", resultString(e.Result), e.Name, joinTypes(e.ParamTypes))
	}
	for _, fn := range prog.Funcs {
		dumpFunc(w, fn)
	}
}

func dumpFunc(w io.Writer, fn *Func) {
	if fn.Forward {
		fmt.Fprintf(w, "declare %s @%s(%s)\n", resultString(fn.Result), fn.Name, joinParams(fn.Params))
		return
	}
	fmt.Fprintf(w, "define %s @%s(%s) {\n", resultString(fn.Result), fn.Name, joinParams(fn.Params))
	for _, b := range fn.Blocks {
		fmt.Fprintf(w, "%s:\n", b.Label.Name)
		for _, instr := range b.Instr {
			fmt.Fprintf(w, "  %s\n", instrString(instr))
		}
	}
	fmt.Fprintln(w, "}")
}

func resultString(t *Type) string {
	if t == nil {
		return "void"
	}
	return t.String()
}

func joinTypes(ts []*Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func joinParams(ps []*Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%s %%%s", p.Typ, p.Name)
	}
	return strings.Join(parts, ", ")
}

var opNames = map[Op]string{
	OpAlloca: "alloca", OpLoad: "load", OpStore: "store", OpGEP: "getelementptr",
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpSDiv: "sdiv", OpSRem: "srem", OpNeg: "neg",
	OpFAdd: "fadd", OpFSub: "fsub", OpFMul: "fmul", OpFDiv: "fdiv", OpFNeg: "fneg",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not",
	OpICmpEQ: "icmp eq", OpICmpNE: "icmp ne", OpICmpSLT: "icmp slt", OpICmpSGT: "icmp sgt",
	OpICmpSLE: "icmp sle", OpICmpSGE: "icmp sge",
	OpFCmpOEQ: "fcmp oeq", OpFCmpONE: "fcmp one", OpFCmpOLT: "fcmp olt", OpFCmpOGT: "fcmp ogt",
	OpFCmpOLE: "fcmp ole", OpFCmpOGE: "fcmp oge",
	OpSIToFP: "sitofp", OpBr: "br", OpCondBr: "br", OpRet: "ret", OpRetVoid: "ret void",
	OpCall: "call", OpPhi: "phi",
}

func instrString(in *Instruction) string {
	name := opNames[in.Op]
	var b strings.Builder
	if in.Result != nil {
		fmt.Fprintf(&b, "%s = ", in.Result)
	}
	b.WriteString(name)
	if in.Callee != "" {
		fmt.Fprintf(&b, " @%s", in.Callee)
	}
	if len(in.Args) > 0 {
		argStrs := make([]string, len(in.Args))
		for i, a := range in.Args {
			argStrs[i] = a.String()
		}
		fmt.Fprintf(&b, "(%s)", strings.Join(argStrs, ", "))
	}
	if len(in.Targets) > 0 {
		labelStrs := make([]string, len(in.Targets))
		for i, l := range in.Targets {
			labelStrs[i] = "%" + l.Name
		}
		fmt.Fprintf(&b, " -> %s", strings.Join(labelStrs, ", "))
	}
	if len(in.GEPIndex) > 0 {
		fmt.Fprintf(&b, " idx %v", in.GEPIndex)
	}
	return b.String()
}

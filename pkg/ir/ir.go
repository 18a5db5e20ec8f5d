// Package ir is the typed low-level SSA intermediate representation
// lowering targets (spec.md §1/§4.5): values, instructions, basic
// blocks, functions and a whole-program container, modelled on LLVM's
// instruction set rather than the teacher's QBE-flavored one (alloca,
// getelementptr and phi instead of QBE's block-parameter style), since
// spec.md explicitly targets "LLVM-style SSA IR". The Value/Instruction/
// BasicBlock/Func/Program shapes themselves are grounded directly on
// xplshn-gbc/pkg/ir.
package ir

import "fmt"

// Op enumerates the instruction opcodes this module's lowering emits.
type Op int

const (
	OpAlloca Op = iota
	OpLoad
	OpStore
	OpGEP // getelementptr

	OpAdd
	OpSub
	OpMul
	OpSDiv
	OpSRem
	OpNeg

	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFNeg

	OpAnd
	OpOr
	OpXor
	OpNot

	OpICmpEQ
	OpICmpNE
	OpICmpSLT
	OpICmpSGT
	OpICmpSLE
	OpICmpSGE

	OpFCmpOEQ
	OpFCmpONE
	OpFCmpOLT
	OpFCmpOGT
	OpFCmpOLE
	OpFCmpOGE

	OpSIToFP

	OpBr     // unconditional branch
	OpCondBr // conditional branch
	OpRet
	OpRetVoid
	OpCall
	OpPhi
)

// Kind discriminates the shapes of Type.
type Kind int

const (
	I1 Kind = iota // comparison results, never a variable's storage type
	I8
	I32
	I64
	Double
	Ptr
	Void
	Array
	Struct
)

// Type is the IR's own, much flatter type model: a scalar kind, or for
// Ptr/Array/Struct a recursive shape. Unlike types.Type it carries no
// source-level information (field names, ranges) -- only what lowering
// and a backend need to pick an instruction encoding.
type Type struct {
	Kind   Kind
	Elem   *Type   // Ptr: pointee; Array: element type
	Count  int64   // Array: element count
	Fields []*Type // Struct: field types in layout order
}

func (t *Type) String() string {
	switch t.Kind {
	case I1:
		return "i1"
	case I8:
		return "i8"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Double:
		return "double"
	case Void:
		return "void"
	case Ptr:
		return "ptr"
	case Array:
		return fmt.Sprintf("[%d x %s]", t.Count, t.Elem)
	case Struct:
		return "{...}"
	}
	return "<unknown type>"
}

// Value is anything an instruction can take as an operand or produce as
// a result.
type Value interface {
	isValue()
	String() string
	ValueType() *Type
}

type Const struct {
	Value int64
	Typ   *Type
}
type FloatConst struct {
	Value float64
	Typ   *Type
}
type Global struct {
	Name string
	Typ  *Type
}
type Temporary struct {
	Name string
	ID   int
	Typ  *Type
}
type Label struct{ Name string }

func (*Const) isValue()      {}
func (*FloatConst) isValue() {}
func (*Global) isValue()     {}
func (*Temporary) isValue()  {}
func (*Label) isValue()      {}

func (c *Const) String() string      { return fmt.Sprintf("%d", c.Value) }
func (f *FloatConst) String() string { return fmt.Sprintf("%g", f.Value) }
func (g *Global) String() string     { return "@" + g.Name }
func (t *Temporary) String() string  { return t.Name }
func (l *Label) String() string      { return l.Name }

func (c *Const) ValueType() *Type      { return c.Typ }
func (f *FloatConst) ValueType() *Type { return f.Typ }
func (g *Global) ValueType() *Type     { return g.Typ }
func (t *Temporary) ValueType() *Type  { return t.Typ }
func (l *Label) ValueType() *Type      { return nil }

// Instruction is one SSA operation. Result is nil for instructions with
// no result (store, br, ret). Targets holds branch destinations for
// OpBr/OpCondBr/OpPhi.
type Instruction struct {
	Op       Op
	Typ      *Type
	Result   Value
	Args     []Value
	Targets  []*Label
	Callee   string // OpCall
	GEPIndex []int64
}

// BasicBlock is a straight-line instruction sequence terminated by a
// control-flow instruction.
type BasicBlock struct {
	Label *Label
	Instr []*Instruction
}

// Append adds instr to the end of b.
func (b *BasicBlock) Append(instr *Instruction) { b.Instr = append(b.Instr, instr) }

// Param is one formal parameter of a Func.
type Param struct {
	Name  string
	Typ   *Type
	ByRef bool
}

// Func is one lowered procedure or function.
type Func struct {
	Name    string
	Params  []*Param
	Result  *Type // nil for a procedure
	Blocks  []*BasicBlock
	Forward bool
}

// Data is a module-scope, internally-linked global variable.
type Data struct {
	Name string
	Typ  *Type
	Init Value // nil means zero-initialized
}

// Extern is a declared-but-not-defined external function (a runtime ABI
// helper, spec.md §6).
type Extern struct {
	Name       string
	ParamTypes []*Type
	Result     *Type
}

// Program is the whole lowered translation unit.
type Program struct {
	Globals []*Data
	Funcs   []*Func
	Externs []*Extern
	Strings map[string]*Global

	tempCount  int
	labelCount int
}

// NewProgram builds an empty Program.
func NewProgram() *Program {
	return &Program{Strings: make(map[string]*Global)}
}

// NewTemp allocates a fresh SSA temporary name.
func (p *Program) NewTemp(typ *Type) *Temporary {
	p.tempCount++
	return &Temporary{Name: fmt.Sprintf("%%t%d", p.tempCount), ID: p.tempCount, Typ: typ}
}

// NewLabel allocates a fresh basic-block label.
func (p *Program) NewLabel(hint string) *Label {
	p.labelCount++
	return &Label{Name: fmt.Sprintf("%s%d", hint, p.labelCount)}
}

// StringGlobal returns the existing global constant for s, or creates
// one the first time s is seen (module-level string interning, the same
// memoisation shape as the teacher's runtime-helper declaration cache).
func (p *Program) StringGlobal(s string) *Global {
	if g, ok := p.Strings[s]; ok {
		return g
	}
	g := &Global{Name: fmt.Sprintf(".str.%d", len(p.Strings)), Typ: &Type{Kind: Ptr, Elem: &Type{Kind: I8}}}
	p.Strings[s] = g
	return g
}

// Extern looks up a previously declared external function by name.
func (p *Program) Extern(name string) (*Extern, bool) {
	for _, e := range p.Externs {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// DeclareExtern returns the existing declaration for name or registers a
// new one, memoising runtime-helper declarations exactly once per module
// (spec.md §4.5 "declare it once per module (memoised)").
func (p *Program) DeclareExtern(name string, paramTypes []*Type, result *Type) *Extern {
	if e, ok := p.Extern(name); ok {
		return e
	}
	e := &Extern{Name: name, ParamTypes: paramTypes, Result: result}
	p.Externs = append(p.Externs, e)
	return e
}

// Func looks up a previously lowered or forward-declared function by
// name.
func (p *Program) Func(name string) (*Func, bool) {
	for _, f := range p.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

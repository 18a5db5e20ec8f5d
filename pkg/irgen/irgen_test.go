package irgen

import (
	"testing"

	"lacsap/pkg/ast"
	"lacsap/pkg/config"
	"lacsap/pkg/diag"
	"lacsap/pkg/ir"
	"lacsap/pkg/token"
	"lacsap/pkg/types"
)

func newTestContext(t *testing.T) (*Context, *types.Registry, *diag.Bag) {
	t.Helper()
	reg := types.NewRegistry()
	diags := diag.NewBag()
	return NewContext(reg, diags, config.Default()), reg, diags
}

// The for loop's bound check must run AFTER the body and AFTER
// incrementing the control variable, with no guard before the first
// pass -- preserved from the original compiler rather than turned into
// an ordinary top-tested loop (spec.md §9 Open Question 2).
func TestLowerForHasNoUpfrontGuard(t *testing.T) {
	c, reg, diags := newTestContext(t)
	intType, _ := reg.Find("integer")
	pos := token.Position{}

	forNode := ast.NewFor(pos, "i", ast.NewIntLit(pos, 1), ast.NewIntLit(pos, 5), false, ast.NewBlock(pos, nil))
	prog := ast.NewProgram(nil,
		[]*ast.Node{ast.NewVarDecl(pos, []string{"i"}, intType)},
		nil,
		ast.NewBlock(pos, []*ast.Node{forNode}),
	)

	out := c.LowerProgram(prog)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}

	main, ok := out.Func("main")
	if !ok {
		t.Fatal("expected a synthesized main function")
	}
	if len(main.Blocks) != 3 {
		t.Fatalf("expected 3 blocks (entry, loop, end), got %d", len(main.Blocks))
	}

	entry, loop := main.Blocks[0], main.Blocks[1]
	for _, instr := range entry.Instr {
		if instr.Op == ir.OpCondBr {
			t.Fatal("entry block must not test the bound before the first iteration")
		}
	}
	last := entry.Instr[len(entry.Instr)-1]
	if last.Op != ir.OpBr || last.Targets[0] != loop.Label {
		t.Fatalf("entry block must branch unconditionally into the loop body, got %+v", last)
	}

	var sawIncrement, sawCompareAfter bool
	for _, instr := range loop.Instr {
		if instr.Op == ir.OpAdd {
			sawIncrement = true
		}
		if instr.Op == ir.OpICmpSLE {
			if !sawIncrement {
				t.Fatal("bound comparison must come after the increment")
			}
			sawCompareAfter = true
		}
	}
	if !sawCompareAfter {
		t.Fatal("loop block never compared the advanced control variable against the end bound")
	}
	finalInstr := loop.Instr[len(loop.Instr)-1]
	if finalInstr.Op != ir.OpCondBr || finalInstr.Targets[0] != loop.Label {
		t.Fatalf("loop must conditionally branch back to itself, got %+v", finalInstr)
	}
}

// A by-reference parameter's incoming value IS the callee-visible
// address; lowering must bind it directly rather than allocating a
// shadow local, so writes through it reach the caller's storage.
func TestByRefParamSkipsAlloca(t *testing.T) {
	c, reg, diags := newTestContext(t)
	intType, _ := reg.Find("integer")
	pos := token.Position{}

	fd := ast.NewFuncDecl(pos, "bump",
		[]*types.Param{{Name: "x", Type: intType, ByRef: true}},
		nil, nil, ast.NewBlock(pos, nil), false)
	prog := ast.NewProgram(nil, nil, []*ast.Node{fd}, ast.NewBlock(pos, nil))

	out := c.LowerProgram(prog)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}

	fn, ok := out.Func("bump")
	if !ok {
		t.Fatal("expected lowered function \"bump\"")
	}
	entry := fn.Blocks[0]
	for _, instr := range entry.Instr {
		if instr.Op == ir.OpAlloca {
			t.Fatalf("by-ref parameter must not get its own alloca, found %+v", instr)
		}
	}
}

// odd's lowest-bit test goes through a modulo-by-two comparison rather
// than a bitwise AND with 1.
func TestBuiltinOddUsesModuloNotBitwiseAnd(t *testing.T) {
	c, reg, _ := newTestContext(t)
	intType, _ := reg.Find("integer")
	pos := token.Position{}

	c.currentFunc = &ir.Func{Name: "f"}
	c.startBlock(c.newLabel("entry"))

	arg := ast.NewIntLit(pos, 3)
	arg.Typ = intType
	call := ast.NewCall(pos, "odd", []*ast.Node{arg})

	c.lowerCall(call, call.Data.(ast.CallData))

	var sawSRem bool
	for _, instr := range c.currentBlock.Instr {
		if instr.Op == ir.OpAnd {
			t.Fatal("odd must not lower to a bitwise AND")
		}
		if instr.Op == ir.OpSRem {
			sawSRem = true
		}
	}
	if !sawSRem {
		t.Fatal("expected odd to lower through an OpSRem")
	}
}

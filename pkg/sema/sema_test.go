package sema

import (
	"testing"

	"lacsap/pkg/ast"
	"lacsap/pkg/diag"
	"lacsap/pkg/token"
	"lacsap/pkg/types"
)

func newAnalyser() (*Analyser, *diag.Bag) {
	bag := diag.NewBag()
	return NewAnalyser(types.NewRegistry(), bag, nil), bag
}

func TestRedeclarationInSameScopeIsAnError(t *testing.T) {
	a, bag := newAnalyser()
	vd := ast.NewVarDecl(token.Position{Line: 1}, []string{"x", "x"}, types.NewIntegerType())
	a.checkVarDecl(vd)
	if !bag.HasErrors() {
		t.Fatalf("expected a redeclaration diagnostic")
	}
}

func TestScopedVariableInvisibleAfterPop(t *testing.T) {
	a, bag := newAnalyser()
	a.openScope()
	a.bind(token.Position{}, "inner", types.NewIntegerType())
	a.closeScope()

	if _, ok := a.findVar("inner"); ok {
		t.Fatalf("inner should not be visible once its scope is closed")
	}
	if bag.HasErrors() {
		t.Fatalf("no diagnostics expected: %v", bag.Items())
	}
}

func TestRangeLiteralMismatchIsReported(t *testing.T) {
	a, bag := newAnalyser()
	lo := ast.NewIntLit(token.Position{}, 1)
	hi := ast.NewCharLit(token.Position{}, 'a')
	a.checkExpr(ast.NewRangeLit(token.Position{}, lo, hi))
	if !bag.HasErrors() {
		t.Fatalf("expected a range-endpoint type mismatch diagnostic")
	}
}

func TestSetLiteralDerivesRangeFromSubtypeViaFixup(t *testing.T) {
	a, _ := newAnalyser()
	elem := ast.NewIntLit(token.Position{}, 3)
	setNode := ast.NewSetLit(token.Position{}, []*ast.Node{elem})
	setType := a.checkExpr(setNode)
	if setType.GetRange() != nil {
		t.Fatalf("range should only be derived once fixups run")
	}
	a.RunFixups()
	if setType.GetRange() == nil {
		t.Fatalf("expected the fixup to derive a range from the integer subtype")
	}
}

func TestAssignmentAcceptsIntegerLiteralIntoRange(t *testing.T) {
	a, bag := newAnalyser()
	r, _ := types.NewRange(1, 10)
	rangeType := types.NewRangeType(types.KindInteger, r)
	a.bind(token.Position{}, "x", rangeType)

	lhs := ast.NewIdent(token.Position{}, "x")
	rhs := ast.NewIntLit(token.Position{}, 5)
	a.checkStmt(ast.NewAssign(token.Position{}, lhs, rhs))
	if bag.HasErrors() {
		t.Fatalf("5 is within [1,10], expected no diagnostics: %v", bag.Items())
	}
}

func TestAssignmentRejectsOutOfRangeLiteral(t *testing.T) {
	a, bag := newAnalyser()
	r, _ := types.NewRange(1, 10)
	rangeType := types.NewRangeType(types.KindInteger, r)
	a.bind(token.Position{}, "x", rangeType)

	lhs := ast.NewIdent(token.Position{}, "x")
	rhs := ast.NewIntLit(token.Position{}, 99)
	a.checkStmt(ast.NewAssign(token.Position{}, lhs, rhs))
	if !bag.HasErrors() {
		t.Fatalf("99 is out of [1,10], expected a diagnostic")
	}
}

func TestFunctionRedefinitionIsReported(t *testing.T) {
	a, bag := newAnalyser()
	body := ast.NewBlock(token.Position{}, nil)
	fn1 := ast.NewFuncDecl(token.Position{}, "f", nil, nil, nil, body, false)
	fn2 := ast.NewFuncDecl(token.Position{}, "f", nil, nil, nil, body, false)
	a.declareFunc(fn1)
	a.declareFunc(fn2)
	if bag.ErrorCount() != 1 {
		t.Fatalf("ErrorCount = %d, want 1", bag.ErrorCount())
	}
}

func TestForwardDeclarationIsRebindableByDefinition(t *testing.T) {
	a, bag := newAnalyser()
	forward := ast.NewFuncDecl(token.Position{}, "f", nil, nil, nil, nil, true)
	body := ast.NewBlock(token.Position{}, nil)
	def := ast.NewFuncDecl(token.Position{}, "f", nil, nil, nil, body, false)
	a.declareFunc(forward)
	a.declareFunc(def)
	if bag.HasErrors() {
		t.Fatalf("a definition following its own forward declaration should not error: %v", bag.Items())
	}
}

func TestCallCheckValidatesByRefArgumentIsAddressable(t *testing.T) {
	a, bag := newAnalyser()
	params := []*types.Param{{Name: "n", Type: types.NewIntegerType(), ByRef: true}}
	sig := types.NewFunctionType(params, nil)
	a.bind(token.Position{}, "inc", sig)

	call := ast.NewCall(token.Position{}, "inc", []*ast.Node{ast.NewIntLit(token.Position{}, 1)})
	a.checkExpr(call)
	if !bag.HasErrors() {
		t.Fatalf("a literal argument to a by-reference parameter should be rejected")
	}
}

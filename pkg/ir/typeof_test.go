package ir

import (
	"testing"

	"lacsap/pkg/types"
)

func TestTypeOfScalars(t *testing.T) {
	cases := []struct {
		t    *types.Type
		want Kind
	}{
		{types.NewCharType(), I8},
		{types.NewIntegerType(), I32},
		{types.NewInt64Type(), I64},
		{types.NewRealType(), Double},
		{types.NewBooleanType(), I8},
		{types.NewVoidType(), Void},
	}
	for _, c := range cases {
		if got := TypeOf(c.t, 8).Kind; got != c.want {
			t.Fatalf("TypeOf(%v).Kind = %v, want %v", c.t.Kind(), got, c.want)
		}
	}
}

func TestTypeOfArrayCarriesFlatCount(t *testing.T) {
	r1, _ := types.NewRange(1, 3)
	r2, _ := types.NewRange(1, 4)
	arr := types.NewArrayType(types.NewIntegerType(), []*types.Range{r1, r2})

	it := TypeOf(arr, 8)
	if it.Kind != Array {
		t.Fatalf("expected Array kind, got %v", it.Kind)
	}
	if it.Count != 12 {
		t.Fatalf("expected flat count 12 (3*4), got %d", it.Count)
	}
	if it.Elem.Kind != I32 {
		t.Fatalf("expected i32 element, got %v", it.Elem.Kind)
	}
}

func TestTypeOfIncompletePointerHasNoElem(t *testing.T) {
	p := types.NewIncompletePointerType("Node")
	it := TypeOf(p, 8)
	if it.Kind != Ptr {
		t.Fatalf("expected Ptr kind, got %v", it.Kind)
	}
	if it.Elem != nil {
		t.Fatalf("incomplete pointer should have no element type yet")
	}
}

func TestProgramInterningIsMemoized(t *testing.T) {
	p := NewProgram()
	a := p.StringGlobal("hello")
	b := p.StringGlobal("hello")
	if a != b {
		t.Fatalf("StringGlobal should return the same global for the same string")
	}
	c := p.StringGlobal("world")
	if a == c {
		t.Fatalf("StringGlobal should return distinct globals for distinct strings")
	}
}

func TestDeclareExternIsMemoized(t *testing.T) {
	p := NewProgram()
	a := p.DeclareExtern("__write_int", []*Type{{Kind: I32}, {Kind: I32}}, &Type{Kind: Void})
	b := p.DeclareExtern("__write_int", []*Type{{Kind: I32}, {Kind: I32}}, &Type{Kind: Void})
	if a != b {
		t.Fatalf("DeclareExtern should return the same declaration on repeat calls")
	}
	if len(p.Externs) != 1 {
		t.Fatalf("expected exactly 1 extern declaration, got %d", len(p.Externs))
	}
}

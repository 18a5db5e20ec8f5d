package types

import "testing"

func mustRange(t *testing.T, start, end int32) *Range {
	t.Helper()
	r, err := NewRange(start, end)
	if err != nil {
		t.Fatalf("NewRange(%d, %d): %v", start, end, err)
	}
	return r
}

func TestRangeAllowsSingleElement(t *testing.T) {
	if _, err := NewRange(5, 5); err != nil {
		t.Fatalf("NewRange(5,5) should be a legal one-element range: %v", err)
	}
	if _, err := NewRange(5, 4); err == nil {
		t.Fatalf("NewRange(5,4) should be rejected (end before start)")
	}
}

func TestKindHidesRangeOuterKind(t *testing.T) {
	r := NewRangeType(KindInteger, mustRange(t, 1, 10))
	if got := r.Kind(); got != KindInteger {
		t.Fatalf("Kind() = %v, want KindInteger", got)
	}
	if !r.IsRange() {
		t.Fatalf("IsRange() = false, want true")
	}
	if !NewIntegerType().IsIntegral() {
		t.Fatalf("plain integer should be integral")
	}
}

func TestSameAsIsStructural(t *testing.T) {
	a := NewArrayType(NewCharType(), []*Range{mustRange(t, 0, 9)})
	b := NewArrayType(NewCharType(), []*Range{mustRange(t, 0, 9)})
	c := NewArrayType(NewCharType(), []*Range{mustRange(t, 0, 10)})
	if !a.SameAs(b) {
		t.Fatalf("identically-shaped arrays should be SameAs")
	}
	if a.SameAs(c) {
		t.Fatalf("arrays with different bounds should not be SameAs")
	}
	if !a.SameAs(a) {
		t.Fatalf("a type should be SameAs itself")
	}
}

func TestSameAsNominalForClasses(t *testing.T) {
	a := NewClassType("Animal", nil, []*Field{{Name: "legs", Type: NewIntegerType()}}, nil, nil)
	b := NewClassType("Animal", nil, []*Field{{Name: "legs", Type: NewIntegerType()}}, nil, nil)
	c := NewClassType("Plant", nil, []*Field{{Name: "legs", Type: NewIntegerType()}}, nil, nil)
	if !a.SameAs(b) {
		t.Fatalf("classes with the same name should be SameAs")
	}
	if a.SameAs(c) {
		t.Fatalf("classes with different names should not be SameAs")
	}
}

func TestAssignabilityWidensIntegerToReal(t *testing.T) {
	real := NewRealType()
	for _, i := range []*Type{NewIntegerType(), NewInt64Type(), NewCharType()} {
		if real.AssignableType(i) == nil {
			t.Fatalf("real should accept %v", i.Kind())
		}
	}
}

func TestAssignabilityForbidsRealToInteger(t *testing.T) {
	real := NewRealType()
	if NewIntegerType().AssignableType(real) != nil {
		t.Fatalf("integer should not accept real (narrowing)")
	}
	if NewInt64Type().AssignableType(real) != nil {
		t.Fatalf("int64 should not accept real (narrowing)")
	}
}

func TestCompatibleTypeIntegerWidening(t *testing.T) {
	i := NewIntegerType()
	i64 := NewInt64Type()
	if got := i.CompatibleType(i64); got == nil || got.Kind() != KindInt64 {
		t.Fatalf("integer+int64 should widen to int64, got %v", got)
	}
	if got := i64.CompatibleType(i); got == nil || got.Kind() != KindInt64 {
		t.Fatalf("int64+integer should widen to int64, got %v", got)
	}
}

func TestCompatibleTypeStringLike(t *testing.T) {
	ch := NewCharType()
	s := NewStringType(255)
	got := ch.CompatibleType(s)
	if got == nil || got.Kind() != KindString {
		t.Fatalf("char+string should combine into string, got %v", got)
	}
}

func TestGetRangeBuiltins(t *testing.T) {
	if r := NewCharType().GetRange(); r == nil || r.Start != 0 || r.End != 255 {
		t.Fatalf("char range = %v, want 0..255", r)
	}
	enum := NewEnumType([]string{"red", "green", "blue"})
	if r := enum.GetRange(); r == nil || r.Start != 0 || r.End != 2 {
		t.Fatalf("enum range = %v, want 0..2", r)
	}
	boolean := NewBooleanType()
	if r := boolean.GetRange(); r == nil || r.Start != 0 || r.End != 1 {
		t.Fatalf("boolean range = %v, want 0..1", r)
	}
}

func TestSetSizeClampedToMaxSetSize(t *testing.T) {
	huge := mustRange(t, 0, 10000)
	s := NewSetType(NewIntegerType(), huge)
	words := s.Size() / 4
	if words*32 > MaxSetSize {
		t.Fatalf("set backing store should clamp to %d bits, got %d words", MaxSetSize, words)
	}
}

func TestPointerFixupResolvesForwardDeclaration(t *testing.T) {
	reg := NewRegistry()
	fwd := NewIncompletePointerType("Node")
	if err := reg.Add("NodePtr", fwd); err != nil {
		t.Fatalf("Add: %v", err)
	}
	node := NewRecordType([]*Field{{Name: "value", Type: NewIntegerType()}}, nil)
	if err := reg.Add("Node", node); err != nil {
		t.Fatalf("Add: %v", err)
	}

	unresolved := reg.FixUpIncomplete(reg.Find)
	if len(unresolved) != 0 {
		t.Fatalf("unresolved forward names: %v", unresolved)
	}
	if fwd.IsIncomplete() {
		t.Fatalf("pointer should no longer be incomplete after fixup")
	}
	if fwd.SubType() != node {
		t.Fatalf("pointer should now point at the registered Node record")
	}
}

func TestFixupIsIdempotentOnceResolved(t *testing.T) {
	reg := NewRegistry()
	fwd := NewIncompletePointerType("Node")
	_ = reg.Add("NodePtr", fwd)
	_ = reg.Add("Node", NewRecordType(nil, nil))
	reg.FixUpIncomplete(reg.Find)

	// A second pass over an already-resolved registry must not error or
	// mutate anything further: the incomplete queue was drained.
	unresolved := reg.FixUpIncomplete(reg.Find)
	if len(unresolved) != 0 {
		t.Fatalf("second fixup pass should find nothing left to resolve, got %v", unresolved)
	}
}

func TestFieldIndexWalksClassInheritance(t *testing.T) {
	base := NewClassType("Base", nil, []*Field{{Name: "id", Type: NewIntegerType()}}, nil, nil)
	derived := NewClassType("Derived", base, []*Field{{Name: "name", Type: NewStringType(255)}}, nil, nil)

	if idx, owner, ok := derived.FieldIndex("name"); !ok || idx != 0 || owner != derived {
		t.Fatalf("FieldIndex(name) = %d, %v, %v", idx, owner, ok)
	}
	if idx, owner, ok := derived.FieldIndex("id"); !ok || idx != 0 || owner != base {
		t.Fatalf("FieldIndex(id) = %d, %v, %v, want owner=base", idx, owner, ok)
	}
	if _, _, ok := derived.FieldIndex("missing"); ok {
		t.Fatalf("FieldIndex(missing) should fail")
	}
}

func TestVTableSlotsInheritsAndOverrides(t *testing.T) {
	speak := &MemberFunc{Name: "speak", Virtual: true}
	base := NewClassType("Animal", nil, nil, []*MemberFunc{speak}, nil)

	override := &MemberFunc{Name: "speak", Override: true}
	newMethod := &MemberFunc{Name: "fetch", Virtual: true}
	derived := NewClassType("Dog", base, nil, []*MemberFunc{override, newMethod}, nil)

	slots := derived.VTableSlots()
	if len(slots) != 2 {
		t.Fatalf("expected 2 vtable slots, got %d", len(slots))
	}
	if slots[0] != override {
		t.Fatalf("overridden method should replace base slot in place")
	}
	if slots[0].VirtIndex != 0 {
		t.Fatalf("overridden method should keep base slot's index, got %d", slots[0].VirtIndex)
	}
	if slots[1] != newMethod || slots[1].VirtIndex != 1 {
		t.Fatalf("new virtual method should append at index 1, got %+v", slots[1])
	}
}

func TestSizeAndAlignOfCompoundTypes(t *testing.T) {
	rec := NewRecordType([]*Field{
		{Name: "a", Type: NewCharType()},
		{Name: "b", Type: NewIntegerType()},
	}, nil)
	if got, want := rec.Size(), int64(5); got != want {
		t.Fatalf("record size = %d, want %d", got, want)
	}
	if got, want := rec.AlignSize(), int64(4); got != want {
		t.Fatalf("record align = %d, want %d", got, want)
	}

	arr := NewArrayType(NewIntegerType(), []*Range{mustRange(t, 0, 9)})
	if got, want := arr.Size(), int64(40); got != want {
		t.Fatalf("array size = %d, want %d", got, want)
	}
}

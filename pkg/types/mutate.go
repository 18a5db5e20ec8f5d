package types

// SetRange fills in a set's element range once pkg/sema's fixup pass has
// derived it from the literal's members or its element type (spec.md §9,
// mirroring SetDecl::UpdateRange). A no-op on anything but a still-unset
// KindSet.
func (t *Type) SetRange(r *Range) {
	if t.kind == KindSet && t.rangeVal == nil {
		t.rangeVal = r
	}
}

// SetElemType fills in a set's element type once the analyser has
// resolved it from an otherwise-empty set literal unifying with a typed
// operand (spec.md §9, mirroring SetDecl::UpdateSubtype). A no-op on
// anything but a still-unset KindSet.
func (t *Type) SetElemType(elem *Type) {
	if t.kind == KindSet && t.base == nil {
		t.base = elem
	}
}

package types

// Size is a type's footprint in target bytes.
func (t *Type) Size() int64 {
	switch t.kind {
	case KindChar, KindBoolean:
		return 1
	case KindInteger, KindEnum:
		return 4
	case KindInt64:
		return 8
	case KindReal:
		return 8
	case KindVoid:
		return 0
	case KindRange:
		base := &Type{kind: t.rangeBase}
		return base.Size()
	case KindArray, KindString:
		n := t.base.Size()
		for _, d := range t.dims {
			n *= d.Size()
		}
		return n
	case KindRecord:
		return sumFieldSize(t.fields) + variantSize(t.variant)
	case KindVariant:
		return maxFieldSize(t.fields)
	case KindClass:
		base := int64(0)
		if t.base != nil {
			base = t.base.Size()
		}
		return base + sumFieldSize(t.fields) + variantSize(t.variant)
	case KindField:
		return t.base.Size()
	case KindPointer, KindFuncPtr, KindFunction, KindMemberFunc:
		return PointerSize
	case KindSet:
		return setWords(t.rangeVal) * 4
	case KindFile, KindText:
		return 2 * PointerSize
	}
	return 0
}

func sumFieldSize(fields []*Field) int64 {
	var n int64
	for _, f := range fields {
		if f.Static {
			continue
		}
		n += f.Type.Size()
	}
	return n
}

func maxFieldSize(fields []*Field) int64 {
	var n int64
	for _, f := range fields {
		if s := f.Type.Size(); s > n {
			n = s
		}
	}
	return n
}

func variantSize(v *Type) int64 {
	if v == nil {
		return 0
	}
	return v.Size()
}

// setWords is the number of 32-bit words backing a set over the given
// element range, clamped to MaxSetSize bits.
func setWords(r *Range) int64 {
	if r == nil {
		return 0
	}
	bits := r.Size()
	if bits > MaxSetSize {
		bits = MaxSetSize
	}
	return (bits + 31) / 32
}

// AlignSize is a type's natural alignment in target bytes.
func (t *Type) AlignSize() int64 {
	switch t.kind {
	case KindChar, KindBoolean:
		return 1
	case KindInteger, KindEnum:
		return 4
	case KindInt64, KindReal:
		return 8
	case KindVoid:
		return 1
	case KindRange:
		base := &Type{kind: t.rangeBase}
		return base.AlignSize()
	case KindArray, KindString:
		return t.base.AlignSize()
	case KindRecord, KindClass:
		n := int64(1)
		if t.kind == KindClass && t.base != nil {
			n = t.base.AlignSize()
		}
		for _, f := range t.fields {
			if a := f.Type.AlignSize(); a > n {
				n = a
			}
		}
		if t.variant != nil {
			if a := t.variant.AlignSize(); a > n {
				n = a
			}
		}
		return n
	case KindVariant:
		n := int64(1)
		for _, f := range t.fields {
			if a := f.Type.AlignSize(); a > n {
				n = a
			}
		}
		return n
	case KindField:
		return t.base.AlignSize()
	case KindPointer, KindFuncPtr, KindFunction, KindMemberFunc:
		return PointerSize
	case KindSet:
		return 4
	case KindFile, KindText:
		return PointerSize
	}
	return 1
}

// FieldIndex looks up a field by name, walking a class's inheritance
// chain and reporting which ancestor actually declares it.
func (t *Type) FieldIndex(name string) (index int, owner *Type, ok bool) {
	switch t.kind {
	case KindRecord, KindVariant, KindClass:
		for i, f := range t.fields {
			if f.Name == name {
				return i, t, true
			}
		}
		if t.kind == KindClass && t.base != nil {
			return t.base.FieldIndex(name)
		}
		if t.variant != nil {
			return t.variant.FieldIndex(name)
		}
	}
	return -1, nil, false
}

// VTableSlots is a class's virtual method table: inherited slots first,
// in base-class order, with Override methods replacing the base slot of
// the same name in place and new Virtual methods appended. Non-virtual
// and static methods never occupy a slot.
func (t *Type) VTableSlots() []*MemberFunc {
	if t.kind != KindClass {
		return nil
	}
	var slots []*MemberFunc
	if t.base != nil {
		slots = append(slots, t.base.VTableSlots()...)
	}
	for _, mf := range t.memberFuncs {
		if mf.Static {
			continue
		}
		if mf.Override {
			replaced := false
			for i, s := range slots {
				if s.Name == mf.Name {
					mf.VirtIndex = s.VirtIndex
					slots[i] = mf
					replaced = true
					break
				}
			}
			if replaced {
				continue
			}
		}
		if mf.Virtual || mf.Override {
			mf.VirtIndex = len(slots)
			slots = append(slots, mf)
		}
	}
	return slots
}

package types

// SameAs is structural equality, recursive on element types, field lists
// and ranges (spec.md §4.2). Class is the one nominal exception: two
// classes are the same type iff they are the same declaration, since
// Pascal-style object types are identified by name, not shape.
func (t *Type) SameAs(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t == o {
		return true
	}
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindChar, KindInteger, KindInt64, KindReal, KindVoid, KindBoolean:
		return true
	case KindEnum:
		return sameNames(t.enumNames, o.enumNames)
	case KindRange:
		return t.rangeBase == o.rangeBase && t.rangeVal.SameAs(o.rangeVal)
	case KindArray, KindString:
		if len(t.dims) != len(o.dims) || !t.base.SameAs(o.base) {
			return false
		}
		for i := range t.dims {
			if !t.dims[i].SameAs(o.dims[i]) {
				return false
			}
		}
		return true
	case KindRecord, KindVariant:
		return sameFields(t.fields, o.fields) && t.variant.SameAs(o.variant)
	case KindClass:
		return t.name != "" && t.name == o.name
	case KindPointer:
		if t.incomplete || o.incomplete {
			return t.name == o.name
		}
		return t.base.SameAs(o.base)
	case KindSet:
		return t.base.SameAs(o.base) && t.rangeVal.SameAs(o.rangeVal)
	case KindFuncPtr, KindFunction:
		return sameParams(t.params, o.params) && t.base.SameAs(o.base)
	case KindFile, KindText:
		return t.base.SameAs(o.base)
	case KindField:
		return t.base.SameAs(o.base)
	}
	return false
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameFields(a, b []*Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Static != b[i].Static || !a[i].Type.SameAs(b[i].Type) {
			return false
		}
	}
	return true
}

func sameParams(a, b []*Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ByRef != b[i].ByRef || !a[i].Type.SameAs(b[i].Type) {
			return false
		}
	}
	return true
}

// CompatibleType is the type a binary operator applied to t and o
// produces, or nil if the two are incompatible (spec.md §4.2): integer
// widens to int64, either widens to real when paired with one, two
// string-like operands combine into a string, two sets combine when
// their element types agree. pkg/sema calls it once, left operand as the
// receiver; it is not implemented as a strict symmetric wrapper, since the
// int64/real preference and string coercion rules are already symmetric
// by construction below.
func (t *Type) CompatibleType(o *Type) *Type {
	if t == nil || o == nil {
		return nil
	}
	if t.SameAs(o) {
		return t
	}
	tk, ok := t.Kind(), o.Kind()
	switch {
	case tk == KindInteger && ok == KindInteger:
		return NewIntegerType()
	case (tk == KindInteger && ok == KindInt64) || (tk == KindInt64 && ok == KindInteger) || (tk == KindInt64 && ok == KindInt64):
		return NewInt64Type()
	case (t.IsIntegral() && ok == KindReal) || (tk == KindReal && o.IsIntegral()) || (tk == KindReal && ok == KindReal):
		return NewRealType()
	case t.IsStringLike() && o.IsStringLike():
		return NewStringType(255)
	case tk == KindSet && ok == KindSet:
		if t.base == nil {
			return o
		}
		if o.base == nil {
			return t
		}
		if t.base.SameAs(o.base) {
			return t
		}
		return nil
	}
	return nil
}

// AssignableType is CompatibleType narrowed to the direction of an
// assignment or value-parameter binding: real accepts any integral
// source (widening), but no real-typed source may flow into an integer
// or int64 destination (spec.md §4.2 forbids narrowing). Range-vs-literal
// and array-of-char-vs-string-literal assignability are evaluated against
// the assigned literal in pkg/sema, since they depend on the expression
// being assigned rather than on the two static types alone; this method
// only covers the type-to-type cases that do not need that context.
func (t *Type) AssignableType(o *Type) *Type {
	if t == nil || o == nil {
		return nil
	}
	if t.SameAs(o) {
		return t
	}
	switch t.Kind() {
	case KindInteger, KindInt64:
		if o.Kind() == KindReal {
			return nil
		}
	}
	if t.kind == KindSet || o.kind == KindSet {
		if t.kind == KindSet && o.kind == KindSet && t.base != nil && o.base != nil && t.base.SameAs(o.base) {
			return t
		}
		return nil
	}
	return t.CompatibleType(o)
}

package types

// NewCharType builds the built-in char type ([0,255]).
func NewCharType() *Type { return &Type{kind: KindChar} }

// NewIntegerType builds the built-in 32-bit integer type.
func NewIntegerType() *Type { return &Type{kind: KindInteger} }

// NewInt64Type builds the built-in 64-bit integer type.
func NewInt64Type() *Type { return &Type{kind: KindInt64} }

// NewRealType builds the built-in 64-bit floating-point type.
func NewRealType() *Type { return &Type{kind: KindReal} }

// NewVoidType builds the procedure-result void type.
func NewVoidType() *Type { return &Type{kind: KindVoid} }

// NewBooleanType builds the built-in two-valued boolean type. Boolean is
// modeled as its own kind rather than routed through KindEnum, matching
// the original BoolDecl's distinct declaration kind even though it shares
// an enum's value-name storage and range semantics.
func NewBooleanType() *Type {
	return &Type{kind: KindBoolean, enumNames: []string{"false", "true"}}
}

// NewEnumType builds a user-declared enumeration from its member names in
// declaration order.
func NewEnumType(values []string) *Type {
	return &Type{kind: KindEnum, enumNames: values}
}

// NewRangeType builds a subrange declaration over base, reporting base's
// own kind through Kind() (spec.md §3) while retaining bounds.
func NewRangeType(base Kind, bounds *Range) *Type {
	return &Type{kind: KindRange, rangeBase: base, rangeVal: bounds}
}

// NewArrayType builds an array of elem over the given dimensions
// (outermost first).
func NewArrayType(elem *Type, dims []*Range) *Type {
	return &Type{kind: KindArray, base: elem, dims: dims}
}

// NewStringType builds a fixed-capacity string: a char array indexed
// [0, n], index 0 reserved for the length byte (Turbo Pascal convention).
func NewStringType(n int) *Type {
	r, _ := NewRange(0, int32(n))
	return &Type{kind: KindString, base: NewCharType(), dims: []*Range{r}, stringLen: n}
}

// NewRecordType builds a record from its fields and optional trailing
// variant part.
func NewRecordType(fields []*Field, variant *Type) *Type {
	return &Type{kind: KindRecord, fields: fields, variant: variant}
}

// NewVariantType builds the variant (union) part of a record or class.
func NewVariantType(fields []*Field) *Type {
	return &Type{kind: KindVariant, fields: fields}
}

// NewClassType builds a class from its own fields, own methods, optional
// base class and optional trailing variant part.
func NewClassType(name string, base *Type, fields []*Field, methods []*MemberFunc, variant *Type) *Type {
	return &Type{kind: KindClass, name: name, base: base, fields: fields, memberFuncs: methods, variant: variant}
}

// NewIncompletePointerType builds a forward-declared pointer awaiting
// FixUpIncomplete to resolve name to its pointee.
func NewIncompletePointerType(name string) *Type {
	return &Type{kind: KindPointer, name: name, incomplete: true}
}

// NewPointerType builds a pointer to pointee.
func NewPointerType(pointee *Type) *Type {
	return &Type{kind: KindPointer, base: pointee}
}

// NewFuncPtrType builds a procedural type value (function pointer) with
// the given signature.
func NewFuncPtrType(params []*Param, result *Type) *Type {
	return &Type{kind: KindFuncPtr, params: params, base: result}
}

// NewFunctionType builds a function or procedure's signature type.
func NewFunctionType(params []*Param, result *Type) *Type {
	return &Type{kind: KindFunction, params: params, base: result}
}

// NewFieldType wraps fieldType as a named record/class field's type,
// delegating IsCompound/Size/AlignSize to fieldType itself.
func NewFieldType(fieldType *Type) *Type {
	return &Type{kind: KindField, base: fieldType}
}

// NewSetType builds a set over subtype. bounds may be nil when the set
// literal's element range has not yet been inferred; pkg/sema's fixup
// pass fills it in once the literal's members are known.
func NewSetType(subtype *Type, bounds *Range) *Type {
	return &Type{kind: KindSet, base: subtype, rangeVal: bounds}
}

// NewFileType builds a typed file handle over elem.
func NewFileType(elem *Type) *Type {
	return &Type{kind: KindFile, base: elem}
}

// NewTextType builds the built-in untyped text-file handle (a file of
// char, declared at the type level only -- spec.md §10).
func NewTextType() *Type {
	return &Type{kind: KindText, base: NewCharType()}
}

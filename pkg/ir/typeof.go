package ir

import "lacsap/pkg/types"

// TypeOf maps a source type to its IR representation. It is a pure
// function, not itself memoised: the design note in spec.md §9 ("lazily
// materialises backing IR type, memoising the result") is implemented by
// irgen.Context, which caches TypeOf's result per *types.Type rather than
// threading a cache through pkg/types (pkg/types must not import pkg/ir,
// or the two packages would form a cycle -- types describes source-level
// shape, ir describes backend-level shape, and only the irgen layer
// needs to know both).
//
// wordSize is accepted for interface parity with the design note but
// currently unused: this module targets LLVM's opaque pointer type
// universally, so pointer representation does not vary with word size
// the way a QBE/assembly backend's register width would.
func TypeOf(t *types.Type, wordSize int) *Type {
	if t == nil {
		return &Type{Kind: Void}
	}
	switch t.Kind() {
	case types.KindChar, types.KindBoolean:
		return &Type{Kind: I8}
	case types.KindInteger, types.KindEnum:
		return &Type{Kind: I32}
	case types.KindInt64:
		return &Type{Kind: I64}
	case types.KindReal:
		return &Type{Kind: Double}
	case types.KindVoid:
		return &Type{Kind: Void}
	}

	switch t.RawKind() {
	case types.KindArray, types.KindString:
		return &Type{Kind: Array, Elem: TypeOf(t.SubType(), wordSize), Count: flatCount(t)}
	case types.KindRecord, types.KindVariant:
		return &Type{Kind: Struct, Fields: fieldTypes(t.Fields(), wordSize)}
	case types.KindClass:
		var fields []*Type
		if base := t.BaseClass(); base != nil {
			fields = append(fields, TypeOf(base, wordSize))
		}
		fields = append(fields, fieldTypes(t.Fields(), wordSize)...)
		if v := t.Variant(); v != nil {
			fields = append(fields, TypeOf(v, wordSize))
		}
		return &Type{Kind: Struct, Fields: fields}
	case types.KindPointer:
		if t.IsIncomplete() {
			return &Type{Kind: Ptr}
		}
		return &Type{Kind: Ptr, Elem: TypeOf(t.SubType(), wordSize)}
	case types.KindFuncPtr, types.KindFunction, types.KindMemberFunc:
		return &Type{Kind: Ptr}
	case types.KindField:
		return TypeOf(t.SubType(), wordSize)
	case types.KindSet:
		return &Type{Kind: Array, Elem: &Type{Kind: I32}, Count: t.Size() / 4}
	case types.KindFile, types.KindText:
		return &Type{Kind: Struct, Fields: []*Type{{Kind: Ptr}, {Kind: Ptr}}}
	}
	return &Type{Kind: I32}
}

func flatCount(t *types.Type) int64 {
	n := int64(1)
	for _, d := range t.Dims() {
		n *= d.Size()
	}
	return n
}

func fieldTypes(fields []*types.Field, wordSize int) []*Type {
	var out []*Type
	for _, f := range fields {
		if f.Static {
			continue
		}
		out = append(out, TypeOf(f.Type, wordSize))
	}
	return out
}

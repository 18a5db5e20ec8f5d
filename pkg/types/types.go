// Package types implements the type hierarchy described in spec.md §3/§4:
// a tagged Type value (REDESIGN FLAGS: tagged variants with exhaustive
// dispatch rather than a virtual method table per kind, mirroring the
// teacher's ast.BxType{Kind, Base, Name, ArraySize, Fields} shape) plus the
// structural/directed relations (SameAs, CompatibleType, AssignableType)
// and a scoped TypeRegistry.
package types

import "math"

// MaxSetSize is the largest bit-width a SetDecl's backing bitmap may use,
// and PointerSize is the target's pointer width in bytes. Both start at
// the runtime ABI's built-in defaults (16 32-bit words, 64-bit pointers)
// and are overridden once per compilation by Configure, which
// irgen.NewContext calls with its *config.Config's MaxSetSize/WordSize
// before lowering anything (pkg/sema reads its own Cfg.MaxSetSize for the
// set-range clamp instead) -- package types
// itself takes plain ints rather than importing pkg/config, since Size()
// and AlignSize() recurse through this package alone with no config
// value to thread as a parameter.
var (
	MaxSetSize  int64 = 512
	PointerSize int64 = 8
)

// Configure overrides MaxSetSize and PointerSize for the current
// compilation. Call once, before any Size/AlignSize/set-range computation
// runs; a caller that never calls it gets the defaults above.
func Configure(maxSetSize, pointerSize int64) {
	MaxSetSize = maxSetSize
	PointerSize = pointerSize
}

// Kind discriminates the variants of Type.
type Kind int

const (
	KindChar Kind = iota
	KindInteger
	KindInt64
	KindReal
	KindVoid
	KindBoolean
	KindEnum
	KindRange
	KindArray
	KindString
	KindRecord
	KindVariant
	KindClass
	KindPointer
	KindFuncPtr
	KindFunction
	KindField
	KindMemberFunc
	KindSet
	KindFile
	KindText
)

var kindNames = [...]string{
	"char", "integer", "int64", "real", "void", "boolean", "enum", "range",
	"array", "string", "record", "variant", "class", "pointer", "funcptr",
	"function", "field", "memberfunc", "set", "file", "text",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "<unknown kind>"
}

// Field is one named member of a Record, Variant or Class.
type Field struct {
	Name   string
	Type   *Type
	Static bool
}

// Param is one entry in a Function/FuncPtr/MemberFunc signature.
type Param struct {
	Name  string
	Type  *Type
	ByRef bool // declared with "var"
}

// MemberFunc is one entry in a Class's method table.
type MemberFunc struct {
	Name      string
	Params    []*Param
	Result    *Type
	Virtual   bool
	Override  bool
	Static    bool
	VirtIndex int // slot index once VTableSlots has run; 0 until then
}

// Type is the tagged union of every type-declaration variant spec.md §3
// names. Only the fields relevant to Kind are populated; the rest are
// zero. Kind-specific construction happens through the New* functions
// below rather than by poking fields directly.
type Type struct {
	kind Kind

	// KindRange only: the base kind Kind() reports in place of KindRange,
	// and the declared bounds.
	rangeBase Kind
	rangeVal  *Range

	// Array/String element type, Pointer pointee, Set element type, Class
	// base class, File/Text element type, Function/FuncPtr/MemberFunc
	// result type: whichever Kind is active picks the right meaning, the
	// same way the original CompoundDecl reuses one baseType slot.
	base *Type

	// Array/String dimensions, outermost first. String stores a single
	// [0, N] range (index 0 reserved for the length byte, Turbo Pascal
	// convention) and stringLen == N.
	dims      []*Range
	stringLen int

	// Pointer forward-declaration bookkeeping.
	name       string
	incomplete bool

	// Record/Variant/Class.
	fields      []*Field
	variant     *Type // trailing VariantDecl, nil if none
	memberFuncs []*MemberFunc

	// Enum/Boolean, in declaration order.
	enumNames []string

	// Function/FuncPtr/MemberFunc signature (result type is `base`).
	params []*Param
}

// Kind reports the outer kind, except Range declarations which report
// their underlying base kind (spec.md §3) -- use IsRange to tell a plain
// Integer from an Integer-based subrange when that distinction matters.
func (t *Type) Kind() Kind {
	if t.kind == KindRange {
		return t.rangeBase
	}
	return t.kind
}

// IsRange reports whether this is a range (subrange) declaration.
func (t *Type) IsRange() bool { return t.kind == KindRange }

// RawKind is the unresolved discriminant, useful when code must tell a
// Set or Record apart from other compounds without Kind()'s Range
// resolution getting in the way (Kind never rewrites non-Range kinds, so
// this is only ever different from Kind() for KindRange values).
func (t *Type) RawKind() Kind { return t.kind }

func (t *Type) IsIntegral() bool {
	switch t.Kind() {
	case KindChar, KindInteger, KindInt64, KindBoolean, KindEnum:
		return true
	}
	return false
}

func (t *Type) IsCompound() bool {
	switch t.kind {
	case KindArray, KindString, KindPointer, KindFunction, KindFuncPtr,
		KindFile, KindText, KindRecord, KindVariant, KindClass, KindSet:
		return true
	case KindField:
		return t.base.IsCompound()
	}
	return false
}

func (t *Type) IsStringLike() bool {
	switch t.kind {
	case KindChar, KindString:
		return true
	case KindArray:
		return t.base != nil && t.base.Kind() == KindChar
	}
	return false
}

func (t *Type) IsUnsigned() bool {
	switch t.kind {
	case KindChar, KindEnum, KindBoolean:
		return true
	case KindRange:
		return t.rangeVal != nil && t.rangeVal.Start >= 0
	}
	return false
}

// Bits is the storage width for numeric types. Subranges delegate to
// their base kind: the reference compiler narrows range storage further,
// but this spec only requires "width in bits for numeric types" and every
// numeric value this compiler lowers is carried in an i32 or wider slot
// regardless of its declared subrange (see pkg/irgen).
func (t *Type) Bits() int {
	switch t.Kind() {
	case KindChar:
		return 8
	case KindInteger, KindEnum, KindBoolean:
		return 32
	case KindInt64:
		return 64
	case KindReal:
		return 64
	}
	return 0
}

// GetRange is the representable interval: char is [0,255], integer is the
// full signed 32-bit range, enum (and boolean) is [0,n-1], a range
// subtype is its declared bounds, a set is its (possibly still-absent)
// element range. Everything else is undefined (nil).
func (t *Type) GetRange() *Range {
	switch t.kind {
	case KindChar:
		r, _ := NewRange(0, 255)
		return r
	case KindInteger:
		r, _ := NewRange(math.MinInt32, math.MaxInt32)
		return r
	case KindEnum, KindBoolean:
		r, _ := NewRange(0, int32(len(t.enumNames)-1))
		return r
	case KindRange, KindSet:
		return t.rangeVal
	}
	return nil
}

// SubType is the element/pointee/result type for compound kinds.
func (t *Type) SubType() *Type {
	switch t.kind {
	case KindArray, KindString, KindPointer, KindSet, KindFile, KindText,
		KindField, KindFunction, KindFuncPtr:
		return t.base
	}
	return nil
}

// EnumNames returns an enum or boolean type's member names, in order.
func (t *Type) EnumNames() []string { return t.enumNames }

// Fields returns a record/variant/class's own (non-inherited) fields.
func (t *Type) Fields() []*Field { return t.fields }

// Variant returns a record or class's trailing variant part, if any.
func (t *Type) Variant() *Type { return t.variant }

// BaseClass returns a class's inheritance base, if any.
func (t *Type) BaseClass() *Type {
	if t.kind == KindClass {
		return t.base
	}
	return nil
}

// Name returns a class's name or a pointer's forward-declaration name.
func (t *Type) Name() string { return t.name }

// IsIncomplete reports whether a pointer's pointee is still unresolved.
func (t *Type) IsIncomplete() bool { return t.kind == KindPointer && t.incomplete }

// Dims returns an array or string's dimension ranges, outermost first.
func (t *Type) Dims() []*Range { return t.dims }

// Params returns a function/funcptr/member-func signature.
func (t *Type) Params() []*Param { return t.params }

// Result returns a function/funcptr/member-func result type.
func (t *Type) Result() *Type {
	switch t.kind {
	case KindFunction, KindFuncPtr, KindMemberFunc:
		return t.base
	}
	return nil
}

// SetSubType returns a set's element type.
func (t *Type) SetSubType() *Type {
	if t.kind == KindSet {
		return t.base
	}
	return nil
}

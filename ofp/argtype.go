package ofp

// ArgType is the classified argument of an action.
// Implementations: VoidArg, PrimitiveArg, StructArg, VarLenArg.
type ArgType interface {
	argType()
	// String returns the C spelling used in annotations.
	String() string
}

// VoidArg is an action without argument payload.
type VoidArg struct{}

func (VoidArg) argType() {}
func (VoidArg) String() string { return "void" }

// PrimitiveArg is a fixed-width catalog type.
type PrimitiveArg struct {
	Type Primitive
}

func (PrimitiveArg) argType() {}
func (a PrimitiveArg) String() string { return a.Type.Name }

// StructArg is an opaque structure whose layout is defined by the structure
// itself. Name includes the "struct " keyword.
type StructArg struct {
	Name string
}

func (StructArg) argType() {}
func (a StructArg) String() string { return a.Name }

// VarLenArg is a primitive or structure followed by a trailing array.
type VarLenArg struct {
	Base ArgType // PrimitiveArg or StructArg
}

func (VarLenArg) argType() {}
func (a VarLenArg) String() string { return a.Base.String() + ", ..." }

// Base strips a VarLenArg wrapper.
func Base(a ArgType) ArgType {
	if v, ok := a.(VarLenArg); ok {
		return v.Base
	}
	return a
}

// IsVarLen reports whether a carries a trailing variable-length array.
func IsVarLen(a ArgType) bool {
	_, ok := a.(VarLenArg)
	return ok
}

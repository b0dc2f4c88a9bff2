package ofp

import (
	"fmt"
	"strconv"
)

// ActionAlign is the byte boundary every action record length rounds up to.
// It matches OFP_ACTION_ALIGN in the generated code.
const ActionAlign = 8

// MaxVarLen is the symbolic maximum length of a variable-length action.
const MaxVarLen = "65536 - OFP_ACTION_ALIGN"

// Length is a record length that is either a byte count or a C expression
// evaluated by the consumer.
type Length struct {
	Bytes int
	Expr  string
}

// Bytes returns a numeric Length.
func Bytes(n int) Length { return Length{Bytes: n} }

// Symbolic returns a Length spelled as a C expression.
func Symbolic(expr string) Length { return Length{Expr: expr} }

// IsSymbolic reports whether the length is only known to the C compiler.
func (l Length) IsSymbolic() bool { return l.Expr != "" }

// String returns the C spelling of the length.
func (l Length) String() string {
	if l.Expr != "" {
		return l.Expr
	}
	return strconv.Itoa(l.Bytes)
}

// Layout is the placement of an action argument inside its record.
type Layout struct {
	// ArgOffset and ArgLen are zero for void and struct arguments.
	ArgOffset int
	ArgLen    int
	MinLen    Length
	MaxLen    Length
}

// ComputeLayout places arg after a vendor header of headerLen bytes.
// It is a pure function of its inputs.
func ComputeLayout(arg ArgType, headerLen int) (Layout, error) {
	var l Layout

	switch a := Base(arg).(type) {
	case PrimitiveArg:
		l.ArgOffset = roundUp(headerLen, a.Type.Align)
		l.ArgLen = a.Type.Size
		l.MinLen = Bytes(roundUp(l.ArgOffset+l.ArgLen, ActionAlign))
	case VoidArg:
		l.MinLen = Bytes(roundUp(headerLen, ActionAlign))
	case StructArg:
		l.MinLen = Symbolic("sizeof(" + a.Name + ")")
	default:
		return Layout{}, fmt.Errorf("cannot lay out argument type %v", arg)
	}

	if IsVarLen(arg) {
		if _, ok := Base(arg).(VoidArg); ok {
			return Layout{}, fmt.Errorf("void argument cannot be variable length")
		}
		l.MaxLen = Symbolic(MaxVarLen)
	} else {
		l.MaxLen = l.MinLen
	}
	return l, nil
}

func roundUp(x, y int) int {
	return (x + y - 1) / y * y
}

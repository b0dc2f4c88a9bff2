package annot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gogpu/ofpact/ofp"
)

const varLenSuffix = ", ..."

var structArg = regexp.MustCompile(`^struct [a-zA-Z0-9_]+$`)

// ParseArgType classifies the argument segment of an annotation:
// "void", a catalog primitive, or "struct NAME", optionally followed by
// ", ..." for a trailing variable-length array.
func ParseArgType(text string) (ofp.ArgType, error) {
	base, varLen := strings.CutSuffix(text, varLenSuffix)

	var arg ofp.ArgType
	switch {
	case base == "void":
		if varLen {
			return nil, fmt.Errorf("bad argument type %s", text)
		}
		return ofp.VoidArg{}, nil
	case structArg.MatchString(base):
		arg = ofp.StructArg{Name: base}
	default:
		p, ok := ofp.LookupPrimitive(base)
		if !ok {
			return nil, fmt.Errorf("bad argument type %s", text)
		}
		arg = ofp.PrimitiveArg{Type: p}
	}

	if varLen {
		return ofp.VarLenArg{Base: arg}, nil
	}
	return arg, nil
}

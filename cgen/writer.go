package cgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/ofpact/ofp"
)

const banner = "/* Generated automatically; do not modify!     -*- buffer-read-only: t -*- */"

// Writer generates C source from a validated registry.
type Writer struct {
	registry *ofp.Registry
	actions  []*ofp.Action
	options  *Options

	// Output buffer
	out strings.Builder

	// Current indentation level
	indent int
}

func newWriter(reg *ofp.Registry, actions []*ofp.Action, options *Options) *Writer {
	return &Writer{
		registry: reg,
		actions:  actions,
		options:  options,
	}
}

// String returns the generated source.
func (w *Writer) String() string {
	return w.out.String()
}

func (w *Writer) writeModule() error {
	w.writeLine(banner)
	w.writeLine("")

	switch w.options.Mode {
	case ModePrototypes:
		w.writePrototypes()
	case ModeDefinitions:
		w.writeDefinitions()
	default:
		return fmt.Errorf("unsupported mode %s", w.options.Mode)
	}
	return nil
}

// Output helpers

// writeLine writes a line with optional format args and a newline.
//
//nolint:goprintffuncname
func (w *Writer) writeLine(format string, args ...any) {
	if format == "" && len(args) == 0 {
		w.out.WriteByte('\n')
		return
	}
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}

// Signatures shared by both modes

// putReturnType is the C return type of the put_ constructor. Struct
// arguments return a pointer to the appended record.
func putReturnType(a *ofp.Action) string {
	if s, ok := ofp.Base(a.Arg).(ofp.StructArg); ok {
		return s.Name + " *"
	}
	return "void"
}

func putParams(a *ofp.Action) string {
	params := "struct ofpbuf *openflow"
	if a.NeedsVersion {
		params += ", enum ofp_version version"
	}
	if p, ok := ofp.Base(a.Arg).(ofp.PrimitiveArg); ok {
		params += ", " + p.Type.Name + " arg"
	}
	return params
}

// putCall is the ofpact_put_raw call in the constructor body.
func putCall(a *ofp.Action) string {
	version := "version"
	if !a.NeedsVersion {
		version = strconv.Itoa(int(a.First().Version))
	}

	arg := "0"
	if p, ok := ofp.Base(a.Arg).(ofp.PrimitiveArg); ok {
		arg = "arg"
		if p.Type.HasByteOrder() {
			arg = p.Type.Ntoh + "(arg)"
		}
	}

	call := fmt.Sprintf("ofpact_put_raw(openflow, %s, %s, %s);", version, a.Enum, arg)
	if _, ok := ofp.Base(a.Arg).(ofp.StructArg); ok {
		return "return " + call
	}
	return call
}

// decodeParams lists the parameter types of decode_<ENUM>. Void decoders
// only see the output buffer and the optional lookup table.
func decodeParams(a *ofp.Action) []string {
	var params []string
	switch base := ofp.Base(a.Arg).(type) {
	case ofp.StructArg:
		params = append(params, "const "+base.Name+" *", "enum ofp_version")
	case ofp.PrimitiveArg:
		params = append(params, base.Type.Name, "enum ofp_version")
	}
	if a.AuxTable {
		params = append(params, "const struct vl_mff_map *", "uint64_t *")
	}
	return append(params, "struct ofpbuf *")
}

// decodeArgs lists the dispatcher's arguments to decode_<ENUM>, in the same
// order as decodeParams.
func decodeArgs(a *ofp.Action) []string {
	var args []string
	switch base := ofp.Base(a.Arg).(type) {
	case ofp.StructArg:
		args = append(args, "ALIGNED_CAST(const "+base.Name+" *, a)", "version")
	case ofp.PrimitiveArg:
		if base.Type.HasByteOrder() {
			args = append(args, base.Type.Hton+"(arg)", "version")
		} else {
			args = append(args, "arg", "version")
		}
	}
	if a.AuxTable {
		args = append(args, "vl_mff_map", "tlv_bitmap")
	}
	return append(args, "out")
}

// declarator joins a return type and a function name the way C style in
// ofp-actions.c spells it: "void f" but "struct x *f".
func declarator(ret, name string) string {
	if strings.HasSuffix(ret, "*") {
		return ret + name
	}
	return ret + " " + name
}

var cStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func cString(s string) string {
	return `"` + cStringEscaper.Replace(s) + `"`
}

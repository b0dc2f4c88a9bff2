package cgen

import (
	"strconv"
	"strings"

	"github.com/gogpu/ofpact/ofp"
)

func (w *Writer) writeDefinitions() {
	if !w.options.OmitSizeAsserts {
		w.writeSizeAsserts()
	}
	w.writeInstances()
	for _, a := range w.actions {
		w.writeConstructor(a)
	}
	w.writeDispatcher()
}

func (w *Writer) writeSizeAsserts() {
	structs := w.registry.Structs()
	if len(structs) == 0 {
		return
	}
	w.writeLine("/* Verify that structs used as actions are reasonable sizes. */")
	for _, name := range structs {
		w.writeLine("BUILD_ASSERT_DECL(sizeof(%s) %% OFP_ACTION_ALIGN == 0);", name)
	}
	w.writeLine("")
}

// writeInstances writes all_raw_instances, one row per registry entry in
// first-resolution order.
func (w *Writer) writeInstances() {
	w.writeLine("static struct ofpact_raw_instance all_raw_instances[] = {")
	w.pushIndent()
	for _, e := range w.registry.Entries() {
		w.writeInstance(e)
	}
	w.popIndent()
	w.writeLine("};")
	w.writeLine("")
}

func (w *Writer) writeInstance(e *ofp.Entry) {
	w.writeLine("{ { 0x%08x, %2d, 0x%02x },", e.Vendor, e.Type, uint8(e.Version))
	fields := []string{
		e.Enum,
		"HMAP_NODE_NULL_INITIALIZER",
		"HMAP_NODE_NULL_INITIALIZER",
		e.Layout.MinLen.String(),
		e.Layout.MaxLen.String(),
		strconv.Itoa(e.Layout.ArgOffset),
		strconv.Itoa(e.Layout.ArgLen),
		cString(ofp.DisplayName(e.Enum)),
	}
	if e.Deprecation != "" {
		fields = append(fields, cString(e.Deprecation))
	} else {
		fields = append(fields, "NULL")
	}
	for _, f := range fields {
		w.writeLine("  %s,", f)
	}
	w.writeLine("},")
}

func (w *Writer) writeConstructor(a *ofp.Action) {
	w.writeLine("static inline %s", putReturnType(a))
	w.writeLine("put_%s(%s)", a.PutName(), putParams(a))
	w.writeLine("{")
	w.pushIndent()
	w.writeLine("%s", putCall(a))
	w.popIndent()
	w.writeLine("}")
	w.writeLine("")
}

func (w *Writer) writeDispatcher() {
	w.writeLine("static enum ofperr")
	w.writeLine("ofpact_decode(const struct ofp_action_header *a, enum ofp_raw_action_type raw,")
	w.writeLine("              enum ofp_version version, uint64_t arg,")
	w.writeLine("              const struct vl_mff_map *vl_mff_map,")
	w.writeLine("              uint64_t *tlv_bitmap, struct ofpbuf *out)")
	w.writeLine("{")
	w.pushIndent()
	w.writeLine("switch (raw) {")
	for _, a := range w.actions {
		w.writeLine("case %s:", a.Enum)
		w.pushIndent()
		w.writeLine("return decode_%s(%s);", a.Enum, strings.Join(decodeArgs(a), ", "))
		w.popIndent()
		w.writeLine("")
	}
	w.writeLine("default:")
	w.pushIndent()
	w.writeLine("OVS_NOT_REACHED();")
	w.popIndent()
	w.writeLine("}")
	w.popIndent()
	w.writeLine("}")
}

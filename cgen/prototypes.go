package cgen

import "strings"

func (w *Writer) writePrototypes() {
	if len(w.actions) > 0 {
		for _, a := range w.actions {
			w.writeLine("static inline %s(%s);", declarator(putReturnType(a), "put_"+a.PutName()), putParams(a))
		}
		w.writeLine("")

		for _, a := range w.actions {
			w.writeLine("static enum ofperr decode_%s(%s);", a.Enum, strings.Join(decodeParams(a), ", "))
		}
		w.writeLine("")
	}

	w.writeLine("static enum ofperr ofpact_decode(const struct ofp_action_header *,")
	w.writeLine("                                 enum ofp_raw_action_type raw,")
	w.writeLine("                                 enum ofp_version version,")
	w.writeLine("                                 uint64_t arg, const struct vl_mff_map *vl_mff_map,")
	w.writeLine("                                 uint64_t *tlv_bitmap, struct ofpbuf *out);")
}

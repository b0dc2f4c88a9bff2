// Package cgen emits the C code that Open vSwitch compiles into ofp-actions.c
// from a resolved ofp.Registry.
//
// # Usage
//
//	reg, conflicts, err := ofpact.Scan(f, "ofp-actions.c", ofpact.Options{})
//	if err != nil {
//	    return err
//	}
//	if conflicts.HasErrors() {
//	    return conflicts
//	}
//
//	code, _, err := cgen.Compile(reg, cgen.Options{Mode: cgen.ModeDefinitions})
//	if err != nil {
//	    return err
//	}
//
// # Modes
//
// ModePrototypes writes forward declarations: one put_ constructor prototype
// and one decode_ prototype per enumerator, followed by the ofpact_decode
// dispatcher prototype. The consumer includes it before the decoders are
// defined.
//
// ModeDefinitions writes the struct size assertions, the all_raw_instances
// table, the put_ constructors and the ofpact_decode dispatcher. The consumer
// includes it after the decoders.
//
// # Byte order
//
// Primitive arguments travel in host order through ofpact_put_raw and the
// dispatcher's uint64_t argument. Constructors take the wire-order value and
// convert it with the catalog's ntoh function; the dispatcher converts back
// with hton before calling the decoder.
package cgen

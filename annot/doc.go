// Package annot parses the annotated raw action enumeration of ofp-actions.c
// and lowers it into an ofp.Registry.
//
// # Annotation language
//
// Each enumerator is preceded by a block comment:
//
//	/* OF1.0(0), OF1.1+(0): ovs_be16. */
//	OFPAT_RAW10_OUTPUT,
//
// The text before the first colon is a comma-separated list of destinations.
// Each destination names a vendor, a version or version range, and the
// vendor's type code:
//
//	OF1.0(5)                 one version
//	OF1.1-1.3(7)             inclusive range
//	NX1.0+(14)               1.0 through the latest known version
//	OF1.2+(25) is deprecated (use Set-Field)
//
// The text after the colon is the argument type: void, a primitive such as
// ovs_be32, or "struct NAME", optionally followed by ", ..." for a trailing
// variable-length array. The token VLMFF marks decoders that take the
// vl_mff_map lookup table, and one bracketed hint such as "[8 bytes]" is
// ignored.
//
// # Components
//
//   - LineSource: line reader with line numbers
//   - Parser: annotation parser producing ActionDecl values
//   - Lowerer: destination resolver building the ofp.Registry
//
// Structural errors are returned as *SourceError and stop the scan.
// Destinations that collide are collected as Conflicts so that one run
// reports all of them.
package annot

package annot

import "github.com/gogpu/ofpact/ofp"

// ActionDecl is one member of the raw action enumeration together with its
// annotation comment.
type ActionDecl struct {
	// Enum is the enumerator, e.g. OFPAT_RAW10_OUTPUT.
	Enum  string
	Dests []Dest
	Arg   ofp.ArgType
	// AuxTable is set by the VLMFF marker.
	AuxTable bool
	// Pos is the location of the enumerator line.
	Pos ofp.Position
}

// Dest is one parsed destination token, e.g. "OF1.1-1.3(7)".
type Dest struct {
	Raw    string
	Vendor string
	First  string
	// Last is the explicit end of a range; empty when absent.
	Last string
	// Latest is set by a trailing "+".
	Latest      bool
	Type        int
	Deprecation string
}

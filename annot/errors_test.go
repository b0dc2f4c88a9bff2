package annot

import (
	"strings"
	"testing"

	"github.com/gogpu/ofpact/ofp"
)

func TestSourceError(t *testing.T) {
	err := NewSourceErrorf(ofp.Position{File: "a.c", Line: 12}, "bad %s", "thing")
	if got := err.Error(); got != "a.c:12: bad thing" {
		t.Errorf("Error() = %q", got)
	}

	bare := &SourceError{Message: "no position"}
	if got := bare.Error(); got != "no position" {
		t.Errorf("Error() = %q", got)
	}
}

func TestConflicts(t *testing.T) {
	var cl Conflicts
	if cl.HasErrors() {
		t.Error("empty list should have no errors")
	}
	if cl.FormatAll() != "" {
		t.Error("empty list should format to nothing")
	}

	existing := &ofp.Entry{
		Key:  ofp.Key{Vendor: 0x2320, Type: 7, Version: 4},
		Enum: "NXAST_RAW_A",
		Pos:  ofp.Position{File: "a.c", Line: 10},
	}
	for _, enum := range []string{"NXAST_RAW_B", "NXAST_RAW_C"} {
		cl = append(cl, &Conflict{
			Dest:        "NX1.3(7)",
			Enum:        enum,
			Pos:         ofp.Position{File: "a.c", Line: 20},
			Existing:    existing,
			VersionName: "1.3",
		})
	}

	if !cl.HasErrors() {
		t.Error("HasErrors() = false")
	}
	first := "a.c:20: NX1.3(7): 0x2320,7 in OF1.3 means both NXAST_RAW_A and NXAST_RAW_B.\n" +
		"a.c:10: NX1.3(7): Here is the location of the previous definition."
	if got := cl[0].Error(); got != first {
		t.Errorf("Error() =\n%s\nwant\n%s", got, first)
	}
	if !strings.HasSuffix(cl.Error(), "(and 1 more conflicts)") {
		t.Errorf("Conflicts.Error() = %q", cl.Error())
	}

	all := cl.FormatAll()
	if strings.Count(all, "\n") != 4 {
		t.Errorf("FormatAll() should produce four lines, got %q", all)
	}
}

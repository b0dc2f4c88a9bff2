package annot

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gogpu/ofpact/ofp"
)

func lowerSource(t *testing.T, tables *ofp.Tables, source string) (*Lowerer, error) {
	t.Helper()
	l := NewLowerer(tables)
	p := NewParser(strings.NewReader(source), "ofp-actions.c")
	for {
		decl, err := p.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return l, nil
			}
			return l, err
		}
		if err := l.Lower(decl); err != nil {
			return l, err
		}
	}
}

func enumBlock(body string) string {
	return "enum ofp_raw_action_type {\n" + body + "};\n"
}

func TestLower_SingleVersion(t *testing.T) {
	l, err := lowerSource(t, nil, enumBlock("    /* OF1.0(5): void. */\n    OFPAT_RAW10_STRIP_VLAN,\n"))
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	reg := l.Registry()
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
	e, ok := reg.Lookup(ofp.Key{Vendor: 0, Type: 5, Version: 1})
	if !ok {
		t.Fatal("entry for OF1.0(5) not found")
	}
	if e.Enum != "OFPAT_RAW10_STRIP_VLAN" {
		t.Errorf("Enum = %q", e.Enum)
	}
	if e.Layout.MinLen != ofp.Bytes(8) || e.Layout.MaxLen != ofp.Bytes(8) {
		t.Errorf("Layout = %+v, want min=max=8", e.Layout)
	}
	if e.Pos.Line != 3 {
		t.Errorf("Pos.Line = %d, want 3", e.Pos.Line)
	}
}

func TestLower_Range(t *testing.T) {
	l, err := lowerSource(t, nil, enumBlock("    /* OF1.1-1.4(7): ovs_be32. */\n    OFPAT_RAW11_SET_MPLS_LABEL,\n"))
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	reg := l.Registry()
	if reg.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", reg.Len())
	}
	for v := ofp.Version(2); v <= 5; v++ {
		if _, ok := reg.Lookup(ofp.Key{Type: 7, Version: v}); !ok {
			t.Errorf("version %d missing", v)
		}
	}
	if _, ok := reg.Lookup(ofp.Key{Type: 7, Version: 6}); ok {
		t.Error("version 6 should not be resolved")
	}
}

func TestLower_Latest(t *testing.T) {
	source := enumBlock("    /* NX1.3+(38): void. */\n    NXAST_RAW_CT_CLEAR,\n")

	l, err := lowerSource(t, nil, source)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	if got := l.Registry().Len(); got != 3 {
		t.Errorf("default tables: Len() = %d, want 3", got)
	}

	versions := append(ofp.DefaultVersions(), ofp.VersionDef{Name: "1.6", Code: 7})
	tables, err := ofp.NewTables(ofp.DefaultVendors(), versions)
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}
	l, err = lowerSource(t, tables, source)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	if got := l.Registry().Len(); got != 4 {
		t.Errorf("with 1.6: Len() = %d, want 4", got)
	}
	if _, ok := l.Registry().Lookup(ofp.Key{Vendor: 0x2320, Type: 38, Version: 7}); !ok {
		t.Error("1.6 entry missing")
	}
}

func TestLower_VendorHeader(t *testing.T) {
	l, err := lowerSource(t, nil, enumBlock(
		"    /* OF1.0(3): ovs_be16. */\n    OFPAT_RAW10_SET_VLAN_PCP,\n"+
			"    /* NX1.0+(3): ovs_be16. */\n    NXAST_RAW_RESUBMIT,\n"))
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	of := l.Registry().Versions("OFPAT_RAW10_SET_VLAN_PCP")[0]
	if of.Layout.ArgOffset != 4 || of.Layout.MinLen != ofp.Bytes(8) {
		t.Errorf("OF layout = %+v, want offset 4 min 8", of.Layout)
	}
	nx := l.Registry().Versions("NXAST_RAW_RESUBMIT")[0]
	if nx.Layout.ArgOffset != 10 || nx.Layout.MinLen != ofp.Bytes(16) {
		t.Errorf("NX layout = %+v, want offset 10 min 16", nx.Layout)
	}
}

func TestLower_Conflict(t *testing.T) {
	source := enumBlock(
		"    /* OF1.0(5): void. */\n    OFPAT_RAW10_A,\n" +
			"\n" +
			"    /* OF1.0(5): void. */\n    OFPAT_RAW10_B,\n")

	l, err := lowerSource(t, nil, source)
	if err != nil {
		t.Fatalf("conflicts must not be fatal: %v", err)
	}
	conflicts := l.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}
	if l.Registry().Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Registry().Len())
	}

	want := "ofp-actions.c:6: OF1.0(5): 0x0,5 in OF1.0 means both OFPAT_RAW10_A and OFPAT_RAW10_B.\n" +
		"ofp-actions.c:3: OF1.0(5): Here is the location of the previous definition."
	if got := conflicts[0].Error(); got != want {
		t.Errorf("conflict message:\n got: %q\nwant: %q", got, want)
	}
}

func TestLower_FatalErrors(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		wantErr string
	}{
		{"unknown vendor", "XX1.0(1): void.", "XX: unknown vendor"},
		{"unknown version", "OF1.9(1): void.", "1.9: unknown OpenFlow version"},
		{"unknown range end", "OF1.0-2.0(1): void.", "2.0: unknown OpenFlow version"},
		{"inverted range", "OF1.3-1.1(1): void.", "1.3-1.1: 1.1 precedes 1.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := lowerSource(t, nil, enumBlock("    /* "+tt.comment+" */\n    OFPAT_RAW_A,\n"))
			if err == nil {
				t.Fatal("expected error")
			}
			var serr *SourceError
			if !errors.As(err, &serr) {
				t.Fatalf("err = %T, want *SourceError", err)
			}
			if serr.Pos.Line != 3 {
				t.Errorf("Pos.Line = %d, want 3", serr.Pos.Line)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
			if l.Registry().Len() != 0 {
				t.Errorf("fatal error left %d entries", l.Registry().Len())
			}
		})
	}
}

func TestLower_SealedRegistry(t *testing.T) {
	l := NewLowerer(nil)
	l.Registry().Seal()
	decl := &ActionDecl{
		Enum:  "OFPAT_RAW_A",
		Dests: []Dest{{Raw: "OF1.0(1)", Vendor: "OF", First: "1.0", Type: 1}},
		Arg:   ofp.VoidArg{},
	}
	if err := l.Lower(decl); !errors.Is(err, ofp.ErrSealed) {
		t.Errorf("Lower on sealed registry: err = %v, want ErrSealed", err)
	}
}

package ofpact

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gogpu/ofpact/annot"
	"github.com/gogpu/ofpact/cgen"
	"github.com/gogpu/ofpact/ofp"
)

const twoActions = `enum ofp_raw_action_type {
    /* OF1.0(0): struct ofp10_action_output. */
    OFPAT_RAW10_OUTPUT,

    /* OF1.1+(17): ovs_be16. */
    OFPAT_RAW11_PUSH_VLAN,
};
`

func TestCompile(t *testing.T) {
	code, err := Compile(strings.NewReader(twoActions), "a.c", DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.HasPrefix(code, "/* Generated automatically; do not modify!") {
		t.Errorf("missing banner:\n%s", code)
	}
	if !strings.Contains(code, "static struct ofpact_raw_instance all_raw_instances[] = {") {
		t.Error("definitions should contain the instance table")
	}

	opts := DefaultOptions()
	opts.Mode = cgen.ModePrototypes
	protos, err := Compile(strings.NewReader(twoActions), "a.c", opts)
	if err != nil {
		t.Fatalf("Compile prototypes: %v", err)
	}
	if strings.Contains(protos, "all_raw_instances") {
		t.Error("prototypes should not contain the instance table")
	}
}

func TestCompile_OmitSizeAsserts(t *testing.T) {
	const assert = "BUILD_ASSERT_DECL(sizeof(struct ofp10_action_output) % OFP_ACTION_ALIGN == 0);"

	code, err := Compile(strings.NewReader(twoActions), "a.c", DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(code, assert) {
		t.Errorf("definitions should assert struct sizes:\n%s", code)
	}

	opts := DefaultOptions()
	opts.OmitSizeAsserts = true
	code, err = Compile(strings.NewReader(twoActions), "a.c", opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if strings.Contains(code, "BUILD_ASSERT_DECL") {
		t.Errorf("OmitSizeAsserts should drop the assertions:\n%s", code)
	}
	if !strings.Contains(code, "all_raw_instances") {
		t.Error("instance table missing")
	}
}

func TestCompileWithInfo(t *testing.T) {
	_, info, err := CompileWithInfo(strings.NewReader(twoActions), "a.c", DefaultOptions())
	if err != nil {
		t.Fatalf("CompileWithInfo: %v", err)
	}
	if info.Actions != 2 {
		t.Errorf("Actions = %d, want 2", info.Actions)
	}
	if info.Instances != 1+5 {
		t.Errorf("Instances = %d, want 6", info.Instances)
	}
}

func TestScan_SealsRegistry(t *testing.T) {
	reg, conflicts, err := Scan(strings.NewReader(twoActions), "a.c", Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if conflicts.HasErrors() {
		t.Fatalf("unexpected conflicts: %v", conflicts)
	}
	if !reg.Sealed() {
		t.Error("registry should be sealed after Scan")
	}
	if _, _, err := reg.Insert(&ofp.Entry{Enum: "X"}); !errors.Is(err, ofp.ErrSealed) {
		t.Errorf("Insert after Scan: err = %v, want ErrSealed", err)
	}
}

func TestCompile_Conflicts(t *testing.T) {
	source := `enum ofp_raw_action_type {
    /* OF1.0(3): void. */
    OFPAT_RAW10_A,
    /* OF1.0(3): void. */
    OFPAT_RAW10_B,
    /* OF1.0(4): void. */
    OFPAT_RAW10_C,
    /* OF1.0(4): void. */
    OFPAT_RAW10_D,
};
`
	code, err := Compile(strings.NewReader(source), "dup.c", DefaultOptions())
	if code != "" {
		t.Errorf("conflicting input produced output:\n%s", code)
	}

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("err = %v, want *ConflictError", err)
	}
	if len(conflictErr.Conflicts) != 2 {
		t.Fatalf("got %d conflicts, want 2", len(conflictErr.Conflicts))
	}
	msg := conflictErr.Conflicts[0].Error()
	if !strings.Contains(msg, "OFPAT_RAW10_A") || !strings.Contains(msg, "OFPAT_RAW10_B") {
		t.Errorf("conflict should name both enumerators: %q", msg)
	}

	var list annot.Conflicts
	if !errors.As(err, &list) {
		t.Error("ConflictError should unwrap to annot.Conflicts")
	}
}

func TestCompile_FatalStopsScan(t *testing.T) {
	source := `enum ofp_raw_action_type {
    /* OF1.0(3): void. */
    OFPAT_RAW10_A,
    /* OF1.0(3): void. */
    OFPAT_RAW10_B,
    /* QQ1.0(3): void. */
    QQAST_RAW_C,
};
`
	_, err := Compile(strings.NewReader(source), "f.c", DefaultOptions())
	var serr *annot.SourceError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *annot.SourceError", err)
	}
	if serr.Error() != "f.c:7: QQ: unknown vendor" {
		t.Errorf("Error() = %q", serr.Error())
	}
}

func TestCompile_CustomTables(t *testing.T) {
	source := `enum ofp_raw_action_type {
    /* OF1.6(4): void. */
    OFPAT_RAW16_NEW,
};
`
	if _, err := Compile(strings.NewReader(source), "t.c", DefaultOptions()); err == nil {
		t.Fatal("1.6 should be unknown with the built-in tables")
	}

	tables, err := ofp.NewTables(ofp.DefaultVendors(), append(ofp.DefaultVersions(), ofp.VersionDef{Name: "1.6", Code: 7}))
	if err != nil {
		t.Fatalf("NewTables: %v", err)
	}
	opts := DefaultOptions()
	opts.Tables = tables
	code, err := Compile(strings.NewReader(source), "t.c", opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(code, "{ { 0x00000000,  4, 0x07 },") {
		t.Errorf("missing 1.6 row:\n%s", code)
	}
}

func TestScan_Logger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	opts := Options{Logger: &log}
	if _, _, err := Scan(strings.NewReader(twoActions), "a.c", opts); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n := strings.Count(buf.String(), "resolved action entry"); n != 6 {
		t.Errorf("got %d debug lines, want 6:\n%s", n, buf.String())
	}
}

func TestCompile_Deterministic(t *testing.T) {
	source := synthesize(40)
	first, err := Compile(strings.NewReader(source), "s.c", DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	second, err := Compile(strings.NewReader(source), "s.c", DefaultOptions())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if first != second {
		t.Error("output differs between runs")
	}
}

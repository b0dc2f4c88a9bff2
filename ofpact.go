// Package ofpact generates the OpenFlow raw action tables of Open vSwitch from
// the annotated enum ofp_raw_action_type in ofp-actions.c.
//
// Each enumerator of the block carries a comment that maps it to a wire
// action (vendor, type code, version range) and names its argument type:
//
//	/* OF1.0(3), OF1.1+(2): ovs_be16. */
//	OFPAT_RAW10_SET_VLAN_PCP,
//
// The generator emits either forward declarations or definitions:
//
//	f, _ := os.Open("lib/ofp-actions.c")
//	defer f.Close()
//	code, err := ofpact.Compile(f, "lib/ofp-actions.c", ofpact.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The pipeline stages are also available individually: Scan builds a sealed
// ofp.Registry and collects conflicts, and Generate writes C code from it.
package ofpact

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/gogpu/ofpact/annot"
	"github.com/gogpu/ofpact/cgen"
	"github.com/gogpu/ofpact/ofp"
)

// Options configures generation.
type Options struct {
	// Mode selects prototypes or definitions.
	Mode cgen.Mode

	// Tables resolves vendor and version mnemonics.
	// Defaults to ofp.DefaultTables() if nil.
	Tables *ofp.Tables

	// Logger receives resolution traces. Nil disables logging.
	Logger *zerolog.Logger

	// OmitSizeAsserts drops the BUILD_ASSERT_DECL block from definitions.
	OmitSizeAsserts bool
}

// DefaultOptions returns options for the definitions artifact with the
// built-in tables.
func DefaultOptions() Options {
	return Options{
		Mode: cgen.ModeDefinitions,
	}
}

// ConflictError is returned by Compile when destinations collide. No code is
// generated in that case.
type ConflictError struct {
	Conflicts annot.Conflicts
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d conflicting destinations: %v", len(e.Conflicts), e.Conflicts)
}

// Unwrap returns the conflict list.
func (e *ConflictError) Unwrap() error {
	return e.Conflicts
}

// Compile scans the annotated source read from r and generates code.
//
// The pipeline is:
//  1. Parse each annotation and resolve its destinations
//  2. Stop at the first structural error
//  3. Refuse to generate if any destinations conflict
//  4. Validate the registry and emit C code
func Compile(r io.Reader, name string, opts Options) (string, error) {
	code, _, err := CompileWithInfo(r, name, opts)
	return code, err
}

// CompileWithInfo is Compile that also reports what was generated.
func CompileWithInfo(r io.Reader, name string, opts Options) (string, cgen.Info, error) {
	reg, conflicts, err := Scan(r, name, opts)
	if err != nil {
		return "", cgen.Info{}, err
	}
	if conflicts.HasErrors() {
		return "", cgen.Info{}, &ConflictError{Conflicts: conflicts}
	}
	return Generate(reg, opts)
}

// Scan parses and resolves the enumeration block read from r. The file name
// is used in diagnostics.
//
// Structural errors stop the scan and are returned as *annot.SourceError.
// Conflicting destinations do not stop it; they are returned alongside the
// registry so the caller can report all of them. The returned registry is
// sealed.
func Scan(r io.Reader, name string, opts Options) (*ofp.Registry, annot.Conflicts, error) {
	lowerer := annot.NewLowerer(opts.Tables)
	if opts.Logger != nil {
		lowerer.SetLogger(*opts.Logger)
	}

	parser := annot.NewParser(r, name)
	for {
		decl, err := parser.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if err := lowerer.Lower(decl); err != nil {
			return nil, nil, err
		}
	}

	reg := lowerer.Registry()
	reg.Seal()
	return reg, lowerer.Conflicts(), nil
}

// Generate validates reg and writes the artifact selected by opts.Mode.
func Generate(reg *ofp.Registry, opts Options) (string, cgen.Info, error) {
	return cgen.Compile(reg, cgen.Options{
		Mode:            opts.Mode,
		OmitSizeAsserts: opts.OmitSizeAsserts,
	})
}

package cgen

import (
	"fmt"

	"github.com/gogpu/ofpact/ofp"
)

// Mode selects which artifact Compile writes.
type Mode uint8

const (
	// ModePrototypes writes forward declarations.
	ModePrototypes Mode = iota

	// ModeDefinitions writes the instance table, constructors and dispatcher.
	ModeDefinitions
)

// String returns the command-line name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePrototypes:
		return "prototypes"
	case ModeDefinitions:
		return "definitions"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode maps a command-line name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "prototypes":
		return ModePrototypes, nil
	case "definitions":
		return ModeDefinitions, nil
	default:
		return 0, fmt.Errorf("unknown command %q (use prototypes or definitions)", name)
	}
}

// Options configures code generation.
type Options struct {
	// Mode selects the artifact. The zero value is ModePrototypes.
	Mode Mode

	// OmitSizeAsserts drops the BUILD_ASSERT_DECL block from definitions.
	// Only useful when the consumer checks struct sizes elsewhere.
	OmitSizeAsserts bool
}

// DefaultOptions returns options for the definitions artifact.
func DefaultOptions() Options {
	return Options{
		Mode: ModeDefinitions,
	}
}

// Info describes the generated output.
type Info struct {
	// Actions is the number of enumerators emitted.
	Actions int

	// Instances is the number of rows in all_raw_instances.
	Instances int

	// VersionedConstructors counts put_ functions that take the version
	// at run time.
	VersionedConstructors int
}

// Compile validates reg and generates the artifact selected by options.Mode.
func Compile(reg *ofp.Registry, options Options) (string, Info, error) {
	actions, err := ofp.Validate(reg)
	if err != nil {
		return "", Info{}, fmt.Errorf("cgen: %w", err)
	}

	w := newWriter(reg, actions, &options)
	if err := w.writeModule(); err != nil {
		return "", Info{}, fmt.Errorf("cgen: %w", err)
	}

	info := Info{
		Actions:   len(actions),
		Instances: reg.Len(),
	}
	for _, a := range actions {
		if a.NeedsVersion {
			info.VersionedConstructors++
		}
	}
	return w.String(), info, nil
}

package ofp

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports entries of one enumerator that disagree.
type ValidationError struct {
	Enum    string
	Pos     Position
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Pos.File == "" {
		return fmt.Sprintf("%s: %s", e.Enum, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Enum, e.Message)
}

// Action is the per-enumerator view used for code generation.
type Action struct {
	Enum    string
	Entries []*Entry
	Arg     ArgType
	// AuxTable is taken from the first entry; all entries of an enumerator
	// come from the same annotation.
	AuxTable bool
	// NeedsVersion is set when the record layout or type code differs across
	// versions, so the constructor has to take the version at run time.
	NeedsVersion bool
}

// First returns the earliest resolved entry of the action.
func (a *Action) First() *Entry {
	return a.Entries[0]
}

// PutName is the enumerator with its first "_RAW" infix removed, used to
// name the put_ constructor.
func (a *Action) PutName() string {
	return strings.Replace(a.Enum, "_RAW", "", 1)
}

var rawInfix = regexp.MustCompile(`_RAW[0-9]*`)

// DisplayName is the enumerator with its raw marker and version digits
// removed, e.g. OFPAT_RAW10_OUTPUT becomes OFPAT_OUTPUT.
func DisplayName(enum string) string {
	loc := rawInfix.FindStringIndex(enum)
	if loc == nil {
		return enum
	}
	return enum[:loc[0]] + enum[loc[1]:]
}

// Validate checks per-enumerator consistency and returns one Action per
// enumerator in declaration order.
func Validate(r *Registry) ([]*Action, error) {
	if r == nil {
		return nil, fmt.Errorf("registry is nil")
	}

	actions := make([]*Action, 0, len(r.Enums()))
	for _, enum := range r.Enums() {
		versions := r.Versions(enum)
		first := versions[0]
		action := &Action{
			Enum:     enum,
			Entries:  versions,
			Arg:      first.Arg,
			AuxTable: first.AuxTable,
		}

		for _, e := range versions[1:] {
			if e.Layout.ArgLen != first.Layout.ArgLen {
				return nil, &ValidationError{
					Enum:    enum,
					Pos:     e.Pos,
					Message: fmt.Sprintf("argument length %d differs from %d", e.Layout.ArgLen, first.Layout.ArgLen),
				}
			}
			if Base(e.Arg) != Base(first.Arg) {
				return nil, &ValidationError{
					Enum:    enum,
					Pos:     e.Pos,
					Message: fmt.Sprintf("argument type %s differs from %s", Base(e.Arg), Base(first.Arg)),
				}
			}
			if e.Layout.MinLen != first.Layout.MinLen ||
				e.Layout.ArgOffset != first.Layout.ArgOffset ||
				e.Type != first.Type {
				action.NeedsVersion = true
			}
		}

		actions = append(actions, action)
	}
	return actions, nil
}

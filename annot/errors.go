package annot

import (
	"fmt"
	"strings"

	"github.com/gogpu/ofpact/ofp"
)

// SourceError is a fatal error at a location in the input file.
type SourceError struct {
	Message string
	Pos     ofp.Position
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Pos.File == "" {
		return e.Message
	}
	return fmt.Sprintf("%s:%d: %s", e.Pos.File, e.Pos.Line, e.Message)
}

// NewSourceErrorf creates a new SourceError with formatted message.
func NewSourceErrorf(pos ofp.Position, format string, args ...interface{}) *SourceError {
	return &SourceError{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}

// Conflict reports two destinations that resolve to the same
// (vendor, type, version). Conflicts are not fatal: the scan continues so one
// run reports all of them.
type Conflict struct {
	// Dest is the destination token that lost.
	Dest     string
	Enum     string
	Pos      ofp.Position
	Existing *ofp.Entry
	// VersionName is the mnemonic of the contested version.
	VersionName string
}

// Error returns the two diagnostic lines: the conflict itself and the
// location of the earlier definition.
func (c *Conflict) Error() string {
	return fmt.Sprintf("%s:%d: %s: %#x,%d in OF%s means both %s and %s.\n%s:%d: %s: Here is the location of the previous definition.",
		c.Pos.File, c.Pos.Line, c.Dest,
		c.Existing.Vendor, c.Existing.Type, c.VersionName,
		c.Existing.Enum, c.Enum,
		c.Existing.Pos.File, c.Existing.Pos.Line, c.Dest)
}

// Conflicts is the list of conflicts found during a scan.
type Conflicts []*Conflict

// Error implements the error interface.
func (cl Conflicts) Error() string {
	if len(cl) == 0 {
		return "no conflicts"
	}
	if len(cl) == 1 {
		return cl[0].Error()
	}
	return fmt.Sprintf("%s (and %d more conflicts)", cl[0].Error(), len(cl)-1)
}

// FormatAll returns every conflict, one diagnostic block per conflict.
func (cl Conflicts) FormatAll() string {
	var sb strings.Builder
	for _, c := range cl {
		sb.WriteString(c.Error())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// HasErrors returns true if there are any conflicts.
func (cl Conflicts) HasErrors() bool {
	return len(cl) > 0
}

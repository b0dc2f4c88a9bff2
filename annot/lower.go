package annot

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gogpu/ofpact/ofp"
)

// Lowerer resolves parsed enumerators into registry entries.
type Lowerer struct {
	tables    *ofp.Tables
	registry  *ofp.Registry
	conflicts Conflicts
	log       zerolog.Logger
}

// NewLowerer creates a lowerer that resolves mnemonics with tables.
// A nil tables value selects ofp.DefaultTables.
func NewLowerer(tables *ofp.Tables) *Lowerer {
	if tables == nil {
		tables = ofp.DefaultTables()
	}
	return &Lowerer{
		tables:   tables,
		registry: ofp.NewRegistry(),
		log:      zerolog.Nop(),
	}
}

// SetLogger routes resolution traces to log.
func (l *Lowerer) SetLogger(log zerolog.Logger) {
	l.log = log
}

// Registry returns the registry being built.
func (l *Lowerer) Registry() *ofp.Registry {
	return l.registry
}

// Conflicts returns the conflicts recorded so far.
func (l *Lowerer) Conflicts() Conflicts {
	return l.conflicts
}

// Lower resolves every destination of decl. Unknown mnemonics and inverted
// ranges are fatal and returned as *SourceError. Occupied (vendor, type,
// version) slots are recorded as conflicts and skipped.
func (l *Lowerer) Lower(decl *ActionDecl) error {
	for _, dest := range decl.Dests {
		if err := l.lowerDest(decl, dest); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerDest(decl *ActionDecl, dest Dest) error {
	vendor, ok := l.tables.Vendor(dest.Vendor)
	if !ok {
		return &SourceError{Message: fmt.Sprintf("%s: %s", dest.Vendor, ofp.ErrUnknownVendor), Pos: decl.Pos}
	}

	first, ok := l.tables.Version(dest.First)
	if !ok {
		return &SourceError{Message: fmt.Sprintf("%s: %s", dest.First, ofp.ErrUnknownVersion), Pos: decl.Pos}
	}

	last := first
	switch {
	case dest.Latest:
		last = l.tables.Latest()
	case dest.Last != "":
		if last, ok = l.tables.Version(dest.Last); !ok {
			return &SourceError{Message: fmt.Sprintf("%s: %s", dest.Last, ofp.ErrUnknownVersion), Pos: decl.Pos}
		}
	}
	if last < first {
		return NewSourceErrorf(decl.Pos, "%s-%s: %s precedes %s", dest.First, dest.Last, dest.Last, dest.First)
	}

	layout, err := ofp.ComputeLayout(decl.Arg, vendor.HeaderLen)
	if err != nil {
		return NewSourceErrorf(decl.Pos, "%s", err)
	}

	for code := int(first); code <= int(last); code++ {
		v := ofp.Version(code)
		entry := &ofp.Entry{
			Key:         ofp.Key{Vendor: vendor.ID, Type: dest.Type, Version: v},
			Enum:        decl.Enum,
			Arg:         decl.Arg,
			Layout:      layout,
			AuxTable:    decl.AuxTable,
			Deprecation: dest.Deprecation,
			Pos:         decl.Pos,
		}

		existing, inserted, err := l.registry.Insert(entry)
		if err != nil {
			return err
		}
		if !inserted {
			c := &Conflict{
				Dest:        dest.Raw,
				Enum:        decl.Enum,
				Pos:         decl.Pos,
				Existing:    existing,
				VersionName: l.tables.VersionName(v),
			}
			l.conflicts = append(l.conflicts, c)
			l.log.Debug().
				Str("dest", dest.Raw).
				Str("enum", decl.Enum).
				Str("previous", existing.Enum).
				Msg("conflicting destination")
			continue
		}

		l.log.Debug().
			Str("enum", decl.Enum).
			Str("vendor", vendor.Name).
			Int("type", dest.Type).
			Str("version", l.tables.VersionName(v)).
			Str("min_len", layout.MinLen.String()).
			Msg("resolved action entry")
	}
	return nil
}

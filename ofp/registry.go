package ofp

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSealed is returned by Insert once the registry has been sealed.
var ErrSealed = errors.New("ofp: registry is sealed")

// Position locates an annotation in the input file.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Key is the wire identity of a raw action.
type Key struct {
	Vendor  uint32
	Type    int
	Version Version
}

// Entry is one enumerator resolved at one (vendor, type, version).
type Entry struct {
	Key
	Enum   string
	Arg    ArgType
	Layout Layout
	// AuxTable marks decoders that also receive the vl_mff_map lookup table
	// and the TLV bitmap.
	AuxTable    bool
	Deprecation string
	Pos         Position
}

// Registry holds every resolved entry. Entries live in an arena in
// first-resolution order; one flat map indexes them by Key and another
// groups them by enumerator.
type Registry struct {
	entries []*Entry
	byKey   map[Key]int
	byEnum  map[string][]*Entry
	enums   []string
	structs map[string]struct{}
	sealed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make([]*Entry, 0, 64),
		byKey:   make(map[Key]int, 64),
		byEnum:  make(map[string][]*Entry, 32),
		structs: make(map[string]struct{}),
	}
}

// Insert adds e unless its key is taken. When the key is taken the existing
// entry is returned with ok == false and the registry is unchanged.
func (r *Registry) Insert(e *Entry) (existing *Entry, ok bool, err error) {
	if r.sealed {
		return nil, false, ErrSealed
	}
	if i, taken := r.byKey[e.Key]; taken {
		return r.entries[i], false, nil
	}

	r.byKey[e.Key] = len(r.entries)
	r.entries = append(r.entries, e)
	if _, seen := r.byEnum[e.Enum]; !seen {
		r.enums = append(r.enums, e.Enum)
	}
	r.byEnum[e.Enum] = append(r.byEnum[e.Enum], e)
	if s, isStruct := Base(e.Arg).(StructArg); isStruct {
		r.structs[s.Name] = struct{}{}
	}
	return nil, true, nil
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Lookup finds the entry for a key.
func (r *Registry) Lookup(k Key) (*Entry, bool) {
	i, ok := r.byKey[k]
	if !ok {
		return nil, false
	}
	return r.entries[i], true
}

// Entries returns all entries in first-resolution order.
func (r *Registry) Entries() []*Entry {
	return r.entries
}

// Enums returns enumerator names in the order their first entry was inserted.
func (r *Registry) Enums() []string {
	return r.enums
}

// Versions returns the entries of one enumerator in insertion order.
func (r *Registry) Versions(enum string) []*Entry {
	return r.byEnum[enum]
}

// Structs returns the names of struct argument types, sorted.
func (r *Registry) Structs() []string {
	names := make([]string, 0, len(r.structs))
	for name := range r.structs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

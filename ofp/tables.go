package ofp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrUnknownVendor is returned when a vendor mnemonic is not in the table.
	ErrUnknownVendor = errors.New("unknown vendor")
	// ErrUnknownVersion is returned when a version mnemonic is not in the table.
	ErrUnknownVersion = errors.New("unknown OpenFlow version")
)

// Version is the ordinal code of an OpenFlow protocol version, as carried in
// ofp_header. Codes start at 1 and are contiguous.
type Version uint8

// Vendor is an organization owning an action type space.
type Vendor struct {
	Name string
	ID   uint32
	// HeaderLen is the number of bytes preceding the argument payload in
	// the vendor's action records.
	HeaderLen int
}

// VersionDef binds a version mnemonic ("1.3") to its code.
type VersionDef struct {
	Name string
	Code Version
}

// DefaultVendors returns the built-in vendor table.
func DefaultVendors() []Vendor {
	return []Vendor{
		{Name: "OF", ID: 0x00000000, HeaderLen: 4},
		{Name: "ONF", ID: 0x4f4e4600, HeaderLen: 10},
		{Name: "NX", ID: 0x00002320, HeaderLen: 10},
	}
}

// DefaultVersions returns the built-in version table.
func DefaultVersions() []VersionDef {
	return []VersionDef{
		{Name: "1.0", Code: 0x01},
		{Name: "1.1", Code: 0x02},
		{Name: "1.2", Code: 0x03},
		{Name: "1.3", Code: 0x04},
		{Name: "1.4", Code: 0x05},
		{Name: "1.5", Code: 0x06},
	}
}

// Tables holds the vendor and version lookup tables. Tables are immutable
// once built.
type Tables struct {
	vendors     []Vendor
	vendorIndex map[string]int

	versions     []VersionDef // sorted by code, codes 1..N
	versionIndex map[string]Version
}

// DefaultTables returns tables built from DefaultVendors and DefaultVersions.
func DefaultTables() *Tables {
	t, err := NewTables(DefaultVendors(), DefaultVersions())
	if err != nil {
		panic(fmt.Sprintf("ofp: default tables are invalid: %v", err))
	}
	return t
}

// NewTables validates and indexes vendor and version definitions.
//
// Version codes must be contiguous from 1, and ordering by code must agree
// with semantic version ordering of the mnemonics.
func NewTables(vendors []Vendor, versions []VersionDef) (*Tables, error) {
	t := &Tables{
		vendors:      make([]Vendor, 0, len(vendors)),
		vendorIndex:  make(map[string]int, len(vendors)),
		versions:     make([]VersionDef, len(versions)),
		versionIndex: make(map[string]Version, len(versions)),
	}

	for _, v := range vendors {
		if v.Name == "" {
			return nil, fmt.Errorf("vendor with id %#x has no name", v.ID)
		}
		if v.HeaderLen <= 0 {
			return nil, fmt.Errorf("vendor %s: header length must be positive, got %d", v.Name, v.HeaderLen)
		}
		if _, dup := t.vendorIndex[v.Name]; dup {
			return nil, fmt.Errorf("vendor %s defined twice", v.Name)
		}
		t.vendorIndex[v.Name] = len(t.vendors)
		t.vendors = append(t.vendors, v)
	}

	if len(versions) == 0 {
		return nil, fmt.Errorf("version table is empty")
	}
	copy(t.versions, versions)
	sort.Slice(t.versions, func(i, j int) bool {
		return t.versions[i].Code < t.versions[j].Code
	})

	var prev *semver.Version
	for i, def := range t.versions {
		if def.Code != Version(i+1) {
			return nil, fmt.Errorf("version codes must be contiguous from 1: %s has code %d, want %d", def.Name, def.Code, i+1)
		}
		if _, dup := t.versionIndex[def.Name]; dup {
			return nil, fmt.Errorf("version %s defined twice", def.Name)
		}
		sv, err := semver.NewVersion(def.Name)
		if err != nil {
			return nil, fmt.Errorf("version %s: %w", def.Name, err)
		}
		if prev != nil && !sv.GreaterThan(prev) {
			return nil, fmt.Errorf("version %s (code %d) does not sort after %s", def.Name, def.Code, prev.Original())
		}
		prev = sv
		t.versionIndex[def.Name] = def.Code
	}

	return t, nil
}

// Vendor looks up a vendor by mnemonic.
func (t *Tables) Vendor(name string) (Vendor, bool) {
	i, ok := t.vendorIndex[name]
	if !ok {
		return Vendor{}, false
	}
	return t.vendors[i], true
}

// Vendors returns the vendor table in declaration order.
func (t *Tables) Vendors() []Vendor {
	out := make([]Vendor, len(t.vendors))
	copy(out, t.vendors)
	return out
}

// Version looks up a version code by mnemonic.
func (t *Tables) Version(name string) (Version, bool) {
	v, ok := t.versionIndex[name]
	return v, ok
}

// VersionName returns the mnemonic for a version code.
func (t *Tables) VersionName(v Version) string {
	if v == 0 || int(v) > len(t.versions) {
		return fmt.Sprintf("0x%02x", uint8(v))
	}
	return t.versions[v-1].Name
}

// Versions returns the version table ordered by code.
func (t *Tables) Versions() []VersionDef {
	out := make([]VersionDef, len(t.versions))
	copy(out, t.versions)
	return out
}

// Latest returns the highest known version code.
func (t *Tables) Latest() Version {
	return t.versions[len(t.versions)-1].Code
}

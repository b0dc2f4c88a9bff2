package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/ofpact/ofp"
)

type tablesFile struct {
	Vendors  []vendorEntry  `toml:"vendor"`
	Versions []versionEntry `toml:"version"`
}

type vendorEntry struct {
	Name      string `toml:"name"`
	ID        uint32 `toml:"id"`
	HeaderLen int    `toml:"header_len"`
}

type versionEntry struct {
	Name string `toml:"name"`
	Code uint8  `toml:"code"`
}

// LoadTables builds lookup tables from a TOML file. Entries are merged over
// the built-in tables: a vendor or version with a known name replaces the
// built-in one, any other name is appended. An empty path returns the
// built-in tables.
//
//	[[vendor]]
//	name = "ONF"
//	id = 0x4f4e4600
//	header_len = 10
//
//	[[version]]
//	name = "1.6"
//	code = 7
func LoadTables(path string) (*ofp.Tables, error) {
	if path == "" {
		return ofp.DefaultTables(), nil
	}

	var raw tablesFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load tables %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	vendors := ofp.DefaultVendors()
	for i, v := range raw.Vendors {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			return nil, fmt.Errorf("load tables %s: vendor[%d] missing name", path, i)
		}
		vendors = mergeVendor(vendors, ofp.Vendor{Name: name, ID: v.ID, HeaderLen: v.HeaderLen})
	}

	versions := ofp.DefaultVersions()
	for i, v := range raw.Versions {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			return nil, fmt.Errorf("load tables %s: version[%d] missing name", path, i)
		}
		versions = mergeVersion(versions, ofp.VersionDef{Name: name, Code: ofp.Version(v.Code)})
	}

	tables, err := ofp.NewTables(vendors, versions)
	if err != nil {
		return nil, fmt.Errorf("load tables %s: %w", path, err)
	}
	return tables, nil
}

func mergeVendor(vendors []ofp.Vendor, v ofp.Vendor) []ofp.Vendor {
	for i := range vendors {
		if vendors[i].Name == v.Name {
			vendors[i] = v
			return vendors
		}
	}
	return append(vendors, v)
}

func mergeVersion(versions []ofp.VersionDef, v ofp.VersionDef) []ofp.VersionDef {
	for i := range versions {
		if versions[i].Name == v.Name {
			versions[i] = v
			return versions
		}
	}
	return append(versions, v)
}

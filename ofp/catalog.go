package ofp

// Primitive describes a fixed-width argument type.
type Primitive struct {
	Name  string
	Size  int
	Align int

	// Ntoh and Hton name the byte-order conversion functions.
	// Both are empty for host-order types.
	Ntoh string
	Hton string
}

// HasByteOrder reports whether values of the type are stored in network order.
func (p Primitive) HasByteOrder() bool {
	return p.Ntoh != ""
}

var primitives = []Primitive{
	{Name: "uint8_t", Size: 1, Align: 1},
	{Name: "ovs_be16", Size: 2, Align: 2, Ntoh: "ntohs", Hton: "htons"},
	{Name: "ovs_be32", Size: 4, Align: 4, Ntoh: "ntohl", Hton: "htonl"},
	{Name: "ovs_be64", Size: 8, Align: 8, Ntoh: "ntohll", Hton: "htonll"},
	{Name: "uint16_t", Size: 2, Align: 2},
	{Name: "uint32_t", Size: 4, Align: 4},
	{Name: "uint64_t", Size: 8, Align: 8},
}

var primitiveIndex = func() map[string]int {
	m := make(map[string]int, len(primitives))
	for i, p := range primitives {
		m[p.Name] = i
	}
	return m
}()

// LookupPrimitive returns the catalog entry for a C type name.
func LookupPrimitive(name string) (Primitive, bool) {
	i, ok := primitiveIndex[name]
	if !ok {
		return Primitive{}, false
	}
	return primitives[i], true
}

// Primitives returns the catalog in declaration order.
func Primitives() []Primitive {
	out := make([]Primitive, len(primitives))
	copy(out, primitives)
	return out
}

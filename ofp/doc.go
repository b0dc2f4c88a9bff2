// Package ofp defines the resolved model of OpenFlow raw actions.
//
// The model is what the annotation front end lowers into and what the C
// backend renders from:
//   - Catalog: the fixed set of primitive argument types
//   - Tables: vendor and protocol version mnemonics
//   - ArgType: classified argument of an action (void, primitive, struct, variable length)
//   - Layout: byte offsets and record lengths derived from an ArgType and a vendor header
//   - Registry: every resolved (vendor, type, version) entry, in first-resolution order
//
// # Pipeline
//
//	ofp-actions.c → annot (parse, lower) → ofp.Registry → ofp.Validate → cgen
//
// A Registry is populated during a single scan and sealed before emission.
package ofp

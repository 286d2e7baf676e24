// Package pipewire models the object dump produced by pw-dump: a flat JSON
// array of heterogeneous graph objects (nodes, links, ports, ...) whose
// property and parameter payloads vary in shape by device and driver.
package pipewire

import (
	"encoding/json"
	"strings"
)

// GraphSnapshot is one point-in-time dump of the PipeWire graph.
type GraphSnapshot []Object

// Object is a single element of a snapshot. Only the fields the auditor
// needs are decoded; everything else in the dump is ignored.
type Object struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Info *Info  `json:"info"`
}

// Info carries the per-object payload. Node objects populate State, Props
// and Params; link objects populate the endpoint IDs. Params groups are kept
// raw and decoded lazily because their entry shapes differ per driver.
type Info struct {
	State        string                     `json:"state"`
	OutputNodeID *int                       `json:"output-node-id"`
	InputNodeID  *int                       `json:"input-node-id"`
	Props        Props                      `json:"props"`
	Params       map[string]json.RawMessage `json:"params"`
}

// Props is the string-keyed property bag attached to a node.
type Props map[string]any

// String returns the property value for key if it is present and a string.
func (p Props) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// IsNode reports whether the object's type discriminator marks it as a node.
// Discriminators are compound interface strings, so this is a substring match.
func (o *Object) IsNode() bool {
	return strings.Contains(o.Type, "Node")
}

// IsLink reports whether the object's type discriminator marks it as a link.
func (o *Object) IsLink() bool {
	return strings.Contains(o.Type, "Link")
}

// State returns the node's runtime state tag, or "" if absent.
func (o *Object) State() string {
	if o.Info == nil {
		return ""
	}
	return o.Info.State
}

// LinkEndpoints returns the output-side and input-side node IDs of a link
// object. ok is false if either endpoint is missing from the dump.
func (o *Object) LinkEndpoints() (output, input int, ok bool) {
	if o.Info == nil || o.Info.OutputNodeID == nil || o.Info.InputNodeID == nil {
		return 0, 0, false
	}
	return *o.Info.OutputNodeID, *o.Info.InputNodeID, true
}

// paramGroup decodes the named parameter group into its entries. A missing
// group or one whose entries do not decode yields nil; malformed parameter
// data never fails resolution, it only degrades it.
func (o *Object) paramGroup(name string) []ParamEntry {
	if o.Info == nil {
		return nil
	}
	raw, ok := o.Info.Params[name]
	if !ok {
		return nil
	}
	var entries []ParamEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}

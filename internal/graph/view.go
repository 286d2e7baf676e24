// Package graph builds a queryable view over a PipeWire graph snapshot.
package graph

import (
	"sort"
	"strings"

	"github.com/sinkwatch/agent/pkg/pipewire"
)

// View is a read-only index over one snapshot: node and link objects keyed by
// their dump identity. It is built once per snapshot and never mutated, and
// must not outlive the snapshot it indexes.
type View struct {
	nodes map[int]*pipewire.Object
	links map[int]*pipewire.Object

	// nodeIDs in ascending order, so name lookups are deterministic even
	// though the dump itself carries no ordering guarantee.
	nodeIDs []int
}

// NewView partitions the snapshot's objects into the node and link indexes by
// their type discriminator. Objects matching neither category are dropped.
// Construction is total: an empty or malformed snapshot yields empty indexes.
func NewView(snapshot pipewire.GraphSnapshot) *View {
	v := &View{
		nodes: make(map[int]*pipewire.Object),
		links: make(map[int]*pipewire.Object),
	}
	for i := range snapshot {
		obj := &snapshot[i]
		switch {
		case obj.IsNode():
			v.nodes[obj.ID] = obj
		case obj.IsLink():
			v.links[obj.ID] = obj
		}
	}
	v.nodeIDs = make([]int, 0, len(v.nodes))
	for id := range v.nodes {
		v.nodeIDs = append(v.nodeIDs, id)
	}
	sort.Ints(v.nodeIDs)
	return v
}

// Node returns the node with the given identity.
func (v *View) Node(id int) (*pipewire.Object, bool) {
	node, ok := v.nodes[id]
	return node, ok
}

// NodeCount returns the number of indexed nodes.
func (v *View) NodeCount() int { return len(v.nodes) }

// LinkCount returns the number of indexed links.
func (v *View) LinkCount() int { return len(v.links) }

// FindNodeByName returns the node whose raw node.name contains substr,
// scanning nodes in ascending identity order so the lowest matching identity
// wins. An empty substring matches every node.
func (v *View) FindNodeByName(substr string) (*pipewire.Object, bool) {
	for _, id := range v.nodeIDs {
		node := v.nodes[id]
		if strings.Contains(node.NodeName(), substr) {
			return node, true
		}
	}
	return nil, false
}

// UpstreamNodes returns the distinct nodes feeding into targetID: the
// output-side endpoints of every link whose input side is the target. Link
// endpoints that do not resolve to an indexed node are dropped silently.
// Results are in ascending identity order.
func (v *View) UpstreamNodes(targetID int) []*pipewire.Object {
	seen := make(map[int]bool)
	var ids []int
	for _, link := range v.links {
		output, input, ok := link.LinkEndpoints()
		if !ok || input != targetID {
			continue
		}
		if _, exists := v.nodes[output]; !exists || seen[output] {
			continue
		}
		seen[output] = true
		ids = append(ids, output)
	}
	sort.Ints(ids)

	nodes := make([]*pipewire.Object, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, v.nodes[id])
	}
	return nodes
}

package audit

import "github.com/sinkwatch/agent/pkg/pipewire"

// stateRunning is the runtime state of a node actively producing audio.
const stateRunning = "running"

// filterRunning keeps the nodes whose runtime state is exactly "running",
// preserving input order. Every excluded node is narrated with its name and
// observed state.
func filterRunning(nodes []*pipewire.Object, trace *Trace) []*pipewire.Object {
	var running []*pipewire.Object
	for _, node := range nodes {
		if state := node.State(); state != stateRunning {
			trace.Logf("-> Filtering out non-running source: %s (state: %s)",
				node.DescriptiveName(), state)
			continue
		}
		running = append(running, node)
	}
	return running
}

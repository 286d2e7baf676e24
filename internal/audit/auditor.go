package audit

import (
	"context"
	"strconv"

	"github.com/go-logr/logr"

	"github.com/sinkwatch/agent/internal/graph"
	"github.com/sinkwatch/agent/pkg/pipewire"
)

// SnapshotSource acquires one point-in-time graph snapshot. Cancellation and
// timeout policy belong to the source; the auditor treats the call as atomic.
type SnapshotSource interface {
	Collect(ctx context.Context) (pipewire.GraphSnapshot, error)
}

// Auditor runs the consistency checks for one target device per invocation.
// It is stateless across runs: one snapshot in, one classification out.
type Auditor struct {
	logger logr.Logger
}

// NewAuditor creates an Auditor.
func NewAuditor(logger logr.Logger) *Auditor {
	return &Auditor{logger: logger.WithName("audit")}
}

// Audit acquires a snapshot from source and classifies the device matching
// targetSubstr. Acquisition failure is itself a classification, never an
// error: the result carries OutcomeError with the failure narrated.
func (a *Auditor) Audit(ctx context.Context, source SnapshotSource, targetSubstr string) Result {
	trace := NewTrace(a.logger)

	trace.Logf("-> Running graph dump to get PipeWire graph state...")
	snapshot, err := source.Collect(ctx)
	if err != nil {
		trace.Logf("Error getting or parsing PipeWire graph: %v", err)
		return Result{Outcome: OutcomeError, Trace: trace.Lines()}
	}

	view := graph.NewView(snapshot)
	outcome, rate := a.classify(view, targetSubstr, trace)
	return Result{Outcome: outcome, Rate: rate, Trace: trace.Lines()}
}

// Classify runs the checks against an already built view.
func (a *Auditor) Classify(view *graph.View, targetSubstr string) Result {
	trace := NewTrace(a.logger)
	outcome, rate := a.classify(view, targetSubstr, trace)
	return Result{Outcome: outcome, Rate: rate, Trace: trace.Lines()}
}

// classify applies the checks in fixed priority order. The first failing
// check decides the outcome; rate is only meaningful for OutcomeConsistent.
func (a *Auditor) classify(view *graph.View, targetSubstr string, trace *Trace) (Outcome, int) {
	trace.Logf("-> Searching for device: '%s'", targetSubstr)
	target, found := view.FindNodeByName(targetSubstr)
	if !found {
		trace.Logf("Device not found.")
		return OutcomeDeviceNotFound, 0
	}
	trace.Logf("Device found.")

	targetRate, ok := target.SampleRate()
	if !ok {
		trace.Logf("Could not determine sample rate for the target device.")
		return OutcomeError, 0
	}

	if !volumeAtUnity(target, trace) {
		return OutcomeVolumeMismatch, 0
	}

	trace.Logf("-> Finding sources connected to device ID %d", target.ID)
	sources := view.UpstreamNodes(target.ID)
	trace.Logf("-> Filtering sources...")
	running := filterRunning(sources, trace)

	if len(running) == 0 {
		trace.Logf("Device is idle (no relevant sources connected).")
		return OutcomeIdle, 0
	}
	if len(running) > 1 {
		trace.Logf("Device has %d active sources. Skipping detailed check.", len(running))
		return OutcomeAmbiguousSources, 0
	}

	source := running[0]
	trace.Logf("Found 1 relevant source.")

	if !volumeAtUnity(source, trace) {
		return OutcomeVolumeMismatch, 0
	}

	sourceRate, sourceRateKnown := source.SampleRate()
	trace.Logf("-> Checking source '%s' (ID: %d): Device rate is %d, Source rate is %s",
		source.DescriptiveName(), source.ID, targetRate, formatRate(sourceRate, sourceRateKnown))

	// An unknown source rate is not evidence of a mismatch.
	if sourceRateKnown && sourceRate != targetRate {
		trace.Logf("Mismatch found! Device(%d) != Source(%d)", targetRate, sourceRate)
		return OutcomeRateMismatch, 0
	}

	trace.Logf("All source sample rates match the device rate.")
	return OutcomeConsistent, targetRate
}

// volumeAtUnity checks the node's volumes, narrating the offending value on
// failure.
func volumeAtUnity(node *pipewire.Object, trace *Trace) bool {
	atUnity, violation := node.VolumeAtUnity()
	if atUnity {
		return true
	}
	if violation.Master != nil {
		trace.Logf("Volume is not 100%% for '%s' (ID: %d) (value: %v)",
			node.DescriptiveName(), node.ID, *violation.Master)
	} else {
		trace.Logf("Volume is not 100%% for '%s' (ID: %d) (values: %v)",
			node.DescriptiveName(), node.ID, violation.Channels)
	}
	return false
}

func formatRate(rate int, known bool) string {
	if !known {
		return "unknown"
	}
	return strconv.Itoa(rate)
}

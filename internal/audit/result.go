// Package audit classifies the consistency of a PipeWire output device
// against its active upstream sources.
package audit

// Outcome is the terminal classification of one audit run. Outcomes are
// mutually exclusive; every run produces exactly one.
type Outcome string

const (
	// OutcomeError means the snapshot could not be acquired or parsed, or
	// the target device's sample rate could not be resolved.
	OutcomeError Outcome = "error"
	// OutcomeDeviceNotFound means no node matched the target substring.
	OutcomeDeviceNotFound Outcome = "device-not-found"
	// OutcomeVolumeMismatch means the target or its sole running source is
	// not at unity volume.
	OutcomeVolumeMismatch Outcome = "volume-mismatch"
	// OutcomeIdle means the target has no running upstream source.
	OutcomeIdle Outcome = "idle"
	// OutcomeAmbiguousSources means more than one running source feeds the
	// target; the audit deliberately declines to pick one.
	OutcomeAmbiguousSources Outcome = "ambiguous-sources"
	// OutcomeRateMismatch means the source's resolved rate disagrees with
	// the target's.
	OutcomeRateMismatch Outcome = "rate-mismatch"
	// OutcomeConsistent means every check passed.
	OutcomeConsistent Outcome = "consistent"
)

// Result is the outcome of one audit run plus its diagnostic narration.
type Result struct {
	Outcome Outcome
	// Rate is the target's resolved sample rate in Hz. Set for
	// OutcomeConsistent.
	Rate int
	// Trace is the ordered diagnostic log of the run.
	Trace []string
}

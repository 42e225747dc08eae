package domain

import "fmt"

// ModelState enumerates the lifecycle of the embedding model load.
// The state is set once by the background load attempt and is terminal
// once it leaves StateLoading; there is no retry loop.
type ModelState int

const (
	// StateLoading means the background load has not finished yet.
	StateLoading ModelState = iota

	// StateReady means the encoder is loaded and semantic search is available.
	StateReady

	// StateFailed means the runtime rejected the model artifact.
	StateFailed

	// StateUnavailable means the model or tokenizer file does not exist.
	StateUnavailable
)

// ModelStatus is the process-wide availability signal for semantic search.
// Every search and import request reads it to decide whether the encoder
// path is usable; failures degrade to keyword-only mode rather than erroring.
type ModelStatus struct {
	// State is the current lifecycle state.
	State ModelState

	// Reason is the human-readable failure cause, set only for StateFailed.
	Reason string
}

// String renders the status in the wire form exposed to callers:
// "loading", "ready", "failed:<reason>" or "unavailable".
func (s ModelStatus) String() string {
	switch s.State {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return fmt.Sprintf("failed:%s", s.Reason)
	case StateUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Ready reports whether the encoder path is usable.
func (s ModelStatus) Ready() bool {
	return s.State == StateReady
}

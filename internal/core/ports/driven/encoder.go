package driven

import "context"

// Encoder turns text into a fixed-dimension L2-normalized vector using
// a locally loaded neural model.
//
// An Encoder instance is NOT safe for concurrent use: the underlying
// inference session keeps per-call state. Callers must serialize Encode
// calls externally (see services.ModelManager).
type Encoder interface {
	// Encode tokenizes text, runs inference and returns the pooled,
	// normalized passage vector. Inputs longer than the model's maximum
	// sequence length lose trailing tokens.
	Encode(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the hidden dimension of the output vectors
	// (384 for all-MiniLM class models).
	Dimensions() int

	// Close releases the inference session.
	Close() error
}

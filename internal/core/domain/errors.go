package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrArtifactNotFound indicates the model or tokenizer file is missing.
	// Non-fatal: the application degrades to keyword-only search.
	ErrArtifactNotFound = errors.New("model artifact not found")

	// ErrModelNotReady indicates the encoder is not loaded.
	// Callers fall back to keyword search instead of failing.
	ErrModelNotReady = errors.New("embedding model not ready")

	// ErrMalformedVector indicates a persisted vector blob whose byte
	// length is not a multiple of the component width. This must fail
	// loudly: silent truncation would corrupt similarity rankings.
	ErrMalformedVector = errors.New("malformed vector bytes")
)

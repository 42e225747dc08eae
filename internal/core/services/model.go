package services

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/shinefly-smile/localLens/internal/core/domain"
	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
	"github.com/shinefly-smile/localLens/internal/core/ports/driving"
	"github.com/shinefly-smile/localLens/internal/logger"
)

// Ensure ModelManager implements the interface.
var _ driving.StatusReporter = (*ModelManager)(nil)

// EncoderLoader constructs an encoder from the model artifact pair.
// The onnx adapter provides the real implementation; tests inject fakes.
type EncoderLoader func(modelPath, tokenizerPath string) (driven.Encoder, error)

// ModelManager owns the encoder behind a mutex and the load status
// behind an atomic value. It replaces the process-wide singletons of a
// naive design: construct one in the wiring layer and pass it to every
// entry point.
//
// The status is set once by the background load attempt and is terminal
// once non-loading. Searches and imports poll it and degrade to keyword
// mode instead of blocking on the load.
type ModelManager struct {
	status atomic.Value // domain.ModelStatus

	// mu serializes encode calls: the inference session keeps per-call
	// state and is not safe for concurrent use.
	mu      sync.Mutex
	encoder driven.Encoder
}

// NewModelManager creates a manager in the loading state.
func NewModelManager() *ModelManager {
	m := &ModelManager{}
	m.status.Store(domain.ModelStatus{State: domain.StateLoading})
	return m
}

// ModelStatus returns the current load status.
func (m *ModelManager) ModelStatus() domain.ModelStatus {
	return m.status.Load().(domain.ModelStatus)
}

// LoadInBackground spawns the one-time model load without blocking the
// caller. Missing artifacts flip the status to unavailable; a load error
// flips it to failed with the cause attached. It runs at most once per
// process lifetime, so no cancellation is needed.
//
// The returned channel closes when the load attempt finishes; callers
// that want to wait (tests, watch mode) may receive from it, everyone
// else polls ModelStatus.
func (m *ModelManager) LoadInBackground(modelPath, tokenizerPath string, load EncoderLoader) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		if !fileExists(modelPath) || !fileExists(tokenizerPath) {
			m.status.Store(domain.ModelStatus{State: domain.StateUnavailable})
			logger.Warn("Model artifacts not found (%s, %s): semantic search disabled", modelPath, tokenizerPath)
			return
		}

		enc, err := load(modelPath, tokenizerPath)
		if err != nil {
			m.status.Store(domain.ModelStatus{State: domain.StateFailed, Reason: err.Error()})
			logger.Warn("Model load failed: %v", err)
			return
		}

		m.mu.Lock()
		m.encoder = enc
		m.mu.Unlock()
		m.status.Store(domain.ModelStatus{State: domain.StateReady})
		logger.Info("Embedding model loaded (%d dimensions)", enc.Dimensions())
	}()

	return done
}

// Encode serializes one inference call through the encoder. Returns
// domain.ErrModelNotReady when no encoder is loaded; per-call encode
// errors pass through for the caller to translate into fallback
// behaviour.
func (m *ModelManager) Encode(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.encoder == nil {
		return nil, domain.ErrModelNotReady
	}
	return m.encoder.Encode(ctx, text)
}

// Close releases the encoder if one was loaded.
func (m *ModelManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.encoder == nil {
		return nil
	}
	err := m.encoder.Close()
	m.encoder = nil
	return err
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

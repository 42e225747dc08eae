// Package onnx provides a sentence encoder adapter backed by a local
// ONNX Runtime session and a HuggingFace-format tokenizer.
package onnx

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/shinefly-smile/localLens/internal/core/domain"
	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
	"github.com/shinefly-smile/localLens/internal/core/vector"
	"github.com/shinefly-smile/localLens/internal/logger"
)

// Ensure Encoder implements the interface.
var _ driven.Encoder = (*Encoder)(nil)

// Default configuration values.
const (
	// MaxSequenceLength is the token budget per passage; longer inputs
	// are truncated, matching the all-MiniLM training regime.
	MaxSequenceLength = 128

	// DefaultDimensions is the hidden size of all-MiniLM class models,
	// used when the model metadata leaves the output dimension dynamic.
	DefaultDimensions = 384
)

// initOnce guards process-wide ONNX Runtime environment setup.
var initOnce sync.Once

// Config holds configuration for the ONNX encoder.
type Config struct {
	// ModelPath is the path to the .onnx model file.
	ModelPath string

	// TokenizerPath is the path to the tokenizer.json file.
	TokenizerPath string

	// LibraryPath optionally points at the onnxruntime shared library.
	// Empty means the platform default lookup.
	LibraryPath string
}

// Encoder turns text into L2-normalized embedding vectors using a local
// ONNX Runtime inference session.
//
// An Encoder is not safe for concurrent use; callers serialize access.
type Encoder struct {
	session    *ort.DynamicAdvancedSession
	tok        *tokenizer.Tokenizer
	inputNames []string
	wantTypes  bool
	dims       int
}

// Load creates an encoder from model artifacts on disk. Both artifact
// files must exist; a missing file reports domain.ErrArtifactNotFound so
// callers can distinguish "not installed" from a broken model.
func Load(cfg Config) (*Encoder, error) {
	for _, path := range []string{cfg.ModelPath, cfg.TokenizerPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, path)
		}
	}

	var initErr error
	initOnce.Do(func() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		if !ort.IsInitialized() {
			initErr = ort.InitializeEnvironment()
		}
	})
	if initErr != nil {
		return nil, fmt.Errorf("initializing onnxruntime: %w", initErr)
	}

	tok, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("inspecting model: %w", err)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("model %s declares no outputs", cfg.ModelPath)
	}

	// Models exported from BERT-family checkpoints may or may not take
	// token_type_ids; feed exactly what the graph declares.
	inputNames := make([]string, len(inputs))
	wantTypes := false
	for i, in := range inputs {
		inputNames[i] = in.Name
		if in.Name == "token_type_ids" {
			wantTypes = true
		}
	}

	dims := DefaultDimensions
	if outDims := outputs[0].Dimensions; len(outDims) > 0 {
		if last := outDims[len(outDims)-1]; last > 0 {
			dims = int(last)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath, inputNames, []string{outputs[0].Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	logger.Debug("Encoder loaded: inputs=%v dims=%d", inputNames, dims)

	return &Encoder{
		session:    session,
		tok:        tok,
		inputNames: inputNames,
		wantTypes:  wantTypes,
		dims:       dims,
	}, nil
}

// Encode generates a normalized embedding for the given text.
func (e *Encoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoding, err := e.tok.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenizing: %w", err)
	}

	ids := truncate(encoding.Ids, MaxSequenceLength)
	mask := truncate(encoding.AttentionMask, MaxSequenceLength)
	seqLen := len(ids)
	if seqLen == 0 {
		return nil, fmt.Errorf("tokenizer produced no tokens: %w", domain.ErrInvalidInput)
	}

	shape := ort.NewShape(1, int64(seqLen))
	inputs := make([]ort.Value, 0, len(e.inputNames))
	defer func() {
		for _, in := range inputs {
			in.Destroy()
		}
	}()

	for _, name := range e.inputNames {
		var data []int64
		switch name {
		case "token_type_ids":
			data = toInt64(truncate(encoding.TypeIds, MaxSequenceLength), seqLen)
		case "attention_mask":
			data = toInt64(mask, seqLen)
		default:
			data = toInt64(ids, seqLen)
		}
		tensor, err := ort.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("creating %s tensor: %w", name, err)
		}
		inputs = append(inputs, tensor)
	}

	outputs := []ort.Value{nil}
	if err := e.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	defer outputs[0].Destroy()

	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", outputs[0])
	}

	outShape := hidden.GetShape()
	if len(outShape) != 3 {
		return nil, fmt.Errorf("unexpected output shape %v", outShape)
	}
	dims := int(outShape[2])

	vec := meanPool(hidden.GetData(), mask, seqLen, dims)
	vector.Normalize(vec)
	return vec, nil
}

// Dimensions returns the embedding vector size.
func (e *Encoder) Dimensions() int {
	return e.dims
}

// Close releases the inference session.
func (e *Encoder) Close() error {
	return e.session.Destroy()
}

// truncate caps a token sequence at max elements.
func truncate(s []int, max int) []int {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// toInt64 widens tokenizer output to the int64 tensors the model takes.
// Missing values (some tokenizers omit type ids) are padded with zeros.
func toInt64(s []int, seqLen int) []int64 {
	out := make([]int64, seqLen)
	for i := 0; i < seqLen && i < len(s); i++ {
		out[i] = int64(s[i])
	}
	return out
}

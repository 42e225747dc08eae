package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	// DefaultExtension is the file suffix imports look for.
	DefaultExtension = ".txt"

	// configFileName is the TOML file under the config directory.
	configFileName = "config.toml"
)

// Config holds the application configuration, stored as TOML in the
// locallens config directory.
type Config struct {
	// DataDir is where the SQLite database lives.
	DataDir string `toml:"data_dir"`

	// ModelDir is where the encoder artifacts (model.onnx and
	// tokenizer.json) are expected.
	ModelDir string `toml:"model_dir"`

	// OnnxruntimeLib optionally points at the ONNX Runtime shared
	// library; empty means the platform default lookup.
	OnnxruntimeLib string `toml:"onnxruntime_lib"`

	// Extension is the file suffix imports look for, compared
	// case-insensitively.
	Extension string `toml:"extension"`
}

// ModelPath returns the expected ONNX model file path.
func (c Config) ModelPath() string {
	return filepath.Join(c.ModelDir, "model.onnx")
}

// TokenizerPath returns the expected tokenizer file path.
func (c Config) TokenizerPath() string {
	return filepath.Join(c.ModelDir, "tokenizer.json")
}

// DefaultDir returns the default config directory, ~/.locallens.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".locallens"), nil
}

// Load reads the configuration from configDir, filling in defaults for
// absent keys. If configDir is empty, defaults to ~/.locallens. A
// missing config file is not an error; it yields the defaults.
func Load(configDir string) (Config, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return Config{}, err
		}
		configDir = dir
	}

	cfg := Config{
		DataDir:   filepath.Join(configDir, "data"),
		ModelDir:  filepath.Join(configDir, "model"),
		Extension: DefaultExtension,
	}

	data, err := os.ReadFile(filepath.Join(configDir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}

	return cfg, nil
}

// Save persists the configuration to configDir, creating the directory
// if needed.
func Save(configDir string, cfg Config) error {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		configDir = dir
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	// Write with restricted permissions
	return os.WriteFile(filepath.Join(configDir, configFileName), data, 0600)
}

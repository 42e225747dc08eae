package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "model"), cfg.ModelDir)
	assert.Equal(t, ".txt", cfg.Extension)
	assert.Empty(t, cfg.OnnxruntimeLib)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `data_dir = "/srv/locallens/data"
extension = ".md"
onnxruntime_lib = "/opt/onnxruntime/libonnxruntime.so"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/locallens/data", cfg.DataDir)
	assert.Equal(t, ".md", cfg.Extension)
	assert.Equal(t, "/opt/onnxruntime/libonnxruntime.so", cfg.OnnxruntimeLib)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, filepath.Join(dir, "model"), cfg.ModelDir)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Config{
		DataDir:   "/tmp/data",
		ModelDir:  "/tmp/model",
		Extension: ".text",
	}

	require.NoError(t, Save(dir, want))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfig_ArtifactPaths(t *testing.T) {
	cfg := Config{ModelDir: "/m"}
	assert.Equal(t, filepath.Join("/m", "model.onnx"), cfg.ModelPath())
	assert.Equal(t, filepath.Join("/m", "tokenizer.json"), cfg.TokenizerPath())
}

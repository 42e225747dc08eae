// Package cli provides the cobra-based command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shinefly-smile/localLens/internal/adapters/driven/config/file"
	"github.com/shinefly-smile/localLens/internal/adapters/driven/encoder/onnx"
	"github.com/shinefly-smile/localLens/internal/adapters/driven/storage/sqlite"
	"github.com/shinefly-smile/localLens/internal/connectors/filesystem"
	"github.com/shinefly-smile/localLens/internal/core/ports/driven"
	"github.com/shinefly-smile/localLens/internal/core/ports/driving"
	"github.com/shinefly-smile/localLens/internal/core/services"
	"github.com/shinefly-smile/localLens/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verboseFlag   bool
	configDirFlag string
	dataDirFlag   string
)

// Services wired by initServices, replaceable in tests.
var (
	searchService  driving.SearchService
	importService  driving.ImportService
	statusReporter driving.StatusReporter

	store       driven.DocumentStore
	fileSource  *filesystem.Source
	modelLoaded <-chan struct{}
)

var rootCmd = &cobra.Command{
	Use:   "locallens",
	Short: "Local semantic search over plain-text documents",
	Long: `LocalLens imports folders of plain-text files and searches them
semantically using a local ONNX embedding model. Everything runs on this
machine: no network calls, no telemetry.

When the embedding model is not installed, search falls back to keyword
matching and imports still work.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config", "", "config directory (default ~/.locallens)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "database directory (overrides config)")
}

// Execute wires the real services and runs the root command.
func Execute() error {
	if err := initServices(); err != nil {
		return err
	}
	defer closeServices()
	return rootCmd.Execute()
}

// initServices builds the production dependency graph: config, SQLite
// store, filesystem source, background-loaded encoder, and the services
// on top of them.
func initServices() error {
	cfg, err := file.Load(configDirFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dataDir := cfg.DataDir
	if dataDirFlag != "" {
		dataDir = dataDirFlag
	}

	sqlStore, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	store = sqlStore

	fileSource = filesystem.New(cfg.Extension)

	model := services.NewModelManager()
	modelLoaded = model.LoadInBackground(cfg.ModelPath(), cfg.TokenizerPath(),
		func(modelPath, tokenizerPath string) (driven.Encoder, error) {
			return onnx.Load(onnx.Config{
				ModelPath:     modelPath,
				TokenizerPath: tokenizerPath,
				LibraryPath:   cfg.OnnxruntimeLib,
			})
		})
	statusReporter = model

	cache := services.NewVectorCache()
	searchService = services.NewSearchService(store, model, cache)
	importService = services.NewImportService(store, fileSource, model, cache, importProgress)

	return nil
}

// closeServices releases the store. The encoder belongs to the model
// manager and dies with the process.
func closeServices() {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("Closing store: %v", err)
		}
	}
}

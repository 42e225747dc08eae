package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [folder]",
	Short: "Import a folder of text files",
	Long: `Walks the folder recursively and imports every matching text file.
Files are split into passages and embedded when the model is ready.
Re-importing a folder replaces the affected documents, never duplicates.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	folder := args[0]

	if importService == nil {
		return errors.New("import service not configured")
	}

	// Wait for the background model load so a one-shot import embeds
	// instead of racing the loader.
	if modelLoaded != nil {
		<-modelLoaded
	}

	importProgress.SetOutput(cmd.OutOrStdout())

	result, err := importService.ImportFolder(context.Background(), folder)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Println()
	cmd.Printf("Imported:   %d file(s)\n", result.FilesImported)
	cmd.Printf("Passages:   %d\n", result.PassagesCreated)
	cmd.Printf("Embeddings: %d\n", result.EmbeddingsGenerated)
	if result.FilesSkipped > 0 {
		cmd.Printf("Skipped:    %d file(s)\n", result.FilesSkipped)
	}
	if result.EmbeddingsGenerated < result.PassagesCreated {
		cmd.Println()
		cmd.Printf("Note: %d passage(s) have no embedding; they are reachable by keyword search only.\n",
			result.PassagesCreated-result.EmbeddingsGenerated)
	}

	return nil
}

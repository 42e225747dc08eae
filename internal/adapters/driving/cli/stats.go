package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	stats, err := searchService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	cmd.Printf("Documents:  %d\n", stats.DocumentCount)
	cmd.Printf("Passages:   %d\n", stats.PassageCount)
	cmd.Printf("Embeddings: %d\n", stats.EmbeddingCount)

	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinefly-smile/localLens/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search imported documents",
	Long: `Searches all imported documents.
Uses semantic similarity when the embedding model is ready, and falls
back to keyword matching otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	// One-shot invocation: give the background model load a chance to
	// finish so the first search is already semantic.
	if modelLoaded != nil {
		<-modelLoaded
	}

	results, err := searchService.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]

		if r.IsSemantic {
			cmd.Printf("  [%d] %s %s\n", i+1, boldGreen(r.DocumentName), dim(fmt.Sprintf("(%.2f)", r.Score)))
		} else {
			cmd.Printf("  [%d] %s %s\n", i+1, r.DocumentName, dim("(keyword)"))
		}
		cmd.Printf("      %s\n", dim(fmt.Sprintf("%s #%d", r.DocumentPath, r.PassageIndex)))
		cmd.Printf("      %s\n", r.Content)
		cmd.Println()
	}

	return nil
}

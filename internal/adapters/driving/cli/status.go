package cli

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shinefly-smile/localLens/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show embedding model status",
	Long: `Reports the state of the local embedding model.

  loading      model artifacts found, load in progress
  ready        semantic search available
  failed       artifacts found but could not be loaded
  unavailable  artifacts missing, keyword search only`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusReporter == nil {
		return errors.New("status reporter not configured")
	}

	status := statusReporter.ModelStatus()

	var paint func(a ...any) string
	switch status.State {
	case domain.StateReady:
		paint = color.New(color.FgGreen, color.Bold).SprintFunc()
	case domain.StateLoading:
		paint = color.New(color.FgYellow).SprintFunc()
	default:
		paint = color.New(color.FgRed).SprintFunc()
	}

	cmd.Printf("Model: %s\n", paint(status.String()))

	if status.State == domain.StateUnavailable {
		cmd.Println()
		cmd.Println("Place model.onnx and tokenizer.json in the model directory to enable semantic search.")
	}

	return nil
}

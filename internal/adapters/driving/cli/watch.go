package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Watch a folder and re-import on changes",
	Long: `Imports the folder, then keeps watching it and re-imports whenever
matching files change. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	folder := args[0]

	if importService == nil {
		return errors.New("import service not configured")
	}
	if fileSource == nil {
		return errors.New("file source not configured")
	}

	if modelLoaded != nil {
		<-modelLoaded
	}

	importProgress.SetOutput(cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	changes, err := fileSource.Watch(ctx, folder)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	if err := reimport(ctx, cmd, folder); err != nil {
		return err
	}
	cmd.Printf("Watching %s (press Ctrl+C to stop)\n", folder)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil
		case _, open := <-changes:
			if !open {
				return nil
			}
			cmd.Println("Change detected, re-importing...")
			if err := reimport(ctx, cmd, folder); err != nil {
				return err
			}
		}
	}
}

func reimport(ctx context.Context, cmd *cobra.Command, folder string) error {
	result, err := importService.ImportFolder(ctx, folder)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	cmd.Printf("Imported %d file(s), %d passage(s), %d embedding(s).\n",
		result.FilesImported, result.PassagesCreated, result.EmbeddingsGenerated)
	return nil
}

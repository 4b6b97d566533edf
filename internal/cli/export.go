package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/elyxlabs/journeytree/internal/export"
	"github.com/elyxlabs/journeytree/internal/store"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <run-dir> <path>",
	Short: "Export a saved conversation log",
	Long: `Export a run's conversation log to another format.

Formats:
  csv       one row per turn, message text flattened and truncated
  timeline  the timeline-document JSON shape

Examples:
  journeytree export runs/member-1 log.csv
  journeytree export runs/member-1 timeline.json --format timeline`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "export format: csv or timeline")
}

func runExport(cmd *cobra.Command, args []string) error {
	fileStore, err := store.NewFileStore(args[0], logger)
	if err != nil {
		return err
	}
	turns, err := fileStore.LoadTimeline()
	if err != nil {
		return fmt.Errorf("load conversation log: %w", err)
	}

	outPath := args[1]
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	switch exportFormat {
	case "csv":
		err = export.WriteCSV(f, turns)
	case "timeline":
		err = export.WriteTimeline(f, turns)
	default:
		return fmt.Errorf("unknown export format %q", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("Exported %d turns to %s\n", len(turns), outPath)
	return nil
}

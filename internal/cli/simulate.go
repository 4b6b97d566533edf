package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/elyxlabs/journeytree/internal/analysis"
	"github.com/elyxlabs/journeytree/internal/export"
	"github.com/elyxlabs/journeytree/internal/llm"
	"github.com/elyxlabs/journeytree/internal/metrics"
	"github.com/elyxlabs/journeytree/internal/models"
	"github.com/elyxlabs/journeytree/internal/parser"
	"github.com/elyxlabs/journeytree/internal/sim"
	"github.com/elyxlabs/journeytree/internal/store"
)

var (
	simDays int
	simOut  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <timeline.xml>",
	Short: "Run the journey simulation from a message timeline",
	Long: `Simulate the full journey day by day: parse the timeline document,
schedule every day with carry-forward, drive the advisor responder, and
write the conversation log, daily reports and decision tree to the run
directory.

Examples:
  journeytree simulate timeline.xml
  journeytree simulate timeline.xml --days 120 --out runs/member-1`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simDays, "days", 0, "number of days to simulate (default: journey months x 30)")
	simulateCmd.Flags().StringVarP(&simOut, "out", "o", "", "run directory (default: <data_dir>/run)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read timeline: %w", err)
	}

	epoch := timelineEpoch()
	episodes := parser.New(epoch, logger).Parse(data)
	if len(episodes) == 0 {
		return fmt.Errorf("parse %s: %w", args[0], parser.ErrNoData)
	}

	responder, err := llm.NewResponder(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init responder: %w", err)
	}

	outDir := simOut
	if outDir == "" {
		outDir = filepath.Join(cfg.DataDir, "run")
	}
	fileStore, err := store.NewFileStore(outDir, logger)
	if err != nil {
		return err
	}

	days := simDays
	if days <= 0 {
		days = cfg.JourneyMonths * 30
	}

	collector := metrics.NewCollector()
	scheduler := sim.New(responder, fileStore, epoch, logger).WithMetrics(collector)
	turns, err := scheduler.Run(ctx, days, episodes)
	if err != nil {
		return fmt.Errorf("run simulation: %w", err)
	}

	if snap := collector.Snapshot(); snap.Responder != nil {
		logger.Info("responder timings",
			"calls", snap.Responder.Count,
			"avg_ms", snap.Responder.AvgTimeMs,
			"max_ms", snap.Responder.MaxTimeMs)
	}

	tree := analysis.NewAnalyzer(logger).BuildTree(turns)
	if err := fileStore.SaveTree(tree); err != nil {
		logger.Warn("failed to save decision tree", "error", err)
	}
	if err := fileStore.SaveReport(analysis.Summary(tree)); err != nil {
		logger.Warn("failed to save analysis report", "error", err)
	}
	if err := writeCSV(filepath.Join(outDir, "conversation_log.csv"), turns); err != nil {
		logger.Warn("failed to save tabular export", "error", err)
	}

	fmt.Printf("Simulated %d days: %d turns, %d decision points\n",
		days, len(turns), tree.TotalDecisionPoints)
	fmt.Printf("Run %s written to %s\n", scheduler.RunID(), outDir)
	return nil
}

func writeCSV(path string, turns []models.ConversationTurn) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, turns); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

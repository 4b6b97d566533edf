package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/elyxlabs/journeytree/internal/analysis"
	"github.com/elyxlabs/journeytree/internal/db"
	"github.com/elyxlabs/journeytree/internal/export"
	"github.com/elyxlabs/journeytree/internal/models"
	"github.com/elyxlabs/journeytree/internal/store"
)

var (
	archiveRunID       string
	archiveSearchLimit int
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive and browse decision trees in SurrealDB",
}

var archiveSaveCmd = &cobra.Command{
	Use:   "save <run-dir>",
	Short: "Archive a run's decision points",
	Long: `Rebuild the decision tree from a saved conversation log and archive the
run with all its decision points.

Examples:
  journeytree archive save runs/member-1
  journeytree archive save runs/member-1 --run-id member-1-q3`,
	Args: cobra.ExactArgs(1),
	RunE: runArchiveSave,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs",
	Args:  cobra.NoArgs,
	RunE:  runArchiveList,
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show an archived run's decisions",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

var archiveSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over archived member messages",
	Long: `Search the archived decision points of every run by member message.

Examples:
  journeytree archive search "blood pressure"
  journeytree archive search glucose --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runArchiveSearch,
}

func init() {
	archiveSaveCmd.Flags().StringVar(&archiveRunID, "run-id", "", "archive id for the run (default: random)")
	archiveSearchCmd.Flags().IntVar(&archiveSearchLimit, "limit", 10, "maximum number of results")

	archiveCmd.AddCommand(archiveSaveCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
}

// connectArchive opens the SurrealDB archive and initializes its schema.
// The caller closes the returned client.
func connectArchive(ctx context.Context) (*db.Client, error) {
	client, err := db.NewClient(ctx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to archive: %w", err)
	}
	if err := client.InitSchema(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("initialize archive schema: %w", err)
	}
	return client, nil
}

func runArchiveSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fileStore, err := store.NewFileStore(args[0], logger)
	if err != nil {
		return err
	}
	turns, err := fileStore.LoadTimeline()
	if err != nil {
		return fmt.Errorf("load conversation log: %w", err)
	}
	tree := analysis.NewAnalyzer(logger).BuildTree(turns)

	client, err := connectArchive(ctx)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	runID := archiveRunID
	if runID == "" {
		runID = uuid.NewString()
	}

	run := db.Run{
		RunID:            runID,
		Days:             maxDay(turns),
		TurnCount:        len(turns),
		DecisionCount:    tree.TotalDecisionPoints,
		JourneyMonths:    tree.JourneyMonths,
		SimulationPeriod: export.NewTimelineDocument(turns).SimulationPeriod,
	}
	if err := client.ArchiveRun(ctx, run, tree.DecisionPoints); err != nil {
		return err
	}

	fmt.Printf("Archived run %s: %d decision points\n", runID, tree.TotalDecisionPoints)
	return nil
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := connectArchive(ctx)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	runs, err := client.QueryListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%-36s  %4d days  %4d turns  %3d decisions  %s\n",
			run.RunID, run.Days, run.TurnCount, run.DecisionCount, run.SimulationPeriod)
	}
	return nil
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := connectArchive(ctx)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	run, err := client.QueryGetRun(ctx, args[0])
	if err != nil {
		return err
	}
	points, err := client.QueryRunDecisions(ctx, run.RunID)
	if err != nil {
		return err
	}
	counts, err := client.QueryDomainCounts(ctx, run.RunID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%s): %d days, %d turns, %d decisions\n",
		run.RunID, run.SimulationPeriod, run.Days, run.TurnCount, run.DecisionCount)
	for _, count := range counts {
		fmt.Printf("  %-35s %d\n", count.Domain, count.Count)
	}
	fmt.Print(renderDecisions(points, defaultTheme))
	return nil
}

func runArchiveSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, err := connectArchive(ctx)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	points, err := client.QuerySearchDecisions(ctx, args[0], archiveSearchLimit)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Printf("No archived decisions match %q.\n", args[0])
		return nil
	}

	fmt.Print(renderDecisions(points, defaultTheme))
	return nil
}

func maxDay(turns []models.ConversationTurn) int {
	day := 0
	for _, t := range turns {
		if t.Day > day {
			day = t.Day
		}
	}
	return day
}

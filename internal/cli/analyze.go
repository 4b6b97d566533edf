package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elyxlabs/journeytree/internal/analysis"
	"github.com/elyxlabs/journeytree/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <run-dir>",
	Short: "Rebuild the decision tree from a saved conversation log",
	Long: `Reload a previously saved conversation log, re-run decision extraction
and write decision_tree.json and the plain-text analysis report back into
the run directory.

Examples:
  journeytree analyze runs/member-1`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	fileStore, err := store.NewFileStore(args[0], logger)
	if err != nil {
		return err
	}

	turns, err := fileStore.LoadTimeline()
	if err != nil {
		return fmt.Errorf("load conversation log: %w", err)
	}

	tree := analysis.NewAnalyzer(logger).BuildTree(turns)
	if err := fileStore.SaveTree(tree); err != nil {
		return fmt.Errorf("save decision tree: %w", err)
	}
	if err := fileStore.SaveReport(analysis.Summary(tree)); err != nil {
		return fmt.Errorf("save analysis report: %w", err)
	}

	fmt.Printf("Analyzed %d turns: %d decision points, %d branching transitions\n",
		len(turns), tree.TotalDecisionPoints, len(tree.BranchingPaths))
	return nil
}

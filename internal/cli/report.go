package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/elyxlabs/journeytree/internal/analysis"
	"github.com/elyxlabs/journeytree/internal/models"
	"github.com/elyxlabs/journeytree/internal/store"
)

// Theme holds the color scheme for the report display.
type Theme struct {
	Title   lipgloss.Color
	Section lipgloss.Color
	Accent  lipgloss.Color
	Alert   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Title:   lipgloss.Color("#5FAFD7"), // light blue
	Section: lipgloss.Color("#00D787"), // green
	Accent:  lipgloss.Color("#FFD700"), // gold
	Alert:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

// Style functions for dynamic theming
func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

func (t Theme) sectionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Section).Bold(true)
}

func (t Theme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent)
}

func (t Theme) alertStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Alert).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

var reportDecisions bool

var reportCmd = &cobra.Command{
	Use:   "report <run-dir>",
	Short: "Print a styled decision tree report for a run",
	Long: `Rebuild the decision tree from a saved conversation log and print a
styled terminal report: journey overview, domain and advisor breakdowns,
decision cadence, and optionally every decision point.

Examples:
  journeytree report runs/member-1
  journeytree report runs/member-1 --decisions`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportDecisions, "decisions", false, "list every decision point")
}

func runReport(cmd *cobra.Command, args []string) error {
	fileStore, err := store.NewFileStore(args[0], logger)
	if err != nil {
		return err
	}
	turns, err := fileStore.LoadTimeline()
	if err != nil {
		return fmt.Errorf("load conversation log: %w", err)
	}

	tree := analysis.NewAnalyzer(logger).BuildTree(turns)
	fmt.Print(renderReport(tree, defaultTheme))

	if reportDecisions {
		fmt.Print(renderDecisions(tree.DecisionPoints, defaultTheme))
	}
	return nil
}

func renderReport(tree models.DecisionTree, theme Theme) string {
	var b strings.Builder

	b.WriteString(theme.titleStyle().Render("Journey Decision Tree"))
	b.WriteString("\n\n")
	b.WriteString(analysis.Summary(tree))

	if tree.TotalDecisionPoints == 0 {
		b.WriteString(theme.hintStyle().Render("No decision points found in this run."))
		b.WriteString("\n")
	}
	return b.String()
}

func renderDecisions(points []models.DecisionPoint, theme Theme) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.sectionStyle().Render("Decision points"))
	b.WriteString("\n")

	for _, p := range points {
		header := fmt.Sprintf("#%d  day %d (%s)  %s", p.ID, p.Day, p.Date, p.AgentName)
		b.WriteString(theme.accentStyle().Render(header))
		b.WriteString("\n")

		line := fmt.Sprintf("    %s | %s | %s", p.HealthDomain, p.UrgencyLevel, p.Complexity)
		if p.UrgencyLevel == "High Urgency" {
			line = theme.alertStyle().Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")

		for _, rec := range p.Recommendations {
			fmt.Fprintf(&b, "    - %s\n", rec)
		}
		b.WriteString(theme.hintStyle().Render("    " + models.Preview(p.UserMessage, 100)))
		b.WriteString("\n")
	}
	return b.String()
}

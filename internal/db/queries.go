// Package db provides SurrealDB query functions for the decision archive.
package db

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/elyxlabs/journeytree/internal/models"
)

// Run is one archived simulation run.
type Run struct {
	RunID            string `json:"run_id"`
	Days             int    `json:"days"`
	TurnCount        int    `json:"turn_count"`
	DecisionCount    int    `json:"decision_count"`
	JourneyMonths    int    `json:"journey_months"`
	SimulationPeriod string `json:"simulation_period,omitempty"`
}

// DomainCount represents a health domain with its decision count.
type DomainCount struct {
	Domain string `json:"health_domain"`
	Count  int    `json:"count"`
}

// archivedDecision is the decision table row shape.
type archivedDecision struct {
	RunID           string   `json:"run_id"`
	DecisionID      int      `json:"decision_id"`
	Day             int      `json:"day"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	UserMessage     string   `json:"user_message"`
	AgentName       string   `json:"agent_name"`
	Recommendations []string `json:"recommendations"`
	PossiblePaths   []string `json:"possible_paths"`
	HealthDomain    string   `json:"health_domain"`
	UrgencyLevel    string   `json:"urgency_level"`
	Complexity      string   `json:"complexity"`
	Reasons         []string `json:"reasons"`
}

func toArchived(runID string, p models.DecisionPoint) archivedDecision {
	return archivedDecision{
		RunID:           runID,
		DecisionID:      p.ID,
		Day:             p.Day,
		Date:            p.Date,
		Time:            p.Time,
		UserMessage:     p.UserMessage,
		AgentName:       p.AgentName,
		Recommendations: p.Recommendations,
		PossiblePaths:   p.PossiblePaths,
		HealthDomain:    p.HealthDomain,
		UrgencyLevel:    p.UrgencyLevel,
		Complexity:      p.Complexity,
		Reasons:         p.Reasons,
	}
}

func fromArchived(d archivedDecision) models.DecisionPoint {
	return models.DecisionPoint{
		ID:              d.DecisionID,
		Day:             d.Day,
		Date:            d.Date,
		Time:            d.Time,
		UserMessage:     d.UserMessage,
		AgentName:       d.AgentName,
		Recommendations: d.Recommendations,
		PossiblePaths:   d.PossiblePaths,
		HealthDomain:    d.HealthDomain,
		UrgencyLevel:    d.UrgencyLevel,
		Complexity:      d.Complexity,
		Reasons:         d.Reasons,
	}
}

// ArchiveRun stores one run record and all its decision points. Archiving
// the same run_id twice fails with ErrRunAlreadyExists.
func (c *Client) ArchiveRun(ctx context.Context, run Run, points []models.DecisionPoint) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE run CONTENT {
			run_id: $run_id,
			days: $days,
			turn_count: $turn_count,
			decision_count: $decision_count,
			journey_months: $journey_months,
			simulation_period: $simulation_period
		}
	`, map[string]any{
		"run_id":            run.RunID,
		"days":              run.Days,
		"turn_count":        run.TurnCount,
		"decision_count":    run.DecisionCount,
		"journey_months":    run.JourneyMonths,
		"simulation_period": run.SimulationPeriod,
	})
	if err != nil {
		return fmt.Errorf("archive run: %w", wrapQueryError(err))
	}

	for _, p := range points {
		_, err := surrealdb.Query[any](ctx, c.db, `
			CREATE decision CONTENT $decision
		`, map[string]any{"decision": toArchived(run.RunID, p)})
		if err != nil {
			return fmt.Errorf("archive decision %d: %w", p.ID, wrapQueryError(err))
		}
	}
	return nil
}

// QueryGetRun retrieves a run by run_id. Returns ErrNotFound when no run
// with that id was archived.
func (c *Client) QueryGetRun(ctx context.Context, runID string) (*Run, error) {
	results, err := surrealdb.Query[[]Run](ctx, c.db, `
		SELECT * FROM run WHERE run_id = $run_id
	`, map[string]any{"run_id": runID})
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("get run %s: %w", runID, ErrNotFound)
	}
	return &(*results)[0].Result[0], nil
}

// QueryListRuns returns all archived runs, newest first.
func (c *Client) QueryListRuns(ctx context.Context) ([]Run, error) {
	results, err := surrealdb.Query[[]Run](ctx, c.db, `
		SELECT * FROM run ORDER BY archived DESC
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return []Run{}, nil
}

// QueryRunDecisions returns a run's decision points in ascending decision
// order.
func (c *Client) QueryRunDecisions(ctx context.Context, runID string) ([]models.DecisionPoint, error) {
	results, err := surrealdb.Query[[]archivedDecision](ctx, c.db, `
		SELECT * FROM decision WHERE run_id = $run_id ORDER BY decision_id ASC
	`, map[string]any{"run_id": runID})
	if err != nil {
		return nil, fmt.Errorf("run decisions: %w", err)
	}

	var points []models.DecisionPoint
	if results != nil && len(*results) > 0 {
		for _, d := range (*results)[0].Result {
			points = append(points, fromArchived(d))
		}
	}
	return points, nil
}

// QueryDomainCounts aggregates a run's decisions by health domain.
func (c *Client) QueryDomainCounts(ctx context.Context, runID string) ([]DomainCount, error) {
	results, err := surrealdb.Query[[]DomainCount](ctx, c.db, `
		SELECT health_domain, count() AS count FROM decision
		WHERE run_id = $run_id
		GROUP BY health_domain
		ORDER BY count DESC
	`, map[string]any{"run_id": runID})
	if err != nil {
		return nil, fmt.Errorf("domain counts: %w", err)
	}

	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return []DomainCount{}, nil
}

// QuerySearchDecisions runs a full-text search over archived member
// messages across all runs.
func (c *Client) QuerySearchDecisions(ctx context.Context, query string, limit int) ([]models.DecisionPoint, error) {
	results, err := surrealdb.Query[[]archivedDecision](ctx, c.db, `
		SELECT * FROM decision WHERE user_message @0@ $q LIMIT $limit
	`, map[string]any{"q": query, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("search decisions: %w", err)
	}

	var points []models.DecisionPoint
	if results != nil && len(*results) > 0 {
		for _, d := range (*results)[0].Result {
			points = append(points, fromArchived(d))
		}
	}
	return points, nil
}

// DeleteRun removes a run record and all its decisions.
func (c *Client) DeleteRun(ctx context.Context, runID string) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		DELETE decision WHERE run_id = $run_id;
		DELETE run WHERE run_id = $run_id;
	`, map[string]any{"run_id": runID})
	if err != nil {
		return fmt.Errorf("delete run: %w", wrapQueryError(err))
	}
	return nil
}

// Package store persists conversation logs and daily reports to a run
// directory on disk. It implements the scheduler's persistence gateway;
// writes overwrite and are best-effort.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/elyxlabs/journeytree/internal/export"
	"github.com/elyxlabs/journeytree/internal/models"
)

const timelineFile = "conversation_timeline.json"

// FileStore writes run artifacts under a single directory.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

// NewFileStore creates the run directory if needed. logger may be nil.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Dir returns the run directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// SaveTimeline overwrites the conversation log with the full turn sequence.
func (s *FileStore) SaveTimeline(turns []models.ConversationTurn) error {
	path := filepath.Join(s.dir, timelineFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteTimeline(f, turns); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadTimeline reads back a previously saved conversation log.
func (s *FileStore) LoadTimeline() ([]models.ConversationTurn, error) {
	path := filepath.Join(s.dir, timelineFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	turns, err := export.DecodeTimeline(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return turns, nil
}

// SaveDailyReport writes one day's snapshot as day_NNN_report.json.
func (s *FileStore) SaveDailyReport(report models.DailyReport) error {
	path := filepath.Join(s.dir, fmt.Sprintf("day_%03d_report.json", report.Day))
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode daily report %d: %w", report.Day, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// SaveReport writes the plain-text analysis report alongside the log.
func (s *FileStore) SaveReport(text string) error {
	path := filepath.Join(s.dir, "decision_tree_analysis_report.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// SaveTree writes the analyzed decision tree alongside the log.
func (s *FileStore) SaveTree(tree models.DecisionTree) error {
	path := filepath.Join(s.dir, "decision_tree.json")
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("encode decision tree: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/okian/hiredw/internal/domain/model"
)

// StageTiming is the wall time of one pipeline stage.
type StageTiming struct {
	Stage      string  `yaml:"stage"`
	DurationMS float64 `yaml:"duration_ms"`
}

// RunSummary is the persisted record of one pipeline run.
type RunSummary struct {
	RunID           string           `yaml:"run_id"`
	StartedAt       string           `yaml:"started_at"`
	Command         string           `yaml:"command"`
	Input           string           `yaml:"input,omitempty"`
	Warehouse       string           `yaml:"warehouse"`
	RowsRead        int              `yaml:"rows_read"`
	RecordsLoaded   int              `yaml:"records_loaded"`
	Hired           int              `yaml:"hired"`
	DuplicateEmails int              `yaml:"duplicate_emails"`
	Bands           map[string]int   `yaml:"experience_bands,omitempty"`
	DimensionRows   map[string]int64 `yaml:"dimension_rows_inserted,omitempty"`
	FactsInserted   int64            `yaml:"facts_inserted"`
	KPIs            []string         `yaml:"kpis,omitempty"`
	Stages          []StageTiming    `yaml:"stages"`
	Defects         []model.Defect   `yaml:"defects"`
	Success         bool             `yaml:"success"`
	Error           string           `yaml:"error,omitempty"`
}

// WriteSummary writes s as YAML to path, creating the directory.
func WriteSummary(path string, s RunSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputDir, err)
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: summary: %v", ErrWriteExport, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteExport, path, err)
	}
	return nil
}

// ReadSummary parses a summary written by WriteSummary.
func ReadSummary(path string) (RunSummary, error) {
	var s RunSummary
	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

package service

import (
	"context"
	"time"

	"github.com/okian/hiredw/internal/adapters/export"
	"github.com/okian/hiredw/internal/adapters/repository"
	"github.com/okian/hiredw/internal/domain/classify"
	"github.com/okian/hiredw/internal/domain/model"
	"github.com/okian/hiredw/internal/domain/types"
	"github.com/okian/hiredw/pkg/logger"
	"github.com/okian/hiredw/pkg/metrics"
)

// Stats are the counters of one run.
type Stats struct {
	RowsRead        int
	Records         int
	Hired           int
	DuplicateEmails int
	Bands           map[string]int
	Load            repository.LoadResult
}

// Run is the context of one pipeline invocation, passed to every stage.
type Run struct {
	ID        string
	Command   string
	StartedAt time.Time
	Log       logger.Logger

	Stats   Stats
	Defects []model.Defect
	Stages  []export.StageTiming
	Tables  []types.Table
	Files   []string
}

func newRun(id, command string, log logger.Logger) *Run {
	bands := make(map[string]int, len(classify.Bands))
	for _, b := range classify.Bands {
		bands[b] = 0
	}
	return &Run{
		ID:        id,
		Command:   command,
		StartedAt: time.Now().UTC(),
		Log:       log.With(logger.String("run_id", id), logger.String("command", command)),
		Stats:     Stats{Bands: bands},
	}
}

// stage runs fn as the named stage, timing it and wrapping its error.
func (r *Run) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	start := time.Now()
	r.Log.Debug(ctx, "stage started", logger.String("stage", name))

	err := fn(ctx)
	took := time.Since(start)
	ms := float64(took.Microseconds()) / 1000
	metrics.RecordStageDuration(name, ms)
	r.Stages = append(r.Stages, export.StageTiming{Stage: name, DurationMS: ms})

	if err != nil {
		metrics.RecordStageError(name)
		r.Log.Error(ctx, "stage failed", logger.String("stage", name), logger.Duration("took", took), logger.Error(err))
		return &StageError{Stage: name, Err: err}
	}
	r.Log.Info(ctx, "stage finished", logger.String("stage", name), logger.Duration("took", took))
	return nil
}

// Summary renders the run for persistence.
func (r *Run) Summary(input, warehouse string, runErr error) export.RunSummary {
	s := export.RunSummary{
		RunID:           r.ID,
		StartedAt:       r.StartedAt.Format(time.RFC3339),
		Command:         r.Command,
		Input:           input,
		Warehouse:       warehouse,
		RowsRead:        r.Stats.RowsRead,
		RecordsLoaded:   r.Stats.Records,
		Hired:           r.Stats.Hired,
		DuplicateEmails: r.Stats.DuplicateEmails,
		DimensionRows:   r.Stats.Load.DimensionRows,
		FactsInserted:   r.Stats.Load.Facts,
		Stages:          r.Stages,
		Defects:         r.Defects,
		Success:         runErr == nil,
	}
	if r.Stats.Records > 0 {
		s.Bands = r.Stats.Bands
	}
	for _, t := range r.Tables {
		s.KPIs = append(s.KPIs, t.Name)
	}
	if s.Stages == nil {
		s.Stages = []export.StageTiming{}
	}
	if s.Defects == nil {
		s.Defects = []model.Defect{}
	}
	if runErr != nil {
		s.Error = runErr.Error()
	}
	return s
}

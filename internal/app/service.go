// Package service orchestrates the hiring ETL pipeline: extract, transform,
// load, aggregate and export, each as a timed stage of one Run.
package service

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/okian/hiredw/internal/adapters/export"
	"github.com/okian/hiredw/internal/adapters/mq/worker"
	"github.com/okian/hiredw/internal/adapters/repository"
	"github.com/okian/hiredw/internal/adapters/source"
	"github.com/okian/hiredw/internal/config"
	"github.com/okian/hiredw/internal/domain/classify"
	"github.com/okian/hiredw/internal/domain/dedupe"
	"github.com/okian/hiredw/internal/domain/model"
	"github.com/okian/hiredw/internal/domain/normalize"
	"github.com/okian/hiredw/pkg/logger"
	"github.com/okian/hiredw/pkg/metrics"
)

// Commands recorded in run summaries.
const (
	CommandETL = "etl"
	CommandKPI = "kpi"
	CommandRun = "run"
)

// Service runs the pipeline against one configuration.
type Service struct {
	cfg        *config.Config
	reader     *source.Reader
	normalizer *normalize.Normalizer
	classifier *classify.Classifier
	pool       *worker.Pool
	newRunID   func() string
	logger     logger.Logger
}

// New constructs a Service from cfg.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		cfg:        cfg,
		reader:     source.NewReader(source.WithDelimiter(cfg.DelimiterRune())),
		normalizer: normalize.New(
			normalize.WithCountryAliases(cfg.AliasMap()),
			normalize.WithDateLayouts(cfg.DateLayouts...),
		),
		classifier: classify.New(classify.WithStrictDates(cfg.StrictDates)),
		newRunID:   uuid.NewString,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("pipeline")
	s.pool = worker.NewPool(worker.WithWorkers(cfg.Workers), worker.WithLogger(s.logger.Named("transform")))
	return s, nil
}

// ETL extracts the input file, transforms it and loads the warehouse.
func (s *Service) ETL(ctx context.Context) (*Run, error) {
	run := newRun(s.newRunID(), CommandETL, s.logger)
	err := s.etl(ctx, run)
	return run, s.finish(ctx, run, err)
}

// KPI computes every KPI from an existing warehouse and exports it.
func (s *Service) KPI(ctx context.Context) (*Run, error) {
	run := newRun(s.newRunID(), CommandKPI, s.logger)
	err := s.kpi(ctx, run)
	return run, s.finish(ctx, run, err)
}

// RunAll optionally rebuilds the warehouse, then computes and exports KPIs.
func (s *Service) RunAll(ctx context.Context, rebuild bool) (*Run, error) {
	run := newRun(s.newRunID(), CommandRun, s.logger)
	var err error
	if rebuild {
		err = s.etl(ctx, run)
	}
	if err == nil {
		err = s.kpi(ctx, run)
	}
	return run, s.finish(ctx, run, err)
}

func (s *Service) etl(ctx context.Context, run *Run) error {
	run.Log.Info(ctx, "etl started", logger.String("csv", s.cfg.CSVPath), logger.String("db", s.cfg.DBPath))

	var rows []model.RawRow
	if err := run.stage(ctx, StageExtract, func(ctx context.Context) error {
		var err error
		rows, err = s.reader.ReadFile(ctx, s.cfg.CSVPath)
		if err != nil {
			return err
		}
		run.Stats.RowsRead = len(rows)
		metrics.RecordRowsExtracted(len(rows))
		return nil
	}); err != nil {
		return err
	}

	var records []model.Classified
	if err := run.stage(ctx, StageTransform, func(ctx context.Context) error {
		var err error
		records, err = s.transform(ctx, run, rows)
		return err
	}); err != nil {
		return err
	}

	return run.stage(ctx, StageLoad, func(ctx context.Context) error {
		ddl, err := repository.LoadSchema(s.cfg.SchemaPath)
		if err != nil {
			return err
		}
		w, err := repository.Open(ctx, s.cfg.DBPath)
		if err != nil {
			return err
		}
		defer w.Close()

		loader := repository.NewLoader(w,
			repository.WithBatchSize(s.cfg.BatchSize),
			repository.WithLoaderLogger(run.Log.Named("loader")),
		)
		res, err := loader.Load(ctx, ddl, records)
		if err != nil {
			return err
		}
		run.Stats.Load = res
		return nil
	})
}

// transformed is the per-row output of the worker pool.
type transformed struct {
	record  model.Classified
	defects []model.Defect
	err     error
}

// transform normalizes and classifies rows on the worker pool, then folds
// the results in input order. Parse defects never abort; a classification
// error does, after the defects of its row are reported.
func (s *Service) transform(ctx context.Context, run *Run, rows []model.RawRow) ([]model.Classified, error) {
	results, err := worker.Map(ctx, s.pool, rows, func(_ context.Context, row model.RawRow) (transformed, error) {
		rec, defects := s.normalizer.Normalize(row)
		c, err := s.classifier.Classify(rec)
		return transformed{record: c, defects: defects, err: err}, nil
	})
	if err != nil {
		return nil, err
	}

	emails := dedupe.New(dedupe.WithCapacity(len(rows)))
	out := make([]model.Classified, 0, len(rows))

	for _, res := range results {
		for _, d := range res.defects {
			metrics.RecordParseDefect(d.Field)
			run.Log.Warn(ctx, "parse defect",
				logger.Int("line", d.Line),
				logger.String("field", d.Field),
				logger.String("raw", d.Raw),
				logger.String("reason", d.Reason),
			)
		}
		run.Defects = append(run.Defects, res.defects...)

		if res.err != nil {
			return nil, res.err
		}
		c := res.record
		if c.Email != "" && emails.SeenAndRecord(c.Email) {
			run.Stats.DuplicateEmails++
		}
		if c.Hired {
			run.Stats.Hired++
		}
		run.Stats.Bands[c.ExperienceBand]++
		metrics.RecordClassified(c.Hired)
		out = append(out, c)
	}

	run.Stats.Records = len(out)
	run.Log.Info(ctx, "records classified",
		logger.Int("records", len(out)),
		logger.Int("hired", run.Stats.Hired),
		logger.Int("defects", len(run.Defects)),
		logger.Int("duplicate_emails", run.Stats.DuplicateEmails),
		logger.Int("workers", s.pool.Workers()),
	)
	return out, nil
}

func (s *Service) kpi(ctx context.Context, run *Run) error {
	if err := run.stage(ctx, StageAggregate, func(ctx context.Context) error {
		w, err := repository.OpenExisting(ctx, s.cfg.DBPath)
		if err != nil {
			return err
		}
		defer w.Close()

		agg := repository.NewAggregator(w,
			repository.WithWatchCountries(s.cfg.WatchCountries...),
			repository.WithAggregatorLogger(run.Log.Named("aggregator")),
		)
		run.Tables, err = agg.Run(ctx)
		return err
	}); err != nil {
		return err
	}

	return run.stage(ctx, StageExport, func(ctx context.Context) error {
		opts := []export.Option{export.WithLogger(run.Log.Named("export"))}
		if !s.cfg.Workbook {
			opts = append(opts, export.WithoutWorkbook())
		}
		exp := export.New(s.cfg.OutDir, opts...)
		files, err := exp.Export(ctx, run.Tables)
		run.Files = files
		return err
	})
}

// finish persists the run summary and metrics. A summary write failure only
// surfaces when the run itself succeeded.
func (s *Service) finish(ctx context.Context, run *Run, runErr error) error {
	metrics.SetLastRunSuccess(runErr == nil)

	summaryPath := filepath.Join(s.cfg.OutDir, export.SummaryName)
	input := ""
	if run.Command == CommandETL || run.Stats.RowsRead > 0 {
		input = s.cfg.CSVPath
	}
	if err := export.WriteSummary(summaryPath, run.Summary(input, s.cfg.DBPath, runErr)); err != nil {
		run.Log.Warn(ctx, "run summary not written", logger.String("path", summaryPath), logger.Error(err))
		if runErr == nil {
			runErr = &StageError{Stage: StageExport, Err: err}
		}
	} else {
		run.Files = append(run.Files, summaryPath)
	}

	if s.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
			run.Log.Warn(ctx, "metrics textfile not written", logger.String("path", s.cfg.MetricsFile), logger.Error(err))
		}
	}

	if runErr != nil {
		run.Log.Error(ctx, "run failed", logger.Error(runErr))
		return runErr
	}
	run.Log.Info(ctx, "run finished",
		logger.Int("rows", run.Stats.RowsRead),
		logger.Int64("facts", run.Stats.Load.Facts),
		logger.Int("kpis", len(run.Tables)),
	)
	return nil
}

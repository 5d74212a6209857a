// Package export writes KPI tables and run summaries to disk.
package export

import "github.com/okian/hiredw/pkg/logger"

// WorkbookName is the consolidated workbook written next to the CSVs.
const WorkbookName = "kpis.xlsx"

// SummaryName is the run summary file name.
const SummaryName = "run_summary.yaml"

// Option applies a configuration option to the Exporter.
type Option func(*Exporter)

// WithLogger sets the exporter's logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Exporter) {
		if log != nil {
			e.log = log
		}
	}
}

// WithoutWorkbook skips the xlsx workbook.
func WithoutWorkbook() Option {
	return func(e *Exporter) {
		e.workbook = false
	}
}

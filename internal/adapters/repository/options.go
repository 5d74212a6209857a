// Package repository is the SQLite star-schema warehouse: schema, loader and
// KPI queries.
package repository

import "github.com/okian/hiredw/pkg/logger"

const defaultBatchSize = 500

// LoaderOption applies a configuration option to the Loader.
type LoaderOption func(*Loader)

// WithBatchSize sets the number of rows per INSERT statement.
func WithBatchSize(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.batchSize = n
		}
	}
}

// WithLoaderLogger sets the loader's logger.
func WithLoaderLogger(log logger.Logger) LoaderOption {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// AggregatorOption applies a configuration option to the Aggregator.
type AggregatorOption func(*Aggregator)

// WithWatchCountries sets the countries reported by hires_by_country_by_year.
func WithWatchCountries(countries ...string) AggregatorOption {
	return func(a *Aggregator) {
		if len(countries) > 0 {
			a.watchCountries = countries
		}
	}
}

// WithAggregatorLogger sets the aggregator's logger.
func WithAggregatorLogger(log logger.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

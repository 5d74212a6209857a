// Package sampledata generates synthetic candidate files with realistic
// defects for smoke runs and tests.
package sampledata

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed fixes the random source; equal seeds give equal output.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithMessyRate sets the share of rows, in [0, 1], that carry a defect.
func WithMessyRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.messyRate = rate
		}
	}
}

// WithYears sets the inclusive range of application years.
func WithYears(from, to int) Option {
	return func(g *Generator) {
		if from > 0 && to >= from {
			g.fromYear, g.toYear = from, to
		}
	}
}

// WithDelimiter sets the output field delimiter.
func WithDelimiter(r rune) Option {
	return func(g *Generator) {
		if r != 0 {
			g.delimiter = r
		}
	}
}

// Package source extracts raw candidate rows from delimited files.
package source

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithDelimiter sets the field delimiter. The default is ';'.
func WithDelimiter(r rune) Option {
	return func(rd *Reader) {
		if r != 0 {
			rd.delimiter = r
		}
	}
}

// WithRequiredColumns overrides the columns the header must carry.
func WithRequiredColumns(cols ...string) Option {
	return func(rd *Reader) {
		rd.required = cols
	}
}

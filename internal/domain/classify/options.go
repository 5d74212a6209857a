package classify

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithStrictDates rejects records whose application date failed to parse
// instead of keying them to UnknownDateKey.
func WithStrictDates(strict bool) Option {
	return func(c *Classifier) {
		c.strictDates = strict
	}
}

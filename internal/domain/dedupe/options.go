package dedupe

// Option applies a configuration option to the Deduper.
type Option func(*Deduper)

// WithCapacity presizes the seen set.
func WithCapacity(n int) Option {
	return func(d *Deduper) {
		if n > 0 {
			d.capacity = n
		}
	}
}

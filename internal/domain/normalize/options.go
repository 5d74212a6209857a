// Package normalize turns raw input rows into typed, cleaned candidate records.
package normalize

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithCountryAliases adds aliases on top of the built-in table. Keys are
// matched case-insensitively; configured entries win over built-in ones.
func WithCountryAliases(aliases map[string]string) Option {
	return func(n *Normalizer) {
		for k, v := range aliases {
			n.countries.aliases[lowerTrim(k)] = v
		}
	}
}

// WithDateLayouts replaces the accepted application date layouts.
func WithDateLayouts(layouts ...string) Option {
	return func(n *Normalizer) {
		if len(layouts) > 0 {
			n.dateLayouts = layouts
		}
	}
}

package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultCountryAliases maps lower-cased spellings to canonical English names.
var defaultCountryAliases = map[string]string{
	"usa":                      "United States",
	"us":                       "United States",
	"u.s.":                     "United States",
	"u.s.a.":                   "United States",
	"united states of america": "United States",
	"ee.uu.":                   "United States",
	"uk":                       "United Kingdom",
	"u.k.":                     "United Kingdom",
	"great britain":            "United Kingdom",
	"brasil":                   "Brazil",
}

// countryTable is the two-tier country policy: exact alias, then title case.
type countryTable struct {
	aliases map[string]string
}

func newCountryTable() countryTable {
	aliases := make(map[string]string, len(defaultCountryAliases))
	for k, v := range defaultCountryAliases {
		aliases[k] = v
	}
	return countryTable{aliases: aliases}
}

// canonical returns the canonical name for raw. It is idempotent: a canonical
// name maps to itself.
func (t countryTable) canonical(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if name, ok := t.aliases[strings.ToLower(trimmed)]; ok {
		return name
	}
	return cases.Title(language.English).String(trimmed)
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

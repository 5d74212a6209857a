package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/hiredw/internal/domain/model"
)

// Defect reasons.
const (
	ReasonBlank       = "blank"
	ReasonUnparseable = "unparseable"
	ReasonNegative    = "negative"
)

// defaultDateLayouts are tried in order; the first match wins.
var defaultDateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	time.DateTime,
	time.RFC3339,
	"2006-1-2",
}

// headerAliases maps alternative folded headers to canonical column names.
var headerAliases = map[string]string{
	"years_of_experience": model.ColYOE,
}

// FoldHeader trims and lower-cases a column name and replaces internal
// whitespace runs with a single underscore.
func FoldHeader(name string) string {
	folded := strings.Join(strings.Fields(strings.ToLower(name)), "_")
	if canonical, ok := headerAliases[folded]; ok {
		return canonical
	}
	return folded
}

// Normalizer parses raw fields into a typed record. Parse failures never
// abort: each is replaced by a sentinel and reported as a Defect.
type Normalizer struct {
	countries   countryTable
	dateLayouts []string
}

// New creates a Normalizer with the built-in country aliases.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		countries:   newCountryTable(),
		dateLayouts: defaultDateLayouts,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts one raw row.
func (n *Normalizer) Normalize(row model.RawRow) (model.CandidateRecord, []model.Defect) {
	var defects []model.Defect
	defect := func(field, raw, reason string) {
		defects = append(defects, model.Defect{Line: row.Line, Field: field, Raw: raw, Reason: reason})
	}
	get := func(col string) string { return strings.TrimSpace(row.Fields[col]) }

	rec := model.CandidateRecord{
		Line:       row.Line,
		FirstName:  get(model.ColFirstName),
		LastName:   get(model.ColLastName),
		Email:      get(model.ColEmail),
		Country:    n.Country(row.Fields[model.ColCountry]),
		Seniority:  get(model.ColSeniority),
		Technology: get(model.ColTechnology),
	}

	rawDate := get(model.ColApplicationDate)
	rec.ApplicationDate = n.ParseDate(rawDate)
	if !rec.ApplicationDate.Valid {
		defect(model.ColApplicationDate, rawDate, blankOr(rawDate, ReasonUnparseable))
	}

	rawYOE := get(model.ColYOE)
	yoe, reason := parseYears(rawYOE)
	if reason != "" {
		defect(model.ColYOE, rawYOE, reason)
	}
	rec.YearsOfExperience = yoe

	for _, s := range []struct {
		col string
		dst *model.Score
	}{
		{model.ColCodeChallenge, &rec.CodeChallengeScore},
		{model.ColTechInterview, &rec.TechnicalInterviewScore},
	} {
		raw := get(s.col)
		*s.dst = ParseScore(raw)
		if !s.dst.Present {
			defect(s.col, raw, blankOr(raw, ReasonUnparseable))
		}
	}

	return rec, defects
}

// Country applies the alias table, falling back to title case.
func (n *Normalizer) Country(raw string) string {
	return n.countries.canonical(raw)
}

// ParseDate tries each configured layout. Only the calendar date is kept.
func (n *Normalizer) ParseDate(raw string) model.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Date{}
	}
	for _, layout := range n.dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return model.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
	}
	return model.Date{}
}

// ParseScore parses a numeric score. Blank, malformed, NaN and infinite
// values are absent.
func ParseScore(raw string) model.Score {
	v, ok := parseNumber(raw)
	if !ok {
		return model.Score{}
	}
	return model.Score{Value: v, Present: true}
}

// parseYears truncates toward zero; failures and negatives become 0.
func parseYears(raw string) (int, string) {
	if raw == "" {
		return 0, ReasonBlank
	}
	v, ok := parseNumber(raw)
	if !ok {
		return 0, ReasonUnparseable
	}
	if v < 0 {
		return 0, ReasonNegative
	}
	if v > math.MaxInt32 {
		return 0, ReasonUnparseable
	}
	return int(math.Trunc(v)), ""
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func blankOr(raw, reason string) string {
	if raw == "" {
		return ReasonBlank
	}
	return reason
}

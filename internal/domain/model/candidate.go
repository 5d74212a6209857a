// Package model contains domain models passed between pipeline stages.
package model

import "time"

// Canonical input column names, after header folding.
const (
	ColFirstName       = "first_name"
	ColLastName        = "last_name"
	ColEmail           = "email"
	ColCountry         = "country"
	ColApplicationDate = "application_date"
	ColYOE             = "yoe"
	ColCodeChallenge   = "code_challenge_score"
	ColTechInterview   = "technical_interview_score"
	ColSeniority       = "seniority"
	ColTechnology      = "technology"
)

// RequiredColumns lists every column the input file must carry.
var RequiredColumns = []string{
	ColFirstName, ColLastName, ColEmail, ColCountry, ColApplicationDate,
	ColYOE, ColCodeChallenge, ColTechInterview, ColSeniority, ColTechnology,
}

// RawRow is one input row keyed by folded column name.
type RawRow struct {
	Line   int // 1-based line in the source file; the header is line 1
	Fields map[string]string
}

// Date is a calendar date that may have failed to parse.
type Date struct {
	Time  time.Time
	Valid bool
}

// ISO returns YYYY-MM-DD, or "unknown" for an invalid date.
func (d Date) ISO() string {
	if !d.Valid {
		return "unknown"
	}
	return d.Time.Format(time.DateOnly)
}

// Score is a numeric score that may be absent.
type Score struct {
	Value   float64
	Present bool
}

// Ptr returns nil for an absent score; gorm writes it as NULL.
func (s Score) Ptr() *float64 {
	if !s.Present {
		return nil
	}
	v := s.Value
	return &v
}

// Defect records a field that failed to coerce and the sentinel used instead.
type Defect struct {
	Line   int    `yaml:"line"`
	Field  string `yaml:"field"`
	Raw    string `yaml:"raw"`
	Reason string `yaml:"reason"`
}

// CandidateRecord is one normalized input row.
type CandidateRecord struct {
	Line                    int
	FirstName               string
	LastName                string
	Email                   string // natural identity across duplicate rows
	Country                 string
	ApplicationDate         Date
	YearsOfExperience       int
	CodeChallengeScore      Score
	TechnicalInterviewScore Score
	Seniority               string
	Technology              string
}

// Classified is a normalized record plus its derived business attributes.
type Classified struct {
	CandidateRecord
	Hired          bool
	ExperienceBand string
	DateKey        int
}

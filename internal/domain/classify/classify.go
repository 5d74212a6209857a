// Package classify derives business attributes from normalized records.
package classify

import (
	"fmt"

	"github.com/okian/hiredw/internal/domain/model"
)

// HireThreshold is the minimum on both scores for a hire.
const HireThreshold = 7

// UnknownDateKey keys records whose application date did not parse. It can
// never collide with a real YYYYMMDD key.
const UnknownDateKey = 0

// Experience bands, in order.
const (
	BandJunior   = "0-2"
	BandMid      = "3-5"
	BandSenior   = "6-10"
	BandVeteran  = "11+"
	bandMidMin   = 3
	bandSenMin   = 6
	bandVetMin   = 11
	dateKeyYear  = 10000
	dateKeyMonth = 100
)

// Bands lists every experience band in ascending order.
var Bands = []string{BandJunior, BandMid, BandSenior, BandVeteran}

// Hired is true iff both scores are present and each is >= HireThreshold.
func Hired(codeChallenge, techInterview model.Score) bool {
	return codeChallenge.Present && techInterview.Present &&
		codeChallenge.Value >= HireThreshold && techInterview.Value >= HireThreshold
}

// Band maps years of experience to its band. Bands are inclusive on both ends
// and partition [0, inf); negative input falls into the first band.
func Band(yoe int) string {
	switch {
	case yoe < bandMidMin:
		return BandJunior
	case yoe < bandSenMin:
		return BandMid
	case yoe < bandVetMin:
		return BandSenior
	default:
		return BandVeteran
	}
}

// DateKey returns YYYYMMDD for a valid date and UnknownDateKey otherwise.
func DateKey(d model.Date) int {
	if !d.Valid {
		return UnknownDateKey
	}
	y, m, day := d.Time.Date()
	return y*dateKeyYear + int(m)*dateKeyMonth + day
}

// Classifier computes {hired, experience_band, date_key} for records.
type Classifier struct {
	strictDates bool
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify derives the business attributes of rec.
func (c *Classifier) Classify(rec model.CandidateRecord) (model.Classified, error) {
	if c.strictDates && !rec.ApplicationDate.Valid {
		return model.Classified{}, fmt.Errorf("line %d: %w", rec.Line, ErrUnparseableDate)
	}
	return model.Classified{
		CandidateRecord: rec,
		Hired:           Hired(rec.CodeChallengeScore, rec.TechnicalInterviewScore),
		ExperienceBand:  Band(rec.YearsOfExperience),
		DateKey:         DateKey(rec.ApplicationDate),
	}, nil
}

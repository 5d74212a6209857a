package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/okian/hiredw/internal/domain/classify"
	"github.com/okian/hiredw/internal/domain/dedupe"
	"github.com/okian/hiredw/internal/domain/model"
	"github.com/okian/hiredw/pkg/logger"
	"github.com/okian/hiredw/pkg/metrics"
)

// Calendar attributes of the unknown-date member.
const (
	unknownFullDate  = "unknown"
	unknownMonthName = "Unknown"
	monthsPerQuarter = 3
)

// sqliteMaxVariables is the bound-parameter limit of the bundled SQLite.
const sqliteMaxVariables = 32766

var modelSchemas sync.Map

// LoadResult reports what one load inserted.
type LoadResult struct {
	DimensionRows map[string]int64 `yaml:"dimension_rows_inserted" json:"dimension_rows_inserted"`
	Facts         int64            `yaml:"facts_inserted" json:"facts_inserted"`
}

// Loader writes classified records into the star schema.
type Loader struct {
	db        *gorm.DB
	batchSize int
	log       logger.Logger
}

// NewLoader creates a Loader on w.
func NewLoader(w *Warehouse, opts ...LoaderOption) *Loader {
	l := &Loader{
		db:        w.DB(),
		batchSize: defaultBatchSize,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load applies schemaDDL, upserts every dimension, resolves surrogate keys
// and appends one fact per record, all in one transaction. Any error rolls
// the whole batch back.
func (l *Loader) Load(ctx context.Context, schemaDDL string, records []model.Classified) (LoadResult, error) {
	res := LoadResult{DimensionRows: make(map[string]int64, len(Dimensions))}
	start := time.Now()

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applySchema(tx, schemaDDL); err != nil {
			return err
		}
		if err := l.upsertDimensions(tx, records, res.DimensionRows); err != nil {
			return err
		}
		keys, err := resolveKeys(tx)
		if err != nil {
			return err
		}
		facts, err := keys.facts(records)
		if err != nil {
			return err
		}
		if len(facts) == 0 {
			return nil
		}
		batch, err := batchFor[FactHiring](tx, l.batchSize)
		if err != nil {
			return fmt.Errorf("insert facts: %w", err)
		}
		if err := tx.CreateInBatches(&facts, batch).Error; err != nil {
			return fmt.Errorf("insert facts: %w", err)
		}
		res.Facts = int64(len(facts))
		return nil
	})
	if err != nil {
		metrics.RecordLoadRollback()
		l.log.Error(ctx, "load rolled back", logger.Int("records", len(records)), logger.Error(err))
		return LoadResult{}, err
	}

	for _, dim := range Dimensions {
		metrics.RecordDimensionRows(dim, res.DimensionRows[dim])
	}
	metrics.RecordFactsInserted(int(res.Facts))
	l.log.Info(ctx, "load committed",
		logger.Int64("facts", res.Facts),
		logger.Any("dimension_rows", res.DimensionRows),
		logger.Duration("took", time.Since(start)),
	)
	return res, nil
}

func (l *Loader) upsertDimensions(tx *gorm.DB, records []model.Classified, inserted map[string]int64) error {
	var err error
	if inserted[DimensionDate], err = insertIgnore(tx, dateRows(records), l.batchSize); err != nil {
		return fmt.Errorf("upsert %s: %w", DimensionDate, err)
	}

	techs := make([]string, 0, len(records))
	seniorities := make([]string, 0, len(records))
	countries := make([]string, 0, len(records))
	for _, r := range records {
		techs = append(techs, r.Technology)
		seniorities = append(seniorities, r.Seniority)
		countries = append(countries, r.Country)
	}

	techRows := make([]DimTechnology, 0)
	for _, v := range dedupe.Distinct(techs) {
		techRows = append(techRows, DimTechnology{Technology: v})
	}
	if inserted[DimensionTechnology], err = insertIgnore(tx, techRows, l.batchSize); err != nil {
		return fmt.Errorf("upsert %s: %w", DimensionTechnology, err)
	}

	senRows := make([]DimSeniority, 0)
	for _, v := range dedupe.Distinct(seniorities) {
		senRows = append(senRows, DimSeniority{Seniority: v})
	}
	if inserted[DimensionSeniority], err = insertIgnore(tx, senRows, l.batchSize); err != nil {
		return fmt.Errorf("upsert %s: %w", DimensionSeniority, err)
	}

	countryRows := make([]DimCountry, 0)
	for _, v := range dedupe.Distinct(countries) {
		countryRows = append(countryRows, DimCountry{Country: v})
	}
	if inserted[DimensionCountry], err = insertIgnore(tx, countryRows, l.batchSize); err != nil {
		return fmt.Errorf("upsert %s: %w", DimensionCountry, err)
	}

	if inserted[DimensionCandidate], err = insertIgnore(tx, candidateRows(records), l.batchSize); err != nil {
		return fmt.Errorf("upsert %s: %w", DimensionCandidate, err)
	}
	return nil
}

// insertIgnore inserts rows, skipping any whose unique key already exists.
func insertIgnore[T any](tx *gorm.DB, rows []T, batchSize int) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	batch, err := batchFor[T](tx, batchSize)
	if err != nil {
		return 0, err
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, batch)
	return res.RowsAffected, res.Error
}

// batchFor caps batchSize so that one multi-row INSERT of T binds at most
// sqliteMaxVariables parameters.
func batchFor[T any](tx *gorm.DB, batchSize int) (int, error) {
	s, err := schema.Parse(new(T), &modelSchemas, tx.NamingStrategy)
	if err != nil {
		return 0, err
	}
	limit := max(1, sqliteMaxVariables/max(1, len(s.DBNames)))
	return min(batchSize, limit), nil
}

// dateRows returns one DimDate per distinct key, ascending.
func dateRows(records []model.Classified) []DimDate {
	byKey := make(map[int]DimDate)
	for _, r := range records {
		if _, ok := byKey[r.DateKey]; ok {
			continue
		}
		byKey[r.DateKey] = dimDate(r.DateKey, r.ApplicationDate)
	}
	out := make([]DimDate, 0, len(byKey))
	for _, d := range byKey {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateID < out[j].DateID })
	return out
}

func dimDate(key int, d model.Date) DimDate {
	if key == classify.UnknownDateKey || !d.Valid {
		return DimDate{DateID: classify.UnknownDateKey, FullDate: unknownFullDate, MonthName: unknownMonthName}
	}
	y, m, day := d.Time.Date()
	return DimDate{
		DateID:    key,
		FullDate:  d.ISO(),
		Day:       day,
		Month:     int(m),
		MonthName: m.String(),
		Quarter:   (int(m)-1)/monthsPerQuarter + 1,
		Year:      y,
	}
}

// candidateRows dedups by email; the first occurrence supplies the names.
func candidateRows(records []model.Classified) []DimCandidate {
	seen := dedupe.New(dedupe.WithCapacity(len(records)))
	out := make([]DimCandidate, 0)
	for _, r := range records {
		if r.Email == "" || seen.SeenAndRecord(r.Email) {
			continue
		}
		out = append(out, DimCandidate{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email})
	}
	return out
}

// surrogateKeys maps natural keys to surrogate ids as stored.
type surrogateKeys struct {
	candidates   map[string]int64
	technologies map[string]int64
	seniorities  map[string]int64
	countries    map[string]int64
	dates        map[int]bool
}

func resolveKeys(tx *gorm.DB) (*surrogateKeys, error) {
	k := &surrogateKeys{
		candidates:   map[string]int64{},
		technologies: map[string]int64{},
		seniorities:  map[string]int64{},
		countries:    map[string]int64{},
		dates:        map[int]bool{},
	}

	var cands []DimCandidate
	if err := tx.Select("candidate_id", "email").Find(&cands).Error; err != nil {
		return nil, fmt.Errorf("resolve %s: %w", DimensionCandidate, err)
	}
	for _, c := range cands {
		k.candidates[c.Email] = c.CandidateID
	}

	var techs []DimTechnology
	if err := tx.Find(&techs).Error; err != nil {
		return nil, fmt.Errorf("resolve %s: %w", DimensionTechnology, err)
	}
	for _, t := range techs {
		k.technologies[t.Technology] = t.TechnologyID
	}

	var sens []DimSeniority
	if err := tx.Find(&sens).Error; err != nil {
		return nil, fmt.Errorf("resolve %s: %w", DimensionSeniority, err)
	}
	for _, s := range sens {
		k.seniorities[s.Seniority] = s.SeniorityID
	}

	var countries []DimCountry
	if err := tx.Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("resolve %s: %w", DimensionCountry, err)
	}
	for _, c := range countries {
		k.countries[c.Country] = c.CountryID
	}

	var dateIDs []int
	if err := tx.Model(&DimDate{}).Pluck("date_id", &dateIDs).Error; err != nil {
		return nil, fmt.Errorf("resolve %s: %w", DimensionDate, err)
	}
	for _, id := range dateIDs {
		k.dates[id] = true
	}
	return k, nil
}

// facts builds one fact per record, failing on the first unresolved key.
func (k *surrogateKeys) facts(records []model.Classified) ([]FactHiring, error) {
	out := make([]FactHiring, 0, len(records))
	for _, r := range records {
		cand, ok := k.candidates[r.Email]
		if !ok {
			return nil, &ReferentialError{Line: r.Line, Dimension: DimensionCandidate, Key: r.Email}
		}
		tech, ok := k.technologies[r.Technology]
		if !ok {
			return nil, &ReferentialError{Line: r.Line, Dimension: DimensionTechnology, Key: r.Technology}
		}
		sen, ok := k.seniorities[r.Seniority]
		if !ok {
			return nil, &ReferentialError{Line: r.Line, Dimension: DimensionSeniority, Key: r.Seniority}
		}
		country, ok := k.countries[r.Country]
		if !ok {
			return nil, &ReferentialError{Line: r.Line, Dimension: DimensionCountry, Key: r.Country}
		}
		if !k.dates[r.DateKey] {
			return nil, &ReferentialError{Line: r.Line, Dimension: DimensionDate, Key: fmt.Sprint(r.DateKey)}
		}

		hired := 0
		if r.Hired {
			hired = 1
		}
		out = append(out, FactHiring{
			CandidateID:             cand,
			TechnologyID:            tech,
			SeniorityID:             sen,
			CountryID:               country,
			DateID:                  r.DateKey,
			YOE:                     r.YearsOfExperience,
			CodeChallengeScore:      r.CodeChallengeScore.Ptr(),
			TechnicalInterviewScore: r.TechnicalInterviewScore.Ptr(),
			Hired:                   hired,
		})
	}
	return out, nil
}

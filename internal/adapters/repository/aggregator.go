package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/okian/hiredw/internal/domain/types"
	"github.com/okian/hiredw/pkg/logger"
	"github.com/okian/hiredw/pkg/metrics"
)

// KPI identifiers. Each doubles as an export file and sheet name, so ids
// stay within the 31-character sheet limit.
const (
	KPIHiresByTechnology    = "hires_by_technology"
	KPIHiresByYear          = "hires_by_year"
	KPIHiresBySeniority     = "hires_by_seniority"
	KPIHiresByCountryByYear = "hires_by_country_by_year"
	KPIAvgScoresByHired     = "avg_scores_by_hired"
	KPIHiresByBand          = "hires_by_experience_band"
)

// DefaultWatchCountries is the watch-list for hires_by_country_by_year.
var DefaultWatchCountries = []string{"United States", "Brazil", "Colombia", "Ecuador"}

type kpiQuery struct {
	id   string
	sql  string
	args func(a *Aggregator) []any
}

var kpiQueries = []kpiQuery{
	{id: KPIHiresByTechnology, sql: `
SELECT t.technology AS technology,
       SUM(f.hired) AS hires,
       COUNT(*) AS total_candidates,
       ROUND(100.0 * SUM(f.hired) / COUNT(*), 2) AS hire_rate_pct
FROM FactHiring f
JOIN DimTechnology t ON t.technology_id = f.technology_id
GROUP BY t.technology
ORDER BY hires DESC, t.technology ASC`},
	{id: KPIHiresByYear, sql: `
SELECT d.year AS year,
       SUM(f.hired) AS hires,
       COUNT(*) AS total_candidates,
       ROUND(100.0 * SUM(f.hired) / COUNT(*), 2) AS hire_rate_pct
FROM FactHiring f
JOIN DimDate d ON d.date_id = f.date_id
GROUP BY d.year
ORDER BY d.year ASC`},
	{id: KPIHiresBySeniority, sql: `
SELECT s.seniority AS seniority,
       SUM(f.hired) AS hires,
       COUNT(*) AS total_candidates,
       ROUND(100.0 * SUM(f.hired) / COUNT(*), 2) AS hire_rate_pct
FROM FactHiring f
JOIN DimSeniority s ON s.seniority_id = f.seniority_id
GROUP BY s.seniority
ORDER BY hires DESC, s.seniority ASC`},
	{id: KPIHiresByCountryByYear, sql: `
SELECT d.year AS year,
       c.country AS country,
       SUM(f.hired) AS hires,
       COUNT(*) AS total_candidates,
       ROUND(100.0 * SUM(f.hired) / COUNT(*), 2) AS hire_rate_pct
FROM FactHiring f
JOIN DimDate d ON d.date_id = f.date_id
JOIN DimCountry c ON c.country_id = f.country_id
WHERE c.country IN ?
GROUP BY d.year, c.country
ORDER BY d.year ASC, hires DESC, c.country ASC`,
		args: func(a *Aggregator) []any { return []any{a.watchCountries} }},
	{id: KPIAvgScoresByHired, sql: `
SELECT hired,
       ROUND(AVG(code_challenge_score), 2) AS avg_code_challenge,
       ROUND(AVG(technical_interview_score), 2) AS avg_tech_interview
FROM FactHiring
GROUP BY hired
ORDER BY hired DESC`},
	{id: KPIHiresByBand, sql: `
SELECT CASE
         WHEN yoe < 3 THEN '0-2'
         WHEN yoe <= 5 THEN '3-5'
         WHEN yoe <= 10 THEN '6-10'
         ELSE '11+'
       END AS experience_band,
       SUM(hired) AS hires,
       COUNT(*) AS total_candidates,
       ROUND(100.0 * SUM(hired) / COUNT(*), 2) AS hire_rate_pct
FROM FactHiring
GROUP BY experience_band
ORDER BY CASE experience_band
           WHEN '0-2' THEN 1
           WHEN '3-5' THEN 2
           WHEN '6-10' THEN 3
           ELSE 4
         END`},
}

// KPIs returns every KPI id in report order.
func KPIs() []string {
	ids := make([]string, len(kpiQueries))
	for i, q := range kpiQueries {
		ids[i] = q.id
	}
	return ids
}

// Aggregator runs the read-only KPI queries.
type Aggregator struct {
	db             *gorm.DB
	watchCountries []string
	log            logger.Logger
}

// NewAggregator creates an Aggregator on w.
func NewAggregator(w *Warehouse, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		db:             w.DB(),
		watchCountries: DefaultWatchCountries,
		log:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// KPIs returns every KPI id in report order.
func (a *Aggregator) KPIs() []string {
	return KPIs()
}

// Run executes every KPI in report order.
func (a *Aggregator) Run(ctx context.Context) ([]types.Table, error) {
	out := make([]types.Table, 0, len(kpiQueries))
	for _, q := range kpiQueries {
		t, err := a.run(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Query executes the KPI named id.
func (a *Aggregator) Query(ctx context.Context, id string) (types.Table, error) {
	for _, q := range kpiQueries {
		if q.id == id {
			return a.run(ctx, q)
		}
	}
	return types.Table{}, fmt.Errorf("%w: %s", ErrUnknownKPI, id)
}

func (a *Aggregator) run(ctx context.Context, q kpiQuery) (types.Table, error) {
	start := time.Now()
	var args []any
	if q.args != nil {
		args = q.args(a)
	}

	rows, err := a.db.WithContext(ctx).Raw(q.sql, args...).Rows()
	if err != nil {
		return types.Table{}, fmt.Errorf("kpi %s: %w", q.id, err)
	}
	defer rows.Close()

	t, err := scanTable(q.id, rows)
	if err != nil {
		return types.Table{}, fmt.Errorf("kpi %s: %w", q.id, err)
	}

	took := time.Since(start)
	metrics.RecordKPIQuery(q.id, float64(took.Microseconds())/1000, t.Len())
	a.log.Debug(ctx, "kpi computed", logger.String("kpi", q.id), logger.Int("rows", t.Len()), logger.Duration("took", took))
	return t, nil
}

func scanTable(name string, rows *sql.Rows) (types.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return types.Table{}, err
	}
	t := types.Table{Name: name, Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return types.Table{}, err
		}
		for i, c := range cells {
			if b, ok := c.([]byte); ok {
				cells[i] = string(b)
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, rows.Err()
}

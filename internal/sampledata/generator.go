package sampledata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/okian/hiredw/internal/domain/model"
)

// Generation defaults.
const (
	defaultSeed      = 42
	defaultMessyRate = 0.1
	defaultFromYear  = 2018
	defaultToYear    = 2022
	maxYOE           = 30
	maxScore         = 10
	duplicateWindow  = 50
)

var (
	firstNames   = []string{"Ada", "Alan", "Grace", "Linus", "Margaret", "Ken", "Barbara", "Dennis", "Frances", "Edsger"}
	lastNames    = []string{"Lovelace", "Turing", "Hopper", "Torvalds", "Hamilton", "Thompson", "Liskov", "Ritchie", "Allen", "Dijkstra"}
	technologies = []string{"Go", "Python", "Java", "JavaScript", "DevOps", "Data Engineering", "QA Automation", "Mobile - iOS"}
	seniorities  = []string{"Intern", "Junior", "Mid-Level", "Senior", "Lead", "Architect"}
	countries    = []string{"United States", "Brazil", "Colombia", "Ecuador", "Peru", "Mexico", "Canada", "Germany"}

	// Messy spellings that the normalizer folds back to a canonical country.
	countrySpellings = map[string][]string{
		"United States": {"USA", "us", "U.S.A.", "united states of america"},
		"Brazil":        {"brasil", "BRAZIL"},
		"Colombia":      {"colombia", " Colombia "},
	}

	badDates  = []string{"31/31/2021", "yesterday", "2021-02-30", ""}
	badScores = []string{"", "n/a", "NaN", "ten"}
)

// Defect kinds injected into messy rows.
const (
	messCountry = iota
	messDate
	messScore
	messYOE
	messDuplicate
	messKinds
)

// Generator produces candidate rows with the input file's header.
type Generator struct {
	seed      uint64
	messyRate float64
	fromYear  int
	toYear    int
	delimiter rune
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:      defaultSeed,
		messyRate: defaultMessyRate,
		fromYear:  defaultFromYear,
		toYear:    defaultToYear,
		delimiter: ';',
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Header returns the column names in file order.
func (g *Generator) Header() []string {
	return []string{
		model.ColFirstName, model.ColLastName, model.ColEmail, model.ColCountry,
		model.ColApplicationDate, model.ColYOE, model.ColCodeChallenge, model.ColTechInterview,
		model.ColSeniority, model.ColTechnology,
	}
}

// Rows generates n records in header order.
func (g *Generator) Rows(n int) [][]string {
	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	days := int(time.Date(g.toYear+1, time.January, 1, 0, 0, 0, 0, time.UTC).
		Sub(time.Date(g.fromYear, time.January, 1, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	start := time.Date(g.fromYear, time.January, 1, 0, 0, 0, 0, time.UTC)

	out := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		first := pick(rng, firstNames)
		last := pick(rng, lastNames)
		row := []string{
			first,
			last,
			fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			pick(rng, countries),
			start.AddDate(0, 0, rng.IntN(days)).Format(time.DateOnly),
			strconv.Itoa(rng.IntN(maxYOE + 1)),
			strconv.Itoa(rng.IntN(maxScore + 1)),
			strconv.Itoa(rng.IntN(maxScore + 1)),
			pick(rng, seniorities),
			pick(rng, technologies),
		}
		if rng.Float64() < g.messyRate {
			g.mess(rng, row, out)
		}
		out = append(out, row)
	}
	return out
}

func (g *Generator) mess(rng *rand.Rand, row []string, prev [][]string) {
	switch rng.IntN(messKinds) {
	case messCountry:
		if alts, ok := countrySpellings[row[3]]; ok {
			row[3] = pick(rng, alts)
		} else {
			row[3] = strings.ToLower(row[3])
		}
	case messDate:
		row[4] = pick(rng, badDates)
	case messScore:
		row[6+rng.IntN(2)] = pick(rng, badScores)
	case messYOE:
		row[5] = pick(rng, []string{"3.5", "-1", "", "many"})
	case messDuplicate:
		if len(prev) > 0 {
			from := max(0, len(prev)-duplicateWindow)
			row[2] = prev[from+rng.IntN(len(prev)-from)][2]
		}
	}
}

// WriteCSV writes the header and n rows to w.
func (g *Generator) WriteCSV(ctx context.Context, w io.Writer, n int) error {
	cw := csv.NewWriter(w)
	cw.Comma = g.delimiter
	if err := cw.Write(g.Header()); err != nil {
		return err
	}
	for i, row := range g.Rows(n) {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes n rows to path, creating the directory.
func (g *Generator) WriteFile(ctx context.Context, path string, n int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := g.WriteCSV(ctx, f, n); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func pick[T any](rng *rand.Rand, xs []T) T {
	return xs[rng.IntN(len(xs))]
}

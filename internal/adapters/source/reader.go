package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/okian/hiredw/internal/domain/model"
	"github.com/okian/hiredw/internal/domain/normalize"
)

const (
	defaultDelimiter = ';'
	utf8BOM          = "\ufeff"
	ctxCheckEvery    = 1024
)

// Reader reads a delimited candidate file into raw rows keyed by folded
// header name.
type Reader struct {
	delimiter rune
	required  []string
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		delimiter: defaultDelimiter,
		required:  model.RequiredColumns,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadFile opens path and reads every data row.
func (r *Reader) ReadFile(ctx context.Context, path string) ([]model.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrInputNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return r.Read(ctx, f)
}

// Read parses src. The header is folded with normalize.FoldHeader and must
// contain every required column. Row lines are 1-based source lines.
func (r *Reader) Read(ctx context.Context, src io.Reader) ([]model.RawRow, error) {
	cr := csv.NewReader(src)
	cr.Comma = r.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty input: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w: %v", ErrMalformedInput, err)
	}

	columns := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		columns[i] = normalize.FoldHeader(h)
		present[columns[i]] = true
	}
	var missing []string
	for _, col := range r.required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	var rows []model.RawRow
	for {
		if len(rows)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		if blankRecord(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		fields := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				fields[col] = rec[i]
			} else {
				fields[col] = ""
			}
		}
		rows = append(rows, model.RawRow{Line: line, Fields: fields})
	}
	return rows, nil
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

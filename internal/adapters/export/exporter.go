package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/hiredw/internal/domain/types"
	"github.com/okian/hiredw/pkg/logger"
)

// Exporter writes one CSV per KPI plus a workbook with one sheet per KPI.
type Exporter struct {
	outDir   string
	workbook bool
	log      logger.Logger
}

// New creates an Exporter writing under outDir.
func New(outDir string, opts ...Option) *Exporter {
	e := &Exporter{outDir: outDir, workbook: true, log: logger.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes every table and returns the files written.
func (e *Exporter) Export(ctx context.Context, tables []types.Table) ([]string, error) {
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputDir, err)
	}

	files := make([]string, 0, len(tables)+1)
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		path := filepath.Join(e.outDir, t.Name+".csv")
		if err := writeCSVFile(path, t); err != nil {
			return files, err
		}
		files = append(files, path)
	}

	if e.workbook && len(tables) > 0 {
		path := filepath.Join(e.outDir, WorkbookName)
		if err := WriteWorkbook(path, tables); err != nil {
			return files, err
		}
		files = append(files, path)
	}

	e.log.Info(ctx, "kpis exported", logger.String("out_dir", e.outDir), logger.Int("files", len(files)))
	return files, nil
}

func writeCSVFile(path string, t types.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteExport, path, err)
	}
	if err := WriteCSV(f, t); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %v", ErrWriteExport, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteExport, path, err)
	}
	return nil
}

// WriteCSV writes t with a header row, comma-delimited.
func WriteCSV(w io.Writer, t types.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return cw.Error()
}

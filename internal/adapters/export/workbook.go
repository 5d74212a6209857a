package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/okian/hiredw/internal/domain/types"
)

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

const defaultSheet = "Sheet1"

// WriteWorkbook writes one sheet per table, named after the table.
func WriteWorkbook(path string, tables []types.Table) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: %v", ErrWriteExport, cerr)
		}
	}()

	for i, t := range tables {
		name := SheetName(t.Name)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("%w: sheet %s: %v", ErrWriteExport, name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("%w: sheet %s: %v", ErrWriteExport, name, err)
		}
		if err := writeSheet(f, name, t); err != nil {
			return fmt.Errorf("%w: sheet %s: %v", ErrWriteExport, name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteExport, path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t types.Table) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

// SheetName truncates name to the Excel sheet-name limit.
func SheetName(name string) string {
	r := []rune(name)
	if len(r) > maxSheetName {
		return string(r[:maxSheetName])
	}
	return name
}

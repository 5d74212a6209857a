package export_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/okian/hiredw/internal/adapters/export"
	"github.com/okian/hiredw/internal/domain/model"
	"github.com/okian/hiredw/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func tables() []types.Table {
	return []types.Table{
		{
			Name:    "hires_by_technology",
			Columns: []string{"technology", "hires", "total_candidates", "hire_rate_pct"},
			Rows:    [][]any{{"Go", int64(1), int64(2), 50.0}, {"Rust, Embedded", int64(0), int64(1), 0.0}},
		},
		{
			Name:    "avg_scores_by_hired",
			Columns: []string{"hired", "avg_code_challenge", "avg_tech_interview"},
			Rows:    [][]any{{int64(1), 8.5, nil}},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	Convey("Given a KPI table", t, func() {
		var buf bytes.Buffer
		So(export.WriteCSV(&buf, tables()[0]), ShouldBeNil)

		Convey("Then the header comes first and fields are quoted as needed", func() {
			So(buf.String(), ShouldEqual, "technology,hires,total_candidates,hire_rate_pct\n"+
				"Go,1,2,50\n"+
				"\"Rust, Embedded\",0,1,0\n")
		})
	})
}

func TestExporter_Export(t *testing.T) {
	Convey("Given an exporter on a fresh directory", t, func() {
		dir := filepath.Join(t.TempDir(), "kpi", "out")
		e := export.New(dir)

		Convey("When tables are exported", func() {
			files, err := e.Export(context.Background(), tables())
			So(err, ShouldBeNil)

			Convey("Then one CSV per KPI and the workbook are written", func() {
				So(files, ShouldResemble, []string{
					filepath.Join(dir, "hires_by_technology.csv"),
					filepath.Join(dir, "avg_scores_by_hired.csv"),
					filepath.Join(dir, export.WorkbookName),
				})
				b, err := os.ReadFile(files[1])
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, "hired,avg_code_challenge,avg_tech_interview\n1,8.5,\n")
			})

			Convey("Then the workbook has one sheet per KPI", func() {
				f, err := excelize.OpenFile(filepath.Join(dir, export.WorkbookName))
				So(err, ShouldBeNil)
				defer f.Close()
				So(f.GetSheetList(), ShouldResemble, []string{"hires_by_technology", "avg_scores_by_hired"})
				rows, err := f.GetRows("hires_by_technology")
				So(err, ShouldBeNil)
				So(rows[0], ShouldResemble, []string{"technology", "hires", "total_candidates", "hire_rate_pct"})
				So(rows[1][0], ShouldEqual, "Go")
				So(rows[1][3], ShouldEqual, "50")
			})
		})

		Convey("When the workbook is disabled", func() {
			files, err := export.New(dir, export.WithoutWorkbook()).Export(context.Background(), tables())
			So(err, ShouldBeNil)
			So(len(files), ShouldEqual, 2)
		})

		Convey("When the output path is a file", func() {
			blocker := filepath.Join(t.TempDir(), "file")
			So(os.WriteFile(blocker, []byte("x"), 0o600), ShouldBeNil)
			_, err := export.New(filepath.Join(blocker, "out")).Export(context.Background(), tables())
			So(errors.Is(err, export.ErrOutputDir), ShouldBeTrue)
		})
	})
}

func TestSheetName(t *testing.T) {
	Convey("Given long names", t, func() {
		So(export.SheetName("hires_by_country_by_year"), ShouldEqual, "hires_by_country_by_year")
		So(len(export.SheetName(strings.Repeat("k", 40))), ShouldEqual, 31)
	})
}

func TestRunSummary(t *testing.T) {
	Convey("Given a run summary", t, func() {
		path := filepath.Join(t.TempDir(), "out", export.SummaryName)
		s := export.RunSummary{
			RunID:         "run-1",
			Command:       "etl",
			Warehouse:     "dw/dw_hiring.db",
			RowsRead:      3,
			RecordsLoaded: 3,
			Hired:         1,
			Bands:         map[string]int{"0-2": 1, "3-5": 2},
			FactsInserted: 3,
			Stages:        []export.StageTiming{{Stage: "extract", DurationMS: 1.5}},
			Defects:       []model.Defect{{Line: 4, Field: "yoe", Raw: "many", Reason: "unparseable"}},
			Success:       true,
		}

		Convey("When it is written and read back", func() {
			So(export.WriteSummary(path, s), ShouldBeNil)
			got, err := export.ReadSummary(path)

			Convey("Then it round-trips", func() {
				So(err, ShouldBeNil)
				So(got, ShouldResemble, s)
			})

			Convey("Then the document uses snake_case keys", func() {
				b, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, "run_id: run-1")
				So(string(b), ShouldContainSubstring, "experience_bands:")
				So(string(b), ShouldContainSubstring, "raw: many")
			})
		})
	})
}

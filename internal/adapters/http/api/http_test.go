package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/okian/hiredw/internal/adapters/http/api"
	"github.com/okian/hiredw/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeKPIs struct {
	tables map[string]types.Table
	err    error
}

func (f *fakeKPIs) KPIs() []string {
	return []string{"hires_by_technology", "hires_by_year"}
}

func (f *fakeKPIs) Query(_ context.Context, id string) (types.Table, error) {
	if f.err != nil {
		return types.Table{}, f.err
	}
	return f.tables[id], nil
}

type fakeHealth struct{ err error }

func (f fakeHealth) Ping(context.Context) error { return f.err }

func newRouter(kpis api.KPISource, health api.HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return api.NewServer(kpis, health).NewRouter(context.Background())
}

func do(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return w
}

func techTable() types.Table {
	return types.Table{
		Name:    "hires_by_technology",
		Columns: []string{"technology", "hires", "total_candidates", "hire_rate_pct"},
		Rows:    [][]any{{"Go", int64(1), int64(2), 50.0}},
	}
}

func TestHealth(t *testing.T) {
	Convey("Given the API router", t, func() {
		Convey("When the warehouse answers", func() {
			w := do(newRouter(&fakeKPIs{}, fakeHealth{}), "/healthz")

			Convey("Then the status is ok", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
			})
		})

		Convey("When the warehouse is unreachable", func() {
			w := do(newRouter(&fakeKPIs{}, fakeHealth{err: errors.New("disk gone")}), "/healthz")

			Convey("Then the service is unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(w.Body.String(), ShouldContainSubstring, "disk gone")
			})
		})
	})
}

func TestKPIRoutes(t *testing.T) {
	Convey("Given a router over a KPI source", t, func() {
		src := &fakeKPIs{tables: map[string]types.Table{"hires_by_technology": techTable()}}
		r := newRouter(src, fakeHealth{})

		Convey("When KPIs are listed", func() {
			w := do(r, "/kpis")
			var body struct {
				KPIs []string `json:"kpis"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.KPIs, ShouldResemble, []string{"hires_by_technology", "hires_by_year"})
		})

		Convey("When a KPI is requested as JSON", func() {
			w := do(r, "/kpis/hires_by_technology")

			Convey("Then the table is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var tbl types.Table
				So(json.Unmarshal(w.Body.Bytes(), &tbl), ShouldBeNil)
				So(tbl.Name, ShouldEqual, "hires_by_technology")
				So(tbl.Columns[3], ShouldEqual, "hire_rate_pct")
				So(tbl.Rows[0][0], ShouldEqual, "Go")
				So(tbl.Rows[0][3], ShouldEqual, 50.0)
			})
		})

		Convey("When a KPI is requested as CSV", func() {
			w := do(r, "/kpis/hires_by_technology?format=csv")

			Convey("Then the body is CSV with a header", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/csv; charset=utf-8")
				So(w.Body.String(), ShouldEqual, "technology,hires,total_candidates,hire_rate_pct\nGo,1,2,50\n")
			})
		})

		Convey("When a KPI is requested as objects", func() {
			w := do(r, "/kpis/hires_by_technology?format=objects")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"technology":"Go"`)
		})

		Convey("When the KPI is unknown", func() {
			w := do(r, "/kpis/hires_by_mood")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, `"code":"not_found"`)
		})

		Convey("When the format is unsupported", func() {
			w := do(r, "/kpis/hires_by_technology?format=xml")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the query fails", func() {
			src.err = errors.New("no such table: FactHiring")
			w := do(r, "/kpis/hires_by_year")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "no such table")
		})

		Convey("When metrics are scraped", func() {
			do(r, "/kpis")
			w := do(r, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "hiredw_pipeline_http_requests_total")
		})
	})
}

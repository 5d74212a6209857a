package api

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/okian/hiredw/internal/adapters/export"
)

// Response formats for GET /kpis/:id.
const (
	formatJSON    = "json"
	formatCSV     = "csv"
	formatObjects = "objects"
)

// KPIHandler serves KPI tables.
type KPIHandler struct {
	source KPISource
}

// NewKPIHandler creates a KPI handler.
func NewKPIHandler(source KPISource) *KPIHandler {
	return &KPIHandler{source: source}
}

type kpiListResponse struct {
	KPIs []string `json:"kpis"`
}

// HandleList handles GET /kpis.
func (h *KPIHandler) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, kpiListResponse{KPIs: h.source.KPIs()})
}

// HandleGet handles GET /kpis/:id?format=json|csv|objects.
func (h *KPIHandler) HandleGet(c *gin.Context) {
	id := c.Param("id")
	if !slices.Contains(h.source.KPIs(), id) {
		writeError(c, http.StatusNotFound, "not_found", fmt.Errorf("unknown kpi %q", id))
		return
	}

	format := c.DefaultQuery("format", formatJSON)
	switch format {
	case formatJSON, formatCSV, formatObjects:
	default:
		writeError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: format must be json, csv or objects", ErrBadRequest))
		return
	}

	table, err := h.source.Query(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "query_failed", err)
		return
	}

	switch format {
	case formatCSV:
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".csv"))
		c.Status(http.StatusOK)
		if err := export.WriteCSV(c.Writer, table); err != nil {
			_ = c.Error(err)
		}
	case formatObjects:
		c.JSON(http.StatusOK, gin.H{"name": table.Name, "rows": table.Maps()})
	default:
		c.JSON(http.StatusOK, table)
	}
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/hiredw/pkg/metrics"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// HandleHealth handles GET /healthz. It pings the warehouse.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	if h.checker != nil {
		if err := h.checker.Ping(c.Request.Context()); err != nil {
			writeError(c, http.StatusServiceUnavailable, "unavailable", fmt.Errorf("%w: %v", ErrUnavailable, err))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

var metricsHandler = promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})

// HandleMetrics serves the Prometheus registry.
func HandleMetrics(c *gin.Context) {
	metricsHandler.ServeHTTP(c.Writer, c.Request)
}

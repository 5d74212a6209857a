// Package api serves the read-only KPI API over the warehouse.
package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/okian/hiredw/internal/domain/types"
	"github.com/okian/hiredw/pkg/logger"
)

// KPISource runs KPI queries.
type KPISource interface {
	KPIs() []string
	Query(ctx context.Context, id string) (types.Table, error)
}

// HealthChecker reports whether the warehouse is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server wires HTTP routes for the KPI API.
type Server struct {
	healthHandler *HealthHandler
	kpiHandler    *KPIHandler
	log           logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the server's request logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(kpis KPISource, health HealthChecker, opts ...Option) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(health),
		kpiHandler:    NewKPIHandler(kpis),
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all API routes to r.
func (s *Server) Register(_ context.Context, r gin.IRouter) {
	r.GET("/healthz", s.healthHandler.HandleHealth)
	r.GET("/metrics", HandleMetrics)
	r.GET("/kpis", s.kpiHandler.HandleList)
	r.GET("/kpis/:id", s.kpiHandler.HandleGet)
}

// NewRouter returns an engine with recovery, request metrics and logging
// middleware and the API routes registered.
func (s *Server) NewRouter(ctx context.Context) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), MetricsMiddleware(), LoggingMiddleware(s.log))
	s.Register(ctx, r)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, status int, code string, err error) {
	msg := code
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, errorResponse{Code: code, Message: msg})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insightloop/insightloop/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg           *config.Config
	reportHandler *Report
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, reportHandler *Report) *Router {
	return &Router{
		cfg:           cfg,
		reportHandler: reportHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupReportRoutes(v1)
}

// setupReportRoutes configures report routes
func (rt *Router) setupReportRoutes(g *echo.Group) {
	reportGroup := g.Group("/reports")

	reportGroup.POST("", rt.reportHandler.Generate)
	reportGroup.GET("", rt.reportHandler.List)
	reportGroup.GET("/:id", rt.reportHandler.Get)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}

package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware in the order request id, logging, recovery, CORS.
func NewRouter(h *Handler, logger *slog.Logger, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger(logger))
	r.Use(Recovery())
	r.Use(CORS(corsOrigins))

	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	statements := v1.Group("/statements")
	statements.POST("/parse", h.Parse)
	statements.POST("/export/xlsx", h.ExportXLSX)
	statements.POST("/export/cdex", h.ExportCDEX)

	return r
}

package api

import (
	"alcyxob/fitness-notes/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DiagnosticsHandler serves the root banner and the store status report.
type DiagnosticsHandler struct {
	diagnosticsService service.DiagnosticsService
}

func NewDiagnosticsHandler(diagnosticsService service.DiagnosticsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{diagnosticsService: diagnosticsService}
}

func (h *DiagnosticsHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Fitness Notes API is running"})
}

// Status always answers 200; failures show up inside the body.
func (h *DiagnosticsHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.diagnosticsService.Status(c.Request.Context()))
}

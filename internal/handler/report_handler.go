package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/securecheck/internal/service"
	"github.com/jengzang/securecheck/pkg/response"
)

// ReportHandler handles HTTP requests for canned reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ListReports handles GET /api/v1/reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	list := h.reportService.ListReports()
	response.Success(c, gin.H{
		"data":  list,
		"count": len(list),
	})
}

// RunReport handles GET /api/v1/reports/run?name=...
func (h *ReportHandler) RunReport(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		response.BadRequest(c, "name parameter is required")
		return
	}

	result, err := h.reportService.RunReport(c.Request.Context(), name)
	if err != nil {
		fail(c, "Failed to run report", err)
		return
	}

	response.Success(c, result)
}

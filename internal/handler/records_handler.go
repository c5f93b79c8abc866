package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/securecheck/internal/models"
	"github.com/jengzang/securecheck/internal/service"
	"github.com/jengzang/securecheck/pkg/response"
)

// RecordsHandler handles HTTP requests for stop records and filters
type RecordsHandler struct {
	dashboardService *service.DashboardService
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(dashboardService *service.DashboardService) *RecordsHandler {
	return &RecordsHandler{
		dashboardService: dashboardService,
	}
}

// GetRecords handles GET /api/v1/records
func (h *RecordsHandler) GetRecords(c *gin.Context) {
	records, err := h.dashboardService.GetRecords(c.Request.Context())
	if err != nil {
		fail(c, "Failed to load records", err)
		return
	}

	response.Success(c, models.StopRecordsResponse{Data: records, Total: len(records)})
}

// GetFilteredRecords handles GET /api/v1/records/filtered
func (h *RecordsHandler) GetFilteredRecords(c *gin.Context) {
	var sel models.FilterSelection
	if err := c.ShouldBindQuery(&sel); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	records, err := h.dashboardService.GetFilteredRecords(c.Request.Context(), sel)
	if err != nil {
		fail(c, "Failed to filter records", err)
		return
	}

	response.Success(c, models.StopRecordsResponse{Data: records, Total: len(records)})
}

// GetFilterOptions handles GET /api/v1/filters
func (h *RecordsHandler) GetFilterOptions(c *gin.Context) {
	opts, err := h.dashboardService.GetFilterOptions(c.Request.Context())
	if err != nil {
		fail(c, "Failed to get filter options", err)
		return
	}

	response.Success(c, opts)
}

// InvalidateCache handles POST /api/v1/cache/invalidate
func (h *RecordsHandler) InvalidateCache(c *gin.Context) {
	h.dashboardService.Refresh()
	response.Success(c, gin.H{"invalidated": true})
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/securecheck/internal/models"
	"github.com/jengzang/securecheck/internal/service"
	"github.com/jengzang/securecheck/pkg/response"
)

// InsightsHandler handles HTTP requests for chart aggregates
type InsightsHandler struct {
	dashboardService *service.DashboardService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(dashboardService *service.DashboardService) *InsightsHandler {
	return &InsightsHandler{
		dashboardService: dashboardService,
	}
}

// GetInsights handles GET /api/v1/insights
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	var sel models.FilterSelection
	if err := c.ShouldBindQuery(&sel); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	insights, err := h.dashboardService.GetInsights(c.Request.Context(), sel)
	if err != nil {
		fail(c, "Failed to compute insights", err)
		return
	}

	response.Success(c, insights)
}

// GetValueCounts handles GET /api/v1/insights/value-counts
func (h *InsightsHandler) GetValueCounts(c *gin.Context) {
	var sel models.FilterSelection
	var filter models.ValueCountsFilter
	if err := c.ShouldBindQuery(&sel); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: field is required")
		return
	}
	if filter.Top < 0 {
		response.BadRequest(c, "top must not be negative")
		return
	}

	counts, err := h.dashboardService.GetValueCounts(c.Request.Context(), sel, models.Field(filter.Field), filter.Top)
	if err != nil {
		fail(c, "Failed to count values", err)
		return
	}

	response.Success(c, gin.H{
		"data":  counts,
		"count": len(counts),
	})
}

// GetGroupMean handles GET /api/v1/insights/group-mean
func (h *InsightsHandler) GetGroupMean(c *gin.Context) {
	var sel models.FilterSelection
	var filter models.GroupMeanFilter
	if err := c.ShouldBindQuery(&sel); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: group is required")
		return
	}
	if filter.Flag == "" {
		filter.Flag = string(models.FieldIsArrested)
	}

	rates, err := h.dashboardService.GetGroupMean(c.Request.Context(), sel,
		models.Field(filter.Group), models.Field(filter.Flag))
	if err != nil {
		fail(c, "Failed to compute group means", err)
		return
	}

	response.Success(c, gin.H{
		"data":  rates,
		"count": len(rates),
	})
}

// GetArrestsByHour handles GET /api/v1/insights/arrests-by-hour
func (h *InsightsHandler) GetArrestsByHour(c *gin.Context) {
	var sel models.FilterSelection
	if err := c.ShouldBindQuery(&sel); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	hours, err := h.dashboardService.GetArrestsByHour(c.Request.Context(), sel)
	if err != nil {
		fail(c, "Failed to count arrests by hour", err)
		return
	}

	response.Success(c, hours)
}

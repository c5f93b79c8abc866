package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/securecheck/internal/models"
	"github.com/jengzang/securecheck/internal/service"
	"github.com/jengzang/securecheck/pkg/response"
)

// PredictionHandler handles the manual stop form
type PredictionHandler struct {
	predictionService *service.PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionService *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}

// Predict handles POST /api/v1/predictions
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	prediction, err := h.predictionService.Predict(req)
	if err != nil {
		fail(c, "Invalid stop details", err)
		return
	}

	response.Success(c, prediction)
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/securecheck/internal/models"
	"github.com/jengzang/securecheck/internal/reports"
	"github.com/jengzang/securecheck/internal/service"
	"github.com/jengzang/securecheck/pkg/response"
)

// fail maps the error taxonomy onto HTTP statuses
func fail(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, models.ErrField), errors.Is(err, service.ErrInvalidPrediction):
		response.BadRequest(c, message, err)
	case errors.Is(err, reports.ErrUnknownReport):
		response.NotFound(c, message, err)
	case errors.Is(err, models.ErrConnection):
		response.ServiceUnavailable(c, message, err)
	default:
		response.InternalError(c, message, err)
	}
}

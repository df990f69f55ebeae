package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sowmiya2022/clinical-bert-api/internal/usecase"
)

// ErrorResponse represents a mapped HTTP error
type ErrorResponse struct {
	StatusCode int
	Detail     string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// Validation detail is client-caused and safe to echo; everything else
// gets a generic message.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Detail:     err.Error(),
		}
	case errors.Is(err, usecase.ErrNotReady):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Detail:     "Model is not yet loaded. Service is not ready.",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Detail:     "Internal server error. Please try again later.",
		}
	}
}

// HandleUsecaseError maps the error to an HTTP status and sends the
// JSON error body.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	respondError(c, errResp.StatusCode, errResp.Detail)
}

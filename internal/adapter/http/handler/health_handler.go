package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sowmiya2022/clinical-bert-api/internal/usecase"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	assertionUC usecase.AssertionUsecase
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(assertionUC usecase.AssertionUsecase) *HealthHandler {
	return &HealthHandler{assertionUC: assertionUC}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status      string `json:"status"`
	ModelName   string `json:"model_name"`
	ModelLoaded bool   `json:"model_loaded"`
	Device      string `json:"device"`
}

// Health handles GET /health. Reports 200 once the model is loaded and
// 503 until then; a failed startup load keeps this at 503 for the
// process lifetime.
func (h *HealthHandler) Health(c *gin.Context) {
	state := h.assertionUC.State()
	if !state.Loaded {
		respondError(c, http.StatusServiceUnavailable, "Model is not yet loaded. Service is not ready.")
		return
	}

	c.JSON(http.StatusOK, HealthStatus{
		Status:      "ok",
		ModelName:   state.ModelName,
		ModelLoaded: state.Loaded,
		Device:      state.Device,
	})
}

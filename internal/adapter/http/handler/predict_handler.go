package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sowmiya2022/clinical-bert-api/internal/usecase"
)

// PredictRequest is the body for POST /predict
type PredictRequest struct {
	Sentence string `json:"sentence" binding:"required"`
}

// BatchPredictRequest is the body for POST /predict/batch
type BatchPredictRequest struct {
	Sentences []string `json:"sentences" binding:"required"`
}

// PredictHandler handles prediction HTTP requests
type PredictHandler struct {
	assertionUC usecase.AssertionUsecase
	logger      *zap.Logger
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(assertionUC usecase.AssertionUsecase, logger *zap.Logger) *PredictHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictHandler{assertionUC: assertionUC, logger: logger}
}

// Predict handles POST /predict
func (h *PredictHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "sentence is required and must be a string")
		return
	}

	output, err := h.assertionUC.PredictOne(c.Request.Context(), req.Sentence)
	if err != nil {
		h.logPredictionError(c, err)
		HandleUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

// PredictBatch handles POST /predict/batch
func (h *PredictHandler) PredictBatch(c *gin.Context) {
	var req BatchPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "sentences is required and must be a list of strings")
		return
	}

	output, err := h.assertionUC.PredictBatch(c.Request.Context(), req.Sentences)
	if err != nil {
		h.logPredictionError(c, err)
		HandleUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

// logPredictionError records full failure detail server-side. The client
// only ever sees the mapped generic message for 5xx conditions.
func (h *PredictHandler) logPredictionError(c *gin.Context, err error) {
	if MapUsecaseError(err).StatusCode < http.StatusInternalServerError {
		return
	}
	h.logger.Error("Prediction failed",
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// API metadata served at the root endpoint
const (
	APIName    = "Clinical BERT Assertion API"
	APIVersion = "1.0.0"
)

// InfoHandler serves API metadata
type InfoHandler struct {
	modelName string
}

// NewInfoHandler creates a new info handler
func NewInfoHandler(modelName string) *InfoHandler {
	return &InfoHandler{modelName: modelName}
}

// InfoResponse is the body for GET /
type InfoResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Model     string            `json:"model"`
	Endpoints map[string]string `json:"endpoints"`
}

// Info handles GET /
func (h *InfoHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Name:    APIName,
		Version: APIVersion,
		Model:   h.modelName,
		Endpoints: map[string]string{
			"health":        "GET /health",
			"predict":       "POST /predict",
			"batch_predict": "POST /predict/batch",
			"metrics":       "GET /metrics",
		},
	})
}

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Sowmiya2022/clinical-bert-api/internal/usecase"
)

func TestMapUsecaseError(t *testing.T) {
	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
		expectedDetail     string
	}{
		{
			name:               "invalid input",
			err:                fmt.Errorf("%w: sentence must not be blank or whitespace only", usecase.ErrInvalidInput),
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedDetail:     "invalid input: sentence must not be blank or whitespace only",
		},
		{
			name:               "model not ready",
			err:                usecase.ErrNotReady,
			expectedStatusCode: http.StatusServiceUnavailable,
			expectedDetail:     "Model is not yet loaded. Service is not ready.",
		},
		{
			name:               "wrapped not ready",
			err:                fmt.Errorf("predict: %w", usecase.ErrNotReady),
			expectedStatusCode: http.StatusServiceUnavailable,
			expectedDetail:     "Model is not yet loaded. Service is not ready.",
		},
		{
			name:               "unknown error hides detail",
			err:                errors.New("connection reset by peer"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedDetail:     "Internal server error. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapUsecaseError(tt.err)

			assert.Equal(t, tt.expectedStatusCode, result.StatusCode)
			assert.Equal(t, tt.expectedDetail, result.Detail)
		})
	}
}

func TestHandleUsecaseError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
	}{
		{
			name:               "invalid input gives 422",
			err:                usecase.ErrInvalidInput,
			expectedStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:               "not ready gives 503",
			err:                usecase.ErrNotReady,
			expectedStatusCode: http.StatusServiceUnavailable,
		},
		{
			name:               "unknown gives 500",
			err:                errors.New("boom"),
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", func(c *gin.Context) {
				HandleUsecaseError(c, tt.err)
			})

			req, _ := http.NewRequest("GET", "/test", http.NoBody)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatusCode, w.Code)
			assert.Contains(t, w.Body.String(), "detail")
		})
	}
}

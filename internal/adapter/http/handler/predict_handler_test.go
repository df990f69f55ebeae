package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sowmiya2022/clinical-bert-api/internal/domain/service"
	"github.com/Sowmiya2022/clinical-bert-api/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockAssertionUsecase is a mock implementation of usecase.AssertionUsecase
type MockAssertionUsecase struct {
	mock.Mock
}

func (m *MockAssertionUsecase) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssertionUsecase) State() usecase.ModelState {
	args := m.Called()
	return args.Get(0).(usecase.ModelState)
}

func (m *MockAssertionUsecase) PredictOne(ctx context.Context, sentence string) (*usecase.PredictOutput, error) {
	args := m.Called(ctx, sentence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictOutput), args.Error(1)
}

func (m *MockAssertionUsecase) PredictBatch(ctx context.Context, sentences []string) (*usecase.BatchPredictOutput, error) {
	args := m.Called(ctx, sentences)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BatchPredictOutput), args.Error(1)
}

func predictRouter(uc usecase.AssertionUsecase) *gin.Engine {
	r := gin.New()
	h := NewPredictHandler(uc, nil)
	r.POST("/predict", h.Predict)
	r.POST("/predict/batch", h.PredictBatch)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPredictHandler_Predict(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := new(MockAssertionUsecase)
		uc.On("PredictOne", mock.Anything, "The patient denies chest pain.").
			Return(&usecase.PredictOutput{Label: service.LabelAbsent, Score: 0.9812}, nil)

		w := doJSON(t, predictRouter(uc), "POST", "/predict",
			`{"sentence": "The patient denies chest pain."}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp usecase.PredictOutput
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, service.LabelAbsent, resp.Label)
		assert.Equal(t, 0.9812, resp.Score)
	})

	t.Run("missing sentence field", func(t *testing.T) {
		uc := new(MockAssertionUsecase)

		w := doJSON(t, predictRouter(uc), "POST", "/predict", `{}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "PredictOne")
	})

	t.Run("non-string sentence", func(t *testing.T) {
		uc := new(MockAssertionUsecase)

		w := doJSON(t, predictRouter(uc), "POST", "/predict", `{"sentence": 42}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "PredictOne")
	})

	t.Run("malformed body", func(t *testing.T) {
		uc := new(MockAssertionUsecase)

		w := doJSON(t, predictRouter(uc), "POST", "/predict", `{not json`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("blank sentence maps to 422", func(t *testing.T) {
		uc := new(MockAssertionUsecase)
		uc.On("PredictOne", mock.Anything, "   ").
			Return(nil, usecase.ErrInvalidInput)

		w := doJSON(t, predictRouter(uc), "POST", "/predict", `{"sentence": "   "}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("model not ready maps to 503", func(t *testing.T) {
		uc := new(MockAssertionUsecase)
		uc.On("PredictOne", mock.Anything, mock.Anything).
			Return(nil, usecase.ErrNotReady)

		w := doJSON(t, predictRouter(uc), "POST", "/predict", `{"sentence": "some text"}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp DetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Detail, "not yet loaded")
	})

	t.Run("unexpected failure maps to 500 with generic detail", func(t *testing.T) {
		uc := new(MockAssertionUsecase)
		uc.On("PredictOne", mock.Anything, mock.Anything).
			Return(nil, errors.New("cuda out of memory at 0x7f"))

		w := doJSON(t, predictRouter(uc), "POST", "/predict", `{"sentence": "some text"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "cuda")

		var resp DetailResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Internal server error. Please try again later.", resp.Detail)
	})
}

func TestPredictHandler_PredictBatch(t *testing.T) {
	t.Run("success preserves order and count", func(t *testing.T) {
		uc := new(MockAssertionUsecase)
		sentences := []string{"No chest pain.", "Has fever."}
		uc.On("PredictBatch", mock.Anything, sentences).
			Return(&usecase.BatchPredictOutput{
				Results: []usecase.BatchItemOutput{
					{Sentence: "No chest pain.", Label: service.LabelAbsent, Score: 0.97},
					{Sentence: "Has fever.", Label: service.LabelPresent, Score: 0.93},
				},
				Count: 2,
			}, nil)

		w := doJSON(t, predictRouter(uc), "POST", "/predict/batch",
			`{"sentences": ["No chest pain.", "Has fever."]}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp usecase.BatchPredictOutput
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		require.Len(t, resp.Results, 2)
		assert.Equal(t, "No chest pain.", resp.Results[0].Sentence)
		assert.Equal(t, service.LabelAbsent, resp.Results[0].Label)
		assert.Equal(t, "Has fever.", resp.Results[1].Sentence)
	})

	t.Run("missing sentences field", func(t *testing.T) {
		uc := new(MockAssertionUsecase)

		w := doJSON(t, predictRouter(uc), "POST", "/predict/batch", `{}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "PredictBatch")
	})

	t.Run("non-list sentences", func(t *testing.T) {
		uc := new(MockAssertionUsecase)

		w := doJSON(t, predictRouter(uc), "POST", "/predict/batch", `{"sentences": "just one"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "PredictBatch")
	})

	t.Run("invalid element maps to 422 with field detail", func(t *testing.T) {
		uc := new(MockAssertionUsecase)
		uc.On("PredictBatch", mock.Anything, mock.Anything).
			Return(nil, errors.Join(usecase.ErrInvalidInput,
				errors.New("sentences[1] must not be blank or whitespace only")))

		w := doJSON(t, predictRouter(uc), "POST", "/predict/batch",
			`{"sentences": ["ok", "  "]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "sentences[1]")
	})

	t.Run("model not ready maps to 503", func(t *testing.T) {
		uc := new(MockAssertionUsecase)
		uc.On("PredictBatch", mock.Anything, mock.Anything).
			Return(nil, usecase.ErrNotReady)

		w := doJSON(t, predictRouter(uc), "POST", "/predict/batch",
			`{"sentences": ["some text"]}`)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

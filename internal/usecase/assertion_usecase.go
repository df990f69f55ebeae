package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/Sowmiya2022/clinical-bert-api/internal/domain/service"
	"github.com/Sowmiya2022/clinical-bert-api/internal/infrastructure/cache"
)

// Error definitions for the assertion usecase
var (
	ErrNotReady     = errors.New("model is not loaded")
	ErrInvalidInput = errors.New("invalid input")
)

// Input bounds enforced before any inference call
const (
	MaxSentenceLength = 2048
	MaxBatchItems     = 64
)

var predictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "assertion_predictions_total",
		Help: "Predictions served, partitioned by assertion label.",
	},
	[]string{"label"},
)

// ModelState is a snapshot of the loaded model.
type ModelState struct {
	Loaded    bool
	ModelName string
	Device    string
	LoadMs    float64
}

// PredictOutput is the result for a single sentence.
type PredictOutput struct {
	Label service.Label `json:"label"`
	Score float64       `json:"score"`
}

// BatchItemOutput pairs a batch result with its originating sentence.
type BatchItemOutput struct {
	Sentence string        `json:"sentence"`
	Label    service.Label `json:"label"`
	Score    float64       `json:"score"`
}

// BatchPredictOutput is the result for a batch request, in input order.
type BatchPredictOutput struct {
	Results []BatchItemOutput `json:"results"`
	Count   int               `json:"count"`
}

// AssertionUsecase owns the model lifecycle and the prediction operations.
type AssertionUsecase interface {
	// Initialize loads the model through the provider. Idempotent; must
	// complete before traffic is accepted.
	Initialize(ctx context.Context) error

	// State returns the current model state without blocking or loading.
	State() ModelState

	// PredictOne classifies a single sentence.
	PredictOne(ctx context.Context, sentence string) (*PredictOutput, error)

	// PredictBatch classifies up to MaxBatchItems sentences in one
	// provider call, preserving input order.
	PredictBatch(ctx context.Context, sentences []string) (*BatchPredictOutput, error)
}

type assertionUsecase struct {
	provider  service.Provider
	results   *cache.ResultCache // nil disables caching
	logger    *zap.Logger
	modelName string
	batchSize int

	// written once by Initialize before the server accepts requests,
	// read-only afterwards
	state ModelState
}

// NewAssertionUsecase creates a new assertion usecase. results may be nil
// to run without a prediction cache.
func NewAssertionUsecase(provider service.Provider, results *cache.ResultCache, logger *zap.Logger, modelName string, batchSize int) AssertionUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &assertionUsecase{
		provider:  provider,
		results:   results,
		logger:    logger,
		modelName: modelName,
		batchSize: batchSize,
	}
}

func (u *assertionUsecase) Initialize(ctx context.Context) error {
	if u.state.Loaded {
		u.logger.Info("Model already loaded, skipping reload")
		return nil
	}

	// a runner that outlived an API restart may already hold the model
	if info, err := u.provider.Info(ctx); err == nil && info.Loaded && info.ModelName == u.modelName {
		u.state = ModelState{
			Loaded:    true,
			ModelName: info.ModelName,
			Device:    info.Device,
			LoadMs:    info.LoadMs,
		}
		u.logger.Info("Model already resident on runner",
			zap.String("model", u.state.ModelName),
			zap.String("device", u.state.Device),
		)
		return nil
	}

	u.logger.Info("Loading model", zap.String("model", u.modelName))
	start := time.Now()

	info, err := u.provider.Load(ctx, u.modelName)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	if !info.Loaded {
		return fmt.Errorf("model runner did not load %s", u.modelName)
	}

	loadMs := info.LoadMs
	if loadMs <= 0 {
		loadMs = float64(time.Since(start).Milliseconds())
	}

	u.state = ModelState{
		Loaded:    info.Loaded,
		ModelName: info.ModelName,
		Device:    info.Device,
		LoadMs:    loadMs,
	}

	u.logger.Info("Model loaded",
		zap.String("model", u.state.ModelName),
		zap.String("device", u.state.Device),
		zap.Float64("load_ms", u.state.LoadMs),
	)

	return nil
}

func (u *assertionUsecase) State() ModelState {
	return u.state
}

func (u *assertionUsecase) PredictOne(ctx context.Context, sentence string) (*PredictOutput, error) {
	// validation comes first: a malformed request is 422 even while the
	// model is still loading
	trimmed, err := validateSentence(sentence, "sentence")
	if err != nil {
		return nil, err
	}

	if !u.state.Loaded {
		return nil, ErrNotReady
	}

	if u.results != nil {
		if cached, ok := u.results.Get(ctx, trimmed); ok {
			predictionsTotal.WithLabelValues(string(cached.Label)).Inc()
			return &PredictOutput{Label: cached.Label, Score: cached.Score}, nil
		}
	}

	start := time.Now()
	dists, err := u.provider.Predict(ctx, []string{trimmed}, u.batchSize)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	best, err := bestPrediction(dists[0])
	if err != nil {
		return nil, err
	}

	u.logger.Debug("Prediction",
		zap.String("label", string(best.Label)),
		zap.Float64("score", best.Score),
		zap.Duration("latency", time.Since(start)),
	)

	if u.results != nil {
		u.results.Set(ctx, trimmed, best)
	}

	predictionsTotal.WithLabelValues(string(best.Label)).Inc()
	return &PredictOutput{Label: best.Label, Score: best.Score}, nil
}

func (u *assertionUsecase) PredictBatch(ctx context.Context, sentences []string) (*BatchPredictOutput, error) {
	// all-or-nothing validation, ahead of the readiness gate: no
	// inference unless every item is valid
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w: sentences must contain at least 1 item", ErrInvalidInput)
	}
	if len(sentences) > MaxBatchItems {
		return nil, fmt.Errorf("%w: sentences must contain at most %d items", ErrInvalidInput, MaxBatchItems)
	}

	trimmed := make([]string, len(sentences))
	for i, s := range sentences {
		clean, err := validateSentence(s, fmt.Sprintf("sentences[%d]", i))
		if err != nil {
			return nil, err
		}
		trimmed[i] = clean
	}

	if !u.state.Loaded {
		return nil, ErrNotReady
	}

	start := time.Now()
	dists, err := u.provider.Predict(ctx, trimmed, u.batchSize)
	if err != nil {
		return nil, fmt.Errorf("batch prediction failed: %w", err)
	}

	results := make([]BatchItemOutput, len(trimmed))
	for i, dist := range dists {
		best, err := bestPrediction(dist)
		if err != nil {
			return nil, err
		}
		predictionsTotal.WithLabelValues(string(best.Label)).Inc()
		results[i] = BatchItemOutput{
			Sentence: trimmed[i],
			Label:    best.Label,
			Score:    best.Score,
		}
	}

	u.logger.Debug("Batch prediction",
		zap.Int("count", len(results)),
		zap.Duration("latency", time.Since(start)),
	)

	return &BatchPredictOutput{Results: results, Count: len(results)}, nil
}

// validateSentence enforces the input contract: the raw value is bounded
// at MaxSentenceLength characters before trimming, and must not be blank
// after trimming. The trimmed form is what gets classified.
func validateSentence(raw, field string) (string, error) {
	if utf8.RuneCountInString(raw) > MaxSentenceLength {
		return "", fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, field, MaxSentenceLength)
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s must not be blank or whitespace only", ErrInvalidInput, field)
	}
	return trimmed, nil
}

// bestPrediction selects the argmax of a score distribution. Ties keep the
// first maximum in provider order. The score is rounded to 4 decimals.
func bestPrediction(dist []service.LabelScore) (*service.Prediction, error) {
	if len(dist) == 0 {
		return nil, errors.New("provider returned an empty score distribution")
	}

	best := dist[0]
	for _, ls := range dist[1:] {
		if ls.Score > best.Score {
			best = ls
		}
	}

	return &service.Prediction{
		Label: best.Label,
		Score: math.Round(best.Score*10000) / 10000,
	}, nil
}

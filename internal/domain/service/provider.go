package service

import "context"

// Label is an assertion status produced by the classifier. The set is
// closed; the model runner never returns anything outside it.
type Label string

const (
	LabelPresent     Label = "PRESENT"
	LabelAbsent      Label = "ABSENT"
	LabelConditional Label = "CONDITIONAL"
)

// Labels lists the closed label set in the order the model defines it.
func Labels() []Label {
	return []Label{LabelPresent, LabelAbsent, LabelConditional}
}

// LabelScore is one entry of the per-label score distribution returned by
// the model runner for a single input.
type LabelScore struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// Prediction is the selected label and its confidence for one input.
type Prediction struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// ModelInfo describes the model held by the runner.
type ModelInfo struct {
	Loaded    bool    `json:"loaded"`
	ModelName string  `json:"model_name"`
	Device    string  `json:"device"`
	LoadMs    float64 `json:"load_time_ms"`
}

// Provider is the boundary to the inference runner. Predict returns one
// score distribution per input text, in input order, covering every label
// in the closed set.
type Provider interface {
	// Load asks the runner to load the named model. Safe to call when the
	// model is already resident; the runner treats it as a no-op.
	Load(ctx context.Context, model string) (*ModelInfo, error)

	// Info reports the runner's current model state without loading.
	Info(ctx context.Context) (*ModelInfo, error)

	// Predict classifies texts in one forward pass. batchSize is a hint
	// for the runner's internal chunking, not a cap on len(texts).
	Predict(ctx context.Context, texts []string, batchSize int) ([][]LabelScore, error)
}

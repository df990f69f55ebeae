package client

import (
	"context"

	"github.com/Sowmiya2022/clinical-bert-api/internal/domain/service"
)

// Token cap passed to the runner on load. Longer inputs are truncated by
// the runner's tokenizer.
const maxTokenLength = 512

// RunnerProvider adapts RunnerClient to the service.Provider interface.
type RunnerProvider struct {
	client *RunnerClient
}

// NewRunnerProvider creates a new RunnerProvider.
func NewRunnerProvider(client *RunnerClient) service.Provider {
	return &RunnerProvider{client: client}
}

// Load asks the runner to load the named model.
func (p *RunnerProvider) Load(ctx context.Context, model string) (*service.ModelInfo, error) {
	resp, err := p.client.Load(ctx, model, maxTokenLength)
	if err != nil {
		return nil, err
	}
	return toModelInfo(resp), nil
}

// Info reports the runner's current model state.
func (p *RunnerProvider) Info(ctx context.Context) (*service.ModelInfo, error) {
	resp, err := p.client.Info(ctx)
	if err != nil {
		return nil, err
	}
	return toModelInfo(resp), nil
}

// Predict classifies texts in one forward pass, returning per-label score
// distributions in input order.
func (p *RunnerProvider) Predict(ctx context.Context, texts []string, batchSize int) ([][]service.LabelScore, error) {
	resp, err := p.client.Predict(ctx, texts, batchSize)
	if err != nil {
		return nil, err
	}

	distributions := make([][]service.LabelScore, len(resp.Results))
	for i, scores := range resp.Results {
		dist := make([]service.LabelScore, len(scores))
		for j, s := range scores {
			dist[j] = service.LabelScore{
				Label: service.Label(s.Label),
				Score: s.Score,
			}
		}
		distributions[i] = dist
	}

	return distributions, nil
}

func toModelInfo(resp *InfoResponse) *service.ModelInfo {
	return &service.ModelInfo{
		Loaded:    resp.Loaded,
		ModelName: resp.ModelName,
		Device:    resp.Device,
		LoadMs:    resp.LoadMs,
	}
}

package embedx

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAI embeds through the Gemini API.
type GenAI struct {
	client *genai.Client
	model  string
	dims   int
}

func NewGenAI(ctx context.Context, apiKey, model string, dims int) (*GenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embedx: genai api key is required")
	}
	if model == "" {
		model = "gemini-embedding-001"
	}
	if dims <= 0 {
		dims = 768
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GenAI{client: client, model: model, dims: dims}, nil
}

func (e *GenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	outDims := int32(e.dims)
	res, err := e.client.Models.EmbedContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{
			TaskType:             "SEMANTIC_SIMILARITY",
			OutputDimensionality: &outDims,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("genai embed: %w", err)
	}
	if len(res.Embeddings) == 0 || res.Embeddings[0] == nil {
		return nil, fmt.Errorf("genai embed: no embeddings returned")
	}

	vec := res.Embeddings[0].Values
	if err := CheckDimensions(vec, e.dims); err != nil {
		return nil, err
	}
	return vec, nil
}

func (e *GenAI) Dimensions() int { return e.dims }

func (e *GenAI) Name() string { return "genai:" + e.model }

package narrative

import (
	"context"
	"errors"
	"fmt"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/aristath/fundadvisor/internal/domain"
)

// ErrMissingCredential is returned when no API key is configured.
var ErrMissingCredential = errors.New("narrative model API key is not configured")

// DefaultModel is used when OpenAIConfig.Model is empty.
const DefaultModel = "gpt-4o-mini"

// OpenAIConfig configures OpenAINarrator.
type OpenAIConfig struct {
	APIKey    string
	Model     string
	BaseURL   string // optional, for OpenAI-compatible gateways
	MaxTokens int64
}

// OpenAINarrator generates reports with the OpenAI chat completions API.
type OpenAINarrator struct {
	cli       oa.Client
	model     string
	maxTokens int64
	hasKey    bool
}

// NewOpenAINarrator creates a narrator. A missing API key is not an error
// here; every Narrate call then fails with ErrMissingCredential.
func NewOpenAINarrator(cfg OpenAIConfig) *OpenAINarrator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// retries are owned by Service
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1500
	}

	return &OpenAINarrator{
		cli:       oa.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
		hasKey:    cfg.APIKey != "",
	}
}

// Narrate implements Narrator.
func (n *OpenAINarrator) Narrate(ctx context.Context, profile domain.UserProfile, result domain.RecommendationResult) (NarrativeReport, error) {
	if !n.hasKey {
		return NarrativeReport{}, ErrMissingCredential
	}

	prompt, err := BuildPrompt(profile, result)
	if err != nil {
		return NarrativeReport{}, err
	}

	resp, err := n.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: oa.ChatModel(n.model),
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(systemPrompt),
			oa.UserMessage(prompt),
		},
		MaxTokens: oa.Int(n.maxTokens),
	})
	if err != nil {
		return NarrativeReport{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return NarrativeReport{}, fmt.Errorf("no response from OpenAI")
	}

	return ParseReport(resp.Choices[0].Message.Content)
}

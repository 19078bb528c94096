package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/tutorkit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ProviderName is the registry key for this provider.
const ProviderName = "gemini"

// Provider implements ai.Provider using the Google Gemini API.
type Provider struct {
	client  llms.Model
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

var _ ai.Provider = (*Provider)(nil)

// Factory adapts New to the ai.ProviderFactory signature for registry wiring.
func Factory(config *ai.Config, model string) (ai.Provider, error) {
	return New(config, model)
}

// New creates a Gemini provider. An empty model selects config.GeminiModel.
// A provider without a configured API key is still constructible; it reports
// itself as unavailable and Generate fails with ai.ErrUnavailable.
func New(config *ai.Config, model string) (*Provider, error) {
	if config == nil {
		return nil, ai.ErrConfigRequired
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if model == "" {
		model = config.GeminiModel
	}

	p := &Provider{
		model:   model,
		timeout: config.Timeout,
		logger:  slog.Default().With("component", "gemini-provider"),
	}

	if config.GeminiAPIKey == "" {
		return p, nil
	}

	client, err := googleai.New(context.Background(),
		googleai.WithAPIKey(config.GeminiAPIKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	p.client = client

	return p, nil
}

// Name returns the registry key of this provider.
func (p *Provider) Name() string {
	return ProviderName
}

// IsAvailable reports whether the Gemini API key is configured.
func (p *Provider) IsAvailable() bool {
	return p.client != nil
}

// ListModels returns the recommended Gemini models.
func (p *Provider) ListModels() []string {
	return []string{
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	}
}

// Generate produces a completion for the prompt, optionally guided by a
// system prompt. The call is bounded by the configured timeout.
func (p *Provider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if prompt == "" {
		return "", ai.ErrEmptyPrompt
	}
	if !p.IsAvailable() {
		return "", fmt.Errorf("gemini: %w", ai.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	content := buildMessages(prompt, systemPrompt)

	response, err := p.client.GenerateContent(ctx, content)
	if err != nil {
		p.logger.Error("generation failed", "model", p.model, "err", err)
		return "", fmt.Errorf("gemini: generation failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("gemini: %w", ai.ErrEmptyResponse)
	}

	return response.Choices[0].Content, nil
}

func buildMessages(prompt, systemPrompt string) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, 2)
	if systemPrompt != "" {
		content = append(content, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		})
	}
	content = append(content, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(prompt)},
	})
	return content
}

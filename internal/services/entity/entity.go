package entity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"curator/internal/logging"
	"curator/internal/services"
)

// Config wires the detector to an OpenAI-compatible inference endpoint,
// typically a local server. Detection is disabled unless a base URL is set.
type Config struct {
	Enabled bool
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Service resolves the brand or organization a document belongs to.
// Implementations must be safe to call with empty metadata.
type Service interface {
	DetectEntity(ctx context.Context, filename string, metadata map[string]string) (string, error)
}

// NewService returns a detector for cfg, or a disabled no-op service when
// the configuration does not enable one.
func NewService(cfg Config, logger *slog.Logger) Service {
	if !cfg.Enabled || strings.TrimSpace(cfg.BaseURL) == "" {
		return disabledService{}
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	model := cfg.Model
	if model == "" {
		model = "local"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &client{
		api:     openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "entity"),
	}
}

type disabledService struct{}

func (disabledService) DetectEntity(context.Context, string, map[string]string) (string, error) {
	return "", nil
}

type client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

const systemPrompt = "You identify the company or organization a document belongs to. " +
	"Reply with the organization name only, or the single word unknown. " +
	"Never reply with more than five words."

func (c *client) DetectEntity(ctx context.Context, filename string, metadata map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   32,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(filename, metadata)},
		},
	})
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "entity", "chat completion", "Entity detection request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	answer := sanitizeAnswer(resp.Choices[0].Message.Content)
	if answer != "" {
		c.logger.Debug("entity detected",
			logging.String("filename", filename),
			logging.String("entity", answer),
		)
	}
	return answer, nil
}

func buildPrompt(filename string, metadata map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Filename: %s\n", filename)
	for _, key := range []string{"title", "author", "creator", "producer", "subject"} {
		if value := strings.TrimSpace(metadata[key]); value != "" {
			fmt.Fprintf(&b, "%s: %s\n", key, value)
		}
	}
	b.WriteString("Organization:")
	return b.String()
}

// sanitizeAnswer rejects refusals and anything that does not look like a
// short name. Detection is advisory; a bad answer degrades to no entity.
func sanitizeAnswer(answer string) string {
	answer = strings.TrimSpace(answer)
	if idx := strings.IndexByte(answer, '\n'); idx >= 0 {
		answer = strings.TrimSpace(answer[:idx])
	}
	answer = strings.Trim(answer, `"'.`)
	if answer == "" || strings.EqualFold(answer, "unknown") || strings.EqualFold(answer, "none") {
		return ""
	}
	if len(answer) > 64 || len(strings.Fields(answer)) > 5 {
		return ""
	}
	return answer
}

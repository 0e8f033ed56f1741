package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	aoption "github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/openai/openai-go"
	ooption "github.com/openai/openai-go/option"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	defaultMaxOutputTokens = 512
	defaultOpenAIModel     = "gpt-4o-mini"
	defaultAnthropicModel  = "claude-3-5-haiku-latest"
)

// ErrNotConfigured is returned when no provider has been set up.
var ErrNotConfigured = errors.New("chat provider not configured")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer turns a conversation into the assistant's next reply.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Default is the process-wide completer, set at startup. Nil means disabled.
var Default Completer

// Provider returns Default, or ErrNotConfigured when chat is disabled.
func Provider() (Completer, error) {
	if Default == nil {
		return nil, ErrNotConfigured
	}
	return Default, nil
}

// NewCompleter builds a provider adapter for "openai" (or any OpenAI-compatible
// base URL) or "anthropic".
func NewCompleter(provider, apiKey, baseURL, model string) (Completer, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("missing provider api key")
	}
	model = strings.TrimSpace(model)

	switch provider {
	case "openai", "openai_compatible", "":
		opts := []ooption.RequestOption{ooption.WithAPIKey(strings.TrimSpace(apiKey))}
		if strings.TrimSpace(baseURL) != "" {
			opts = append(opts, ooption.WithBaseURL(strings.TrimSpace(baseURL)))
		}
		if model == "" {
			model = defaultOpenAIModel
		}
		return &openAICompleter{client: openai.NewClient(opts...), model: model}, nil
	case "anthropic":
		opts := []aoption.RequestOption{aoption.WithAPIKey(strings.TrimSpace(apiKey))}
		if strings.TrimSpace(baseURL) != "" {
			opts = append(opts, aoption.WithBaseURL(strings.TrimSpace(baseURL)))
		}
		if model == "" {
			model = defaultAnthropicModel
		}
		return &anthropicCompleter{client: anthropic.NewClient(opts...), model: model}, nil
	default:
		return nil, fmt.Errorf("unsupported chat provider %q", provider)
	}
}

type openAICompleter struct {
	client openai.Client
	model  string
}

func (p *openAICompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(p.model),
		MaxCompletionTokens: openai.Int(defaultMaxOutputTokens),
	}
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai completion: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

type anthropicCompleter struct {
	client anthropic.Client
	model  string
}

func (p *anthropicCompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: defaultMaxOutputTokens,
	}

	var system []string
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if len(system) > 0 {
		params.System = []anthropic.TextBlockParam{{Text: strings.Join(system, "\n\n")}}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("anthropic completion: empty response")
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}

package openrouter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.OraclePort = (*Adapter)(nil)

// Adapter drives an OpenAI-compatible chat-completion endpoint as the
// decision oracle. The transcript and capability catalog go in; a final
// answer or a tool-call batch comes out.
type Adapter struct {
	client       *openai.Client
	model        string
	systemPrompt string
	logger       output.LoggerPort
}

type Config struct {
	APIKey       string
	Model        string
	BaseURL      string
	SystemPrompt string
	Logger       output.LoggerPort
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://openrouter.ai/api/v1",
	}
}

// loggingTransport mirrors request/response metadata into the structured log
// when a logger is configured.
type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var size int
	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		size = len(bodyBytes)
	}
	t.logger.Debug("oracle request", "method", req.Method, "url", req.URL.String(), "bodyBytes", size)

	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		t.logger.Debug("oracle response", "status", resp.Status)
	}
	return resp, err
}

func New(cfg Config) *Adapter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	if cfg.Logger != nil {
		clientCfg.HTTPClient = &http.Client{
			Transport: &loggingTransport{base: http.DefaultTransport, logger: cfg.Logger},
		}
	}

	return &Adapter{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		logger:       cfg.Logger,
	}
}

func (a *Adapter) Decide(ctx context.Context, req output.DecideRequest) (*output.Decision, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    a.convertHistory(req.History),
		Tools:       convertCatalog(req.Catalog),
		ToolChoice:  "auto",
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("oracle returned no choices")
	}

	return convertChoice(resp.Choices[0].Message), nil
}

// convertHistory maps the run transcript onto the chat wire format. The
// system prompt, when configured, always leads.
func (a *Adapter) convertHistory(history []entity.Turn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	if a.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: a.systemPrompt,
		})
	}

	for _, turn := range history {
		switch turn.Kind {
		case entity.TurnUser:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: turn.Text,
			})
		case entity.TurnOracle:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: turn.Text,
			})
		case entity.TurnToolCalls:
			messages = append(messages, openai.ChatCompletionMessage{
				Role:      openai.ChatMessageRoleAssistant,
				Content:   turn.Text,
				ToolCalls: convertCalls(turn.Calls),
			})
		case entity.TurnToolResults:
			for _, result := range turn.Results {
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					ToolCallID: result.CallID,
					Name:       result.Name.String(),
					Content:    result.Observation(),
				})
			}
		}
	}
	return messages
}

func convertCalls(calls []entity.ToolCall) []openai.ToolCall {
	out := make([]openai.ToolCall, 0, len(calls))
	for _, call := range calls {
		out = append(out, openai.ToolCall{
			ID:   call.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      call.Name.String(),
				Arguments: call.Arguments,
			},
		})
	}
	return out
}

func convertCatalog(catalog []entity.ToolDefinition) []openai.Tool {
	tools := make([]openai.Tool, 0, len(catalog))
	for _, def := range catalog {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name.String(),
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return tools
}

func convertChoice(msg openai.ChatCompletionMessage) *output.Decision {
	decision := &output.Decision{
		FinalAnswer: msg.Content,
	}
	for _, tc := range msg.ToolCalls {
		decision.ToolCalls = append(decision.ToolCalls, entity.ToolCall{
			ID:        tc.ID,
			Name:      entity.ToolName(tc.Function.Name),
			Arguments: tc.Function.Arguments,
		})
	}
	return decision
}

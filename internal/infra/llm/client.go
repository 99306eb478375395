// Package llm implements the plan and feedback generators on an
// OpenAI-compatible chat completions endpoint (OpenRouter by default).
package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// ChatClient is the subset of the go-openai client used by the generators.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// errEmptyCompletion is returned when the endpoint answers without choices.
var errEmptyCompletion = errors.New("completion has no choices")

// jsonObject matches the outermost {...} span of a completion.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// Client sends prompts to the chat endpoint.
// A nil chat client means offline: every call fails and callers fall back.
type Client struct {
	chat    ChatClient
	logger  domain.Logger
	model   string
	timeout time.Duration
}

// NewClient creates a Client from configuration.
// Without an API key the client runs offline.
func NewClient(cfg domain.LLMConfig, logger domain.Logger) *Client {
	var chat ChatClient
	if cfg.APIKey != "" {
		oc := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		chat = openai.NewClientWithConfig(oc)
	}
	return NewClientWithChat(chat, cfg.Model, cfg.Timeout, logger)
}

// NewClientWithChat creates a Client around an existing chat client.
func NewClientWithChat(chat ChatClient, model string, timeout time.Duration, logger domain.Logger) *Client {
	if model == "" {
		model = domain.DefaultLLMModel
	}
	return &Client{
		chat:    chat,
		logger:  logger,
		model:   model,
		timeout: timeout,
	}
}

// Offline reports whether the client has no endpoint to call.
func (c *Client) Offline() bool {
	return c.chat == nil
}

// errOffline is returned by complete when no endpoint is configured.
var errOffline = errors.New("llm offline: no api key configured")

// complete sends a system and user prompt and returns the first choice.
func (c *Client) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	if c.chat == nil {
		return "", errOffline
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// extractJSON returns the outermost JSON object in content, or content itself
// when no braces are present.
func extractJSON(content string) []byte {
	if m := jsonObject.FindString(content); m != "" {
		return []byte(m)
	}
	return []byte(strings.TrimSpace(content))
}

func (c *Client) warn(goalID, msg string) {
	if c.logger != nil {
		c.logger.Warn(goalID, domain.LogCategoryLLM, msg)
	}
}

func (c *Client) debug(goalID, msg string) {
	if c.logger != nil {
		c.logger.Debug(goalID, domain.LogCategoryLLM, msg)
	}
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/pkg/config"
)

// CompletionClient posts prompts to a self-hosted completion endpoint whose
// response shape is not fixed
type CompletionClient struct {
	url    string
	client *http.Client
}

// NewCompletionClient creates a client for LLM_COMPLETION_URL
func NewCompletionClient(cfg *config.LLMConfig) *CompletionClient {
	c := &CompletionClient{client: &http.Client{Timeout: 60 * time.Second}}
	if cfg != nil {
		c.url = cfg.CompletionURL
		if cfg.Timeout > 0 {
			c.client.Timeout = cfg.Timeout
		}
	}
	return c
}

// Configured reports whether an endpoint URL is set
func (c *CompletionClient) Configured() bool {
	return c != nil && c.url != ""
}

// Complete returns the decoded JSON object, or the body verbatim when it is not an object
func (c *CompletionClient) Complete(ctx context.Context, prompt string) (interface{}, error) {
	b, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		return obj, nil
	}
	return string(body), nil
}

// CompletionStrategy calls the generic completion endpoint
func CompletionStrategy(c *CompletionClient) Strategy {
	return Strategy{
		Name:      "completion.endpoint",
		Available: c.Configured,
		Call: func(ctx context.Context, prompt string) (interface{}, error) {
			return c.Complete(ctx, prompt)
		},
	}
}

// NewDefaultInvoker wires the configured backends in priority order:
// Gemini, then Groq, then the generic completion endpoint.
func NewDefaultInvoker(cfg *config.LLMConfig, logger *zap.Logger) *Invoker {
	return NewInvoker(logger,
		GeminiStrategy(NewGeminiClient(cfg)),
		GroqStrategy(NewGroqClient(cfg)),
		CompletionStrategy(NewCompletionClient(cfg)),
	)
}

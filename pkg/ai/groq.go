package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/meet-agent/pkg/config"
)

// GroqClient is a minimal client for Groq's OpenAI-compatible chat completions
type GroqClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config
func NewGroqClient(cfg *config.LLMConfig) *GroqClient {
	base := "https://api.groq.com"
	model := "llama-3.1-70b-versatile"
	timeout := 60 * time.Second
	var apiKey string
	if cfg != nil {
		apiKey = cfg.GroqAPIKey
		if cfg.GroqBaseURL != "" {
			base = cfg.GroqBaseURL
		}
		if cfg.GroqModel != "" {
			model = cfg.GroqModel
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}

	return &GroqClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an API key is present
func (g *GroqClient) Configured() bool {
	return g != nil && g.apiKey != ""
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// Content returns the first choice's message content
func (r *ChatResponse) Content() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// Complete sends prompt as a single user message
func (g *GroqClient) Complete(ctx context.Context, prompt string) (*ChatResponse, error) {
	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   8000,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, err
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("empty response from groq")
	}
	return &cr, nil
}

// GroqStrategy calls the chat completion helper endpoint
func GroqStrategy(g *GroqClient) Strategy {
	return Strategy{
		Name:      "groq.chat_completion",
		Available: g.Configured,
		Call: func(ctx context.Context, prompt string) (interface{}, error) {
			return g.Complete(ctx, prompt)
		},
	}
}

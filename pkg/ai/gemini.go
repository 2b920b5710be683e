package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/johnquangdev/meet-agent/pkg/config"
)

// GeminiClient calls the Gemini generateContent REST endpoint
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiClient creates a Gemini client from the LLM config
func NewGeminiClient(cfg *config.LLMConfig) *GeminiClient {
	base := "https://generativelanguage.googleapis.com"
	model := "gemini-1.5-flash"
	timeout := 60 * time.Second
	var apiKey string
	if cfg != nil {
		apiKey = cfg.GeminiAPIKey
		if cfg.GeminiBaseURL != "" {
			base = cfg.GeminiBaseURL
		}
		if cfg.GeminiModel != "" {
			model = cfg.GeminiModel
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an API key is present
func (g *GeminiClient) Configured() bool {
	return g != nil && g.apiKey != ""
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// GenerateContentRequest is the request body for models/{model}:generateContent
type GenerateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

// GenerateContentResponse is a minimal response shape
type GenerateContentResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Text joins the parts of the first candidate
func (r *GenerateContentResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// GenerateContent sends a single-turn prompt to the configured model
func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (*GenerateContentResponse, error) {
	reqBody := GenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var gr GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, err
	}
	if len(gr.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}
	return &gr, nil
}

// GeminiStrategy calls generateContent on the model handle
func GeminiStrategy(g *GeminiClient) Strategy {
	return Strategy{
		Name:      "gemini.generate_content",
		Available: g.Configured,
		Call: func(ctx context.Context, prompt string) (interface{}, error) {
			return g.GenerateContent(ctx, prompt)
		},
	}
}

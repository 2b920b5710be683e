package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrEmptyResponse is returned by a strategy whose call succeeded without any text
var ErrEmptyResponse = errors.New("model returned an empty response")

// Strategy is one way of calling a text-generation model.
// Available is checked before Call; a nil Available means always available.
type Strategy struct {
	Name      string
	Available func() bool
	Call      func(ctx context.Context, prompt string) (interface{}, error)
}

// ResponseCache stores normalized model responses keyed by prompt hash
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
}

// Invoker tries its strategies in order and returns the first non-empty text.
// It never returns an error: total failure yields an empty string.
type Invoker struct {
	strategies []Strategy
	cache      ResponseCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewInvoker creates an Invoker over the given strategies, highest priority first
func NewInvoker(logger *zap.Logger, strategies ...Strategy) *Invoker {
	return &Invoker{strategies: strategies, logger: logger}
}

// WithCache enables response caching. A zero ttl leaves caching disabled.
func (i *Invoker) WithCache(cache ResponseCache, ttl time.Duration) *Invoker {
	if cache != nil && ttl > 0 {
		i.cache = cache
		i.cacheTTL = ttl
	}
	return i
}

// Strategies returns the names of the configured strategies in priority order
func (i *Invoker) Strategies() []string {
	names := make([]string, 0, len(i.strategies))
	for _, s := range i.strategies {
		names = append(names, s.Name)
	}
	return names
}

// Invoke sends prompt through the first strategy that answers
func (i *Invoker) Invoke(ctx context.Context, prompt string) string {
	key := cacheKey(prompt)
	if i.cache != nil {
		if cached, ok := i.cache.Get(ctx, key); ok {
			return cached
		}
	}

	for _, s := range i.strategies {
		if s.Call == nil || (s.Available != nil && !s.Available()) {
			continue
		}
		text, err := i.try(ctx, s, prompt)
		if err != nil {
			if i.logger != nil {
				i.logger.Warn("⚠️ Model strategy failed, trying next",
					zap.String("strategy", s.Name),
					zap.Error(err),
				)
			}
			continue
		}
		if i.cache != nil {
			i.cache.Set(ctx, key, text, i.cacheTTL)
		}
		return text
	}

	if i.logger != nil {
		i.logger.Error("❌ No model strategy produced a response",
			zap.Int("strategies", len(i.strategies)),
		)
	}
	return ""
}

func (i *Invoker) try(ctx context.Context, s Strategy, prompt string) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("strategy %s panicked: %v", s.Name, p)
		}
	}()

	resp, err := s.Call(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = NormalizeResponse(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

type texter interface {
	Text() string
}

type contenter interface {
	Content() string
}

// NormalizeResponse extracts text from the shapes model clients return:
// a Text() method, then a Content() method, then a content/text/output map key,
// then the JSON encoding of a map, then a raw string.
func NormalizeResponse(resp interface{}) string {
	switch r := resp.(type) {
	case nil:
		return ""
	case texter:
		return r.Text()
	case contenter:
		return r.Content()
	case map[string]interface{}:
		for _, k := range []string{"content", "text", "output"} {
			if v, ok := r[k]; ok && v != nil {
				if s, ok := v.(string); ok {
					return s
				}
				return fmt.Sprint(v)
			}
		}
		b, err := json.Marshal(r)
		if err != nil {
			return fmt.Sprint(r)
		}
		return string(b)
	case map[string]string:
		for _, k := range []string{"content", "text", "output"} {
			if v, ok := r[k]; ok {
				return v
			}
		}
		b, _ := json.Marshal(r)
		return string(b)
	case string:
		return r
	case []byte:
		return string(r)
	case fmt.Stringer:
		return r.String()
	default:
		return fmt.Sprint(r)
	}
}

func cacheKey(prompt string) string {
	h := sha256.Sum256([]byte(prompt))
	return "llm:" + hex.EncodeToString(h[:])
}

package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
)

// Analyzer runs the four extractors over one transcript and derives
// participants and duration
type Analyzer struct {
	extractor *Extractor
	logger    *zap.Logger
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(invoker ModelInvoker, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		extractor: NewExtractor(invoker, logger),
		logger:    logger,
	}
}

// Analyze never fails: each field falls back to its neutral value on its own.
// The extractors run concurrently and each writes a disjoint field.
func (a *Analyzer) Analyze(ctx context.Context, text string) entities.AnalysisResult {
	start := time.Now()
	utterances := ExtractUtterances(text)
	result := entities.NewEmptyAnalysis()

	var wg sync.WaitGroup
	run := func(field string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil && a.logger != nil {
					a.logger.Error("❌ Extractor panicked, keeping neutral value",
						zap.String("field", field),
						zap.String("panic", fmt.Sprint(p)),
					)
				}
			}()
			fn()
		}()
	}

	run("summary", func() { result.Summary = a.extractor.ExtractSummary(ctx, utterances) })
	run("action_items", func() { result.ActionItems = a.extractor.ExtractActionItems(ctx, utterances) })
	run("meeting_requests", func() { result.MeetingRequests = a.extractor.ExtractMeetingRequests(ctx, utterances) })
	run("key_decisions", func() { result.KeyDecisions = a.extractor.ExtractKeyDecisions(ctx, utterances) })
	wg.Wait()

	result.Participants = Participants(utterances)
	result.Duration = Duration(utterances)
	result.Normalize()

	if a.logger != nil {
		a.logger.Info("✅ Transcript analyzed",
			zap.Int("utterances", len(utterances)),
			zap.Int("participants", len(result.Participants)),
			zap.Int("action_items", len(result.ActionItems)),
			zap.Int("meeting_requests", len(result.MeetingRequests)),
			zap.Int("key_decisions", len(result.KeyDecisions)),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return result
}

// Participants returns distinct speakers in order of first appearance
func Participants(utterances []entities.Utterance) []string {
	seen := make(map[string]struct{}, len(utterances))
	out := make([]string, 0)
	for _, u := range utterances {
		if _, ok := seen[u.Speaker]; ok {
			continue
		}
		seen[u.Speaker] = struct{}{}
		out = append(out, u.Speaker)
	}
	return out
}

// Duration formats the span between first and last utterance as M:SS.
// Empty, unparseable or backwards spans yield 0:00.
func Duration(utterances []entities.Utterance) string {
	if len(utterances) == 0 {
		return entities.NeutralDuration
	}
	first, err := utterances[0].TimeOfDay()
	if err != nil {
		return entities.NeutralDuration
	}
	last, err := utterances[len(utterances)-1].TimeOfDay()
	if err != nil {
		return entities.NeutralDuration
	}
	secs := int(last.Sub(first) / time.Second)
	if secs <= 0 {
		return entities.NeutralDuration
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

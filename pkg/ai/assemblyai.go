package ai

import (
	"context"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meet-agent/pkg/config"
)

// AssemblyAIClient turns recorded audio into a speaker-labelled transcript
type AssemblyAIClient struct {
	sdk          *aai.Client
	languageCode string
}

// NewAssemblyAIClient creates an AssemblyAI client, or nil when no API key is configured
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	if cfg == nil || cfg.APIKey == "" {
		return nil
	}
	return &AssemblyAIClient{
		sdk:          aai.NewClient(cfg.APIKey),
		languageCode: cfg.LanguageCode,
	}
}

// Transcribe waits for AssemblyAI to transcribe audioURL and renders the result
// as "[HH:MM:SS] Speaker X: text" lines
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioURL string) (string, error) {
	if audioURL == "" {
		return "", fmt.Errorf("audio URL is required")
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if c.languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(c.languageCode)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		return "", fmt.Errorf("assemblyai transcription failed: %s", deref(transcript.Error))
	}

	return RenderUtterances(transcript.Utterances), nil
}

// RenderUtterances formats AssemblyAI utterances as transcript lines
func RenderUtterances(utterances []aai.TranscriptUtterance) string {
	lines := make([]string, 0, len(utterances))
	for _, u := range utterances {
		text := strings.TrimSpace(deref(u.Text))
		if text == "" {
			continue
		}
		var startMs int64
		if u.Start != nil {
			startMs = *u.Start
		}
		lines = append(lines, fmt.Sprintf("[%s] Speaker %s: %s", formatClock(startMs), deref(u.Speaker), text))
	}
	return strings.Join(lines, "\n")
}

// formatClock renders milliseconds as HH:MM:SS
func formatClock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

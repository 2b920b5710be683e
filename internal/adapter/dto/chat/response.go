package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
)

// SessionResponse is returned when a conversation starts
type SessionResponse struct {
	SessionID      uuid.UUID `json:"session_id"`
	Token          string    `json:"token"`
	ExpiresIn      int64     `json:"expires_in"`
	WelcomeMessage string    `json:"welcome_message"`
}

// AnalysisResponse is the outcome of one processed transcript
type AnalysisResponse struct {
	Analysis    entities.AnalysisResult   `json:"analysis"`
	Suggestions []entities.SlotSuggestion `json:"suggestions"`
	NotesPageID string                    `json:"notes_page_id,omitempty"`
	ArchiveID   *uuid.UUID                `json:"archive_id,omitempty"`
}

// MessageResponse is the assistant reply to one turn
type MessageResponse struct {
	Reply string `json:"reply"`
}

// MessagesResponse is the conversation history
type MessagesResponse struct {
	Messages    []entities.ConversationMessage `json:"messages"`
	HasAnalysis bool                           `json:"has_analysis"`
}

// ArchivedAnalysis is one row of the analysis history
type ArchivedAnalysis struct {
	ID               uuid.UUID               `json:"id"`
	Source           string                  `json:"source"`
	TranscriptObject string                  `json:"transcript_object,omitempty"`
	Analysis         entities.AnalysisResult `json:"analysis"`
	CreatedAt        time.Time               `json:"created_at"`
}

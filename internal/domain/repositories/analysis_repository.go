package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
)

// AnalysisRepository defines the interface for the analysis archive
type AnalysisRepository interface {
	// Create archives one analysis
	Create(ctx context.Context, record *entities.AnalysisRecord) error

	// FindByID finds an archived analysis by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisRecord, error)

	// ListBySession returns a session's analyses, newest first
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*entities.AnalysisRecord, error)

	// DeleteBySession removes every analysis of a session
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meet-agent/internal/domain/entities"
)

// AnalysisRepository implements the analysis archive using GORM
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{
		db: db,
	}
}

// Create archives one analysis
func (r *AnalysisRepository) Create(ctx context.Context, record *entities.AnalysisRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}
	return nil
}

// FindByID finds an archived analysis by ID
func (r *AnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisRecord, error) {
	var record entities.AnalysisRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to find analysis by ID: %w", err)
	}
	return &record, nil
}

// ListBySession returns a session's analyses, newest first. A non-positive limit means no limit.
func (r *AnalysisRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]*entities.AnalysisRecord, error) {
	records := make([]*entities.AnalysisRecord, 0)
	q := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list analyses by session: %w", err)
	}
	return records, nil
}

// DeleteBySession removes every analysis of a session
func (r *AnalysisRepository) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&entities.AnalysisRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete analyses by session: %w", err)
	}
	return nil
}

package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ErrAnalysisNotFound is returned when an archived analysis does not exist
var ErrAnalysisNotFound = errors.New("analysis not found")

// TranscriptSource records how a transcript reached the service
type TranscriptSource string

const (
	TranscriptSourceText  TranscriptSource = "text"  // Uploaded or posted as text
	TranscriptSourceAudio TranscriptSource = "audio" // Produced by speech-to-text
)

// AnalysisRecord is the archived copy of one processed transcript
type AnalysisRecord struct {
	ID               uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID        uuid.UUID        `json:"session_id" gorm:"type:uuid;not null;index"`
	Source           TranscriptSource `json:"source" gorm:"type:varchar(20);not null;default:'text'"`
	TranscriptObject *string          `json:"transcript_object,omitempty" gorm:"type:text"` // object storage key of the raw transcript
	Summary          string           `json:"summary" gorm:"type:text"`
	Duration         string           `json:"duration" gorm:"type:varchar(20)"`
	ParticipantCount int              `json:"participant_count" gorm:"not null;default:0"`
	Result           datatypes.JSON   `json:"result" gorm:"type:jsonb;not null"`
	CreatedAt        time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

// NewAnalysisRecord snapshots an analysis for archiving
func NewAnalysisRecord(sessionID uuid.UUID, source TranscriptSource, result AnalysisResult) (*AnalysisRecord, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	return &AnalysisRecord{
		ID:               uuid.New(),
		SessionID:        sessionID,
		Source:           source,
		Summary:          result.Summary.Summary,
		Duration:         result.Duration,
		ParticipantCount: len(result.Participants),
		Result:           datatypes.JSON(raw),
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// Analysis decodes the archived result
func (r *AnalysisRecord) Analysis() (AnalysisResult, error) {
	var res AnalysisResult
	if err := json.Unmarshal(r.Result, &res); err != nil {
		return AnalysisResult{}, fmt.Errorf("failed to decode archived analysis: %w", err)
	}
	res.Normalize()
	return res, nil
}

package presenter

import (
	"go.uber.org/zap"

	chatDTO "github.com/johnquangdev/meet-agent/internal/adapter/dto/chat"
	"github.com/johnquangdev/meet-agent/internal/domain/entities"
	"github.com/johnquangdev/meet-agent/internal/usecase/meeting"
)

// ToAnalysisResponse converts a workflow outcome to AnalysisResponse DTO
func ToAnalysisResponse(out meeting.Outcome) chatDTO.AnalysisResponse {
	suggestions := out.Suggestions
	if suggestions == nil {
		suggestions = []entities.SlotSuggestion{}
	}
	return chatDTO.AnalysisResponse{
		Analysis:    out.Analysis,
		Suggestions: suggestions,
		NotesPageID: out.NotesPageID,
		ArchiveID:   out.ArchiveID,
	}
}

// ToArchivedAnalysis converts an AnalysisRecord entity to ArchivedAnalysis DTO
func ToArchivedAnalysis(r *entities.AnalysisRecord) (*chatDTO.ArchivedAnalysis, error) {
	if r == nil {
		return nil, nil
	}

	a, err := r.Analysis()
	if err != nil {
		return nil, err
	}

	response := &chatDTO.ArchivedAnalysis{
		ID:        r.ID,
		Source:    string(r.Source),
		Analysis:  a,
		CreatedAt: r.CreatedAt,
	}
	if r.TranscriptObject != nil {
		response.TranscriptObject = *r.TranscriptObject
	}
	return response, nil
}

// ToArchivedAnalyses converts records, skipping rows whose stored result no longer decodes
func ToArchivedAnalyses(records []*entities.AnalysisRecord, logger *zap.Logger) []chatDTO.ArchivedAnalysis {
	out := make([]chatDTO.ArchivedAnalysis, 0, len(records))
	for _, r := range records {
		row, err := ToArchivedAnalysis(r)
		if err != nil {
			if logger != nil {
				logger.Warn("⚠️ Skipping unreadable archived analysis", zap.String("record_id", r.ID.String()), zap.Error(err))
			}
			continue
		}
		if row != nil {
			out = append(out, *row)
		}
	}
	return out
}

package service

import (
	"context"
	"strings"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/llm"
	"campaign-hub/internal/repository"
)

// NoteIndexService genera embeddings para notas de sesion y resuelve
// busquedas semanticas dentro de una campana.
type NoteIndexService struct {
	logger    *zap.Logger
	llmClient llm.Client
	notes     repository.NoteRepository
}

func NewNoteIndexService(logger *zap.Logger, llmClient llm.Client, notes repository.NoteRepository) *NoteIndexService {
	return &NoteIndexService{
		logger:    logger,
		llmClient: llmClient,
		notes:     notes,
	}
}

// IndexNote calcula y guarda el embedding de una nota. Corre en background
// despues de crear la nota; las fallas se loguean y no afectan al autor.
func (s *NoteIndexService) IndexNote(ctx context.Context, note domain.SessionNote) {
	if s == nil || s.llmClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	embedding, err := s.llmClient.Embed(ctx, note.Content)
	if err != nil {
		s.logger.Warn("note embedding failed", zap.Error(err), zap.String("note_id", note.ID))
		return
	}
	if err := s.notes.UpdateEmbedding(ctx, note.ID, pgvector.NewVector(embedding)); err != nil {
		s.logger.Warn("note embedding persist failed", zap.Error(err), zap.String("note_id", note.ID))
	}
}

// SearchNotes devuelve las notas publicas de la campana mas cercanas al query.
func (s *NoteIndexService) SearchNotes(ctx context.Context, campaignID, query string, k int) ([]domain.SessionNote, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, newValidationError("q", "must not be empty")
	}
	if s.llmClient == nil {
		return nil, nil
	}

	embedding, err := s.llmClient.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.notes.SearchByEmbedding(ctx, campaignID, pgvector.NewVector(embedding), k)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/llm"
	"campaign-hub/internal/repository"
)

var ErrNoNotesForRecap = errors.New("session has no notes to recap")

// RecapService genera un resumen narrativo de una sesion terminada a partir
// de sus notas acumuladas.
type RecapService struct {
	llmClient llm.Client
	sessions  repository.SessionRepository
	notes     repository.NoteRepository
}

func NewRecapService(llmClient llm.Client, sessions repository.SessionRepository, notes repository.NoteRepository) *RecapService {
	return &RecapService{
		llmClient: llmClient,
		sessions:  sessions,
		notes:     notes,
	}
}

// GenerateRecap arma el prompt con las notas publicas de la sesion y pide el
// resumen al LLM. Solo aplica a sesiones ENDED de la campana indicada.
func (s *RecapService) GenerateRecap(ctx context.Context, campaignID, sessionID string) (string, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	if session.CampaignID != campaignID {
		return "", ErrSessionNotFound
	}
	if session.Status != domain.SessionEnded {
		return "", ErrInvalidStateTransition
	}

	notes, err := s.notes.ListBySessionID(ctx, session.ID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, note := range notes {
		if !note.IsPublic {
			continue
		}
		fmt.Fprintf(&sb, "- [%s] %s\n", note.NoteType, note.Content)
	}
	if sb.Len() == 0 {
		return "", ErrNoNotesForRecap
	}

	prompt := fmt.Sprintf(
		"You are the chronicler of a tabletop RPG campaign. Write a short narrative recap (2-3 paragraphs, past tense) of the game session below based on the players' notes.\n\nSession notes:\n%s",
		sb.String(),
	)
	return s.llmClient.Generate(ctx, prompt)
}

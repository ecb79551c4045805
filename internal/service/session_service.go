package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidStateTransition indica una operacion contra una sesion en el
	// estado de ciclo de vida equivocado. Nunca se reintenta automaticamente.
	ErrInvalidStateTransition = errors.New("invalid session state transition")
)

// SessionService aplica la maquina de estados de sesiones de juego.
// Estados: PENDING -> ACTIVE -> ENDED, sin regresiones ni saltos.
type SessionService struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	notes    repository.NoteRepository
	fanout   *FanoutService
	indexer  *NoteIndexService
}

func NewSessionService(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	notes repository.NoteRepository,
	fanout *FanoutService,
	indexer *NoteIndexService,
) *SessionService {
	return &SessionService{
		logger:   logger,
		sessions: sessions,
		notes:    notes,
		fanout:   fanout,
		indexer:  indexer,
	}
}

// CreateSession crea una sesion en PENDING dentro de una campana.
func (s *SessionService) CreateSession(ctx context.Context, campaignID, title string) (domain.GameSession, error) {
	session := domain.GameSession{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		Title:      strings.TrimSpace(title),
		Status:     domain.SessionPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.GameSession{}, err
	}
	return session, nil
}

// StartSession pasa una sesion PENDING a ACTIVE fijando sus participantes.
// La lista de participantes se fija exactamente una vez y no puede ser vacia.
// Un segundo start falla con ErrInvalidStateTransition sin tocar la lista.
func (s *SessionService) StartSession(ctx context.Context, campaignID, sessionID string, characterIDs []string) (domain.GameSession, error) {
	participants := make([]string, 0, len(characterIDs))
	for _, id := range characterIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			participants = append(participants, trimmed)
		}
	}
	if len(participants) == 0 {
		return domain.GameSession{}, newValidationError("character_ids", "must not be empty")
	}

	session, err := s.getSession(ctx, campaignID, sessionID)
	if err != nil {
		return domain.GameSession{}, err
	}

	startedAt := time.Now().UTC()
	ok, err := s.sessions.StartIfPending(ctx, session.ID, participants, startedAt)
	if err != nil {
		return domain.GameSession{}, err
	}
	if !ok {
		return domain.GameSession{}, ErrInvalidStateTransition
	}

	session.Status = domain.SessionActive
	session.ParticipantIDs = participants
	session.StartedAt = &startedAt

	s.fanout.Deliver(ctx, session.CampaignID, domain.Event{
		Kind:      domain.EventSessionStarted,
		SubjectID: session.ID,
		Payload: map[string]any{
			"session_id":      session.ID,
			"participant_ids": participants,
		},
		AffectedUserIDs: nil,
	})

	return session, nil
}

// EndSession pasa una sesion ACTIVE a ENDED aplicando el resumen de
// recompensas. Los numericos negativos se rechazan antes de persistir;
// los ausentes quedan en cero. Los campos de resumen son inmutables despues.
func (s *SessionService) EndSession(ctx context.Context, campaignID, sessionID string, summary domain.SessionSummary) (domain.GameSession, error) {
	if summary.ExperienceAwarded < 0 {
		return domain.GameSession{}, newValidationError("experience_awarded", "must not be negative")
	}
	if summary.GoldAwarded < 0 {
		return domain.GameSession{}, newValidationError("gold_awarded", "must not be negative")
	}
	if summary.ItemsAwarded == nil {
		summary.ItemsAwarded = []string{}
	}
	summary.Notes = strings.TrimSpace(summary.Notes)

	session, err := s.getSession(ctx, campaignID, sessionID)
	if err != nil {
		return domain.GameSession{}, err
	}

	endedAt := time.Now().UTC()
	ok, err := s.sessions.EndIfActive(ctx, session.ID, summary, endedAt)
	if err != nil {
		return domain.GameSession{}, err
	}
	if !ok {
		return domain.GameSession{}, ErrInvalidStateTransition
	}

	session.Status = domain.SessionEnded
	session.ExperienceAwarded = summary.ExperienceAwarded
	session.GoldAwarded = summary.GoldAwarded
	session.ItemsAwarded = summary.ItemsAwarded
	session.SummaryNotes = summary.Notes
	session.EndedAt = &endedAt

	s.fanout.Deliver(ctx, session.CampaignID, domain.Event{
		Kind:      domain.EventSessionEnded,
		SubjectID: session.ID,
		Payload: map[string]any{
			"session_id":         session.ID,
			"experience_awarded": summary.ExperienceAwarded,
			"gold_awarded":       summary.GoldAwarded,
		},
		AffectedUserIDs: nil,
	})

	return session, nil
}

// AddSessionNote agrega una nota inmutable a la sesion. Se permite en
// cualquier estado de ciclo de vida. El contenido no puede quedar vacio
// despues de recortar espacios; tipo y visibilidad tienen defaults.
func (s *SessionService) AddSessionNote(ctx context.Context, campaignID, sessionID, authorID, content string, noteType *string, isPublic *bool) (domain.SessionNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.SessionNote{}, newValidationError("content", "must not be empty")
	}

	resolvedType := domain.NoteTypeGeneral
	if noteType != nil && strings.TrimSpace(*noteType) != "" {
		resolvedType = strings.TrimSpace(*noteType)
	}
	resolvedPublic := true
	if isPublic != nil {
		resolvedPublic = *isPublic
	}

	session, err := s.getSession(ctx, campaignID, sessionID)
	if err != nil {
		return domain.SessionNote{}, err
	}

	note := domain.SessionNote{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		AuthorID:  authorID,
		Content:   content,
		NoteType:  resolvedType,
		IsPublic:  resolvedPublic,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return domain.SessionNote{}, err
	}

	// Embedding asincrono: no bloquea al autor de la nota.
	if s.indexer != nil {
		go s.indexer.IndexNote(context.Background(), note)
	}

	s.fanout.Deliver(ctx, session.CampaignID, domain.Event{
		Kind:      domain.EventNoteAdded,
		SubjectID: session.ID,
		Payload: map[string]any{
			"session_id": session.ID,
			"note_id":    note.ID,
			"author_id":  note.AuthorID,
			"note_type":  note.NoteType,
		},
		AffectedUserIDs: nil,
	})

	return note, nil
}

// GetSession devuelve la sesion con sus notas adjuntas en orden de creacion.
func (s *SessionService) GetSession(ctx context.Context, campaignID, sessionID string) (domain.GameSession, []domain.SessionNote, error) {
	session, err := s.getSession(ctx, campaignID, sessionID)
	if err != nil {
		return domain.GameSession{}, nil, err
	}
	notes, err := s.notes.ListBySessionID(ctx, session.ID)
	if err != nil {
		return domain.GameSession{}, nil, err
	}
	return session, notes, nil
}

func (s *SessionService) ListSessions(ctx context.Context, campaignID string) ([]domain.GameSession, error) {
	return s.sessions.ListByCampaignID(ctx, campaignID)
}

// getSession resuelve la sesion dentro de la campana indicada. Una sesion de
// otra campana se trata como inexistente: la autorizacion del caller solo
// cubre la campana que lo admitio.
func (s *SessionService) getSession(ctx context.Context, campaignID, sessionID string) (domain.GameSession, error) {
	session, err := s.sessions.GetByID(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.GameSession{}, ErrSessionNotFound
		}
		return domain.GameSession{}, err
	}
	if session.CampaignID != campaignID {
		return domain.GameSession{}, ErrSessionNotFound
	}
	return session, nil
}

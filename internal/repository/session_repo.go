package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-hub/internal/domain"
)

// SessionRepository persiste sesiones de juego. Las transiciones de estado
// usan UPDATE condicional para que chequeo y escritura sean atomicos en la
// base y no haya carrera check-then-act entre requests concurrentes.
type SessionRepository interface {
	Create(ctx context.Context, session domain.GameSession) error
	GetByID(ctx context.Context, id string) (domain.GameSession, error)
	ListByCampaignID(ctx context.Context, campaignID string) ([]domain.GameSession, error)
	// StartIfPending pasa la sesion a ACTIVE solo si sigue en PENDING.
	// Devuelve false si la sesion no estaba en PENDING.
	StartIfPending(ctx context.Context, id string, participantIDs []string, startedAt time.Time) (bool, error)
	// EndIfActive pasa la sesion a ENDED solo si sigue en ACTIVE.
	// Devuelve false si la sesion no estaba en ACTIVE.
	EndIfActive(ctx context.Context, id string, summary domain.SessionSummary, endedAt time.Time) (bool, error)
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.GameSession) error {
	const query = `
		INSERT INTO game_sessions (id, campaign_id, title, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.CampaignID,
		session.Title,
		session.Status,
		session.CreatedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.GameSession, error) {
	const query = `
		SELECT id, campaign_id, title, status, participant_ids, experience_awarded,
		       gold_awarded, items_awarded, summary_notes, started_at, ended_at, created_at
		FROM game_sessions
		WHERE id = $1
	`
	var s domain.GameSession
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.CampaignID,
		&s.Title,
		&s.Status,
		&s.ParticipantIDs,
		&s.ExperienceAwarded,
		&s.GoldAwarded,
		&s.ItemsAwarded,
		&s.SummaryNotes,
		&s.StartedAt,
		&s.EndedAt,
		&s.CreatedAt,
	)
	return s, err
}

func (r *PgSessionRepository) ListByCampaignID(ctx context.Context, campaignID string) ([]domain.GameSession, error) {
	const query = `
		SELECT id, campaign_id, title, status, participant_ids, experience_awarded,
		       gold_awarded, items_awarded, summary_notes, started_at, ended_at, created_at
		FROM game_sessions
		WHERE campaign_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.GameSession
	for rows.Next() {
		var s domain.GameSession
		if err := rows.Scan(
			&s.ID,
			&s.CampaignID,
			&s.Title,
			&s.Status,
			&s.ParticipantIDs,
			&s.ExperienceAwarded,
			&s.GoldAwarded,
			&s.ItemsAwarded,
			&s.SummaryNotes,
			&s.StartedAt,
			&s.EndedAt,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *PgSessionRepository) StartIfPending(ctx context.Context, id string, participantIDs []string, startedAt time.Time) (bool, error) {
	const query = `
		UPDATE game_sessions
		SET status = $1, participant_ids = $2, started_at = $3
		WHERE id = $4 AND status = $5
	`
	tag, err := r.pool.Exec(ctx, query,
		domain.SessionActive,
		participantIDs,
		startedAt,
		id,
		domain.SessionPending,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgSessionRepository) EndIfActive(ctx context.Context, id string, summary domain.SessionSummary, endedAt time.Time) (bool, error) {
	const query = `
		UPDATE game_sessions
		SET status = $1, experience_awarded = $2, gold_awarded = $3,
		    items_awarded = $4, summary_notes = $5, ended_at = $6
		WHERE id = $7 AND status = $8
	`
	tag, err := r.pool.Exec(ctx, query,
		domain.SessionEnded,
		summary.ExperienceAwarded,
		summary.GoldAwarded,
		summary.ItemsAwarded,
		summary.Notes,
		endedAt,
		id,
		domain.SessionActive,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"campaign-hub/internal/domain"
)

type NoteRepository interface {
	Create(ctx context.Context, note domain.SessionNote) error
	ListBySessionID(ctx context.Context, sessionID string) ([]domain.SessionNote, error)
	// UpdateEmbedding guarda el embedding generado de forma asincrona.
	UpdateEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error
	// SearchByEmbedding devuelve las k notas publicas mas cercanas al query
	// dentro de una campana, ordenadas por distancia coseno.
	SearchByEmbedding(ctx context.Context, campaignID string, queryEmbedding pgvector.Vector, k int) ([]domain.SessionNote, error)
}

type PgNoteRepository struct {
	pool *pgxpool.Pool
}

func NewPgNoteRepository(pool *pgxpool.Pool) *PgNoteRepository {
	return &PgNoteRepository{pool: pool}
}

func (r *PgNoteRepository) Create(ctx context.Context, note domain.SessionNote) error {
	const query = `
		INSERT INTO session_notes (id, session_id, author_id, content, note_type, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		note.ID,
		note.SessionID,
		note.AuthorID,
		note.Content,
		note.NoteType,
		note.IsPublic,
		note.CreatedAt,
	)
	return err
}

func (r *PgNoteRepository) ListBySessionID(ctx context.Context, sessionID string) ([]domain.SessionNote, error) {
	const query = `
		SELECT id, session_id, author_id, content, note_type, is_public, created_at
		FROM session_notes
		WHERE session_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.SessionNote
	for rows.Next() {
		var n domain.SessionNote
		if err := rows.Scan(
			&n.ID,
			&n.SessionID,
			&n.AuthorID,
			&n.Content,
			&n.NoteType,
			&n.IsPublic,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *PgNoteRepository) UpdateEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error {
	const query = `
		UPDATE session_notes
		SET embedding = $1
		WHERE id = $2
	`
	_, err := r.pool.Exec(ctx, query, embedding, id)
	return err
}

func (r *PgNoteRepository) SearchByEmbedding(ctx context.Context, campaignID string, queryEmbedding pgvector.Vector, k int) ([]domain.SessionNote, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT n.id, n.session_id, n.author_id, n.content, n.note_type, n.is_public, n.created_at
		FROM session_notes n
		JOIN game_sessions s ON s.id = n.session_id
		WHERE s.campaign_id = $1 AND n.is_public AND n.embedding IS NOT NULL
		ORDER BY n.embedding <=> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, campaignID, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.SessionNote
	for rows.Next() {
		var n domain.SessionNote
		if err := rows.Scan(
			&n.ID,
			&n.SessionID,
			&n.AuthorID,
			&n.Content,
			&n.NoteType,
			&n.IsPublic,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

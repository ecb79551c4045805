package domain

import "time"

// SessionStatus es el estado de ciclo de vida de una sesion de juego.
// Las transiciones son monotonas: PENDING -> ACTIVE -> ENDED.
type SessionStatus string

const (
	SessionPending SessionStatus = "PENDING"
	SessionActive  SessionStatus = "ACTIVE"
	SessionEnded   SessionStatus = "ENDED"
)

// GameSession es una instancia de juego dentro de una campana.
// Los campos de resumen quedan vacios hasta ENDED y son inmutables despues.
type GameSession struct {
	ID                string        `json:"id"`
	CampaignID        string        `json:"campaign_id"`
	Title             string        `json:"title,omitempty"`
	Status            SessionStatus `json:"status"`
	ParticipantIDs    []string      `json:"participant_ids,omitempty"`
	ExperienceAwarded int           `json:"experience_awarded"`
	GoldAwarded       int           `json:"gold_awarded"`
	ItemsAwarded      []string      `json:"items_awarded,omitempty"`
	SummaryNotes      string        `json:"summary_notes,omitempty"`
	StartedAt         *time.Time    `json:"started_at,omitempty"`
	EndedAt           *time.Time    `json:"ended_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
}

// SessionSummary agrupa las recompensas aplicadas al terminar una sesion.
type SessionSummary struct {
	ExperienceAwarded int      `json:"experience_awarded"`
	GoldAwarded       int      `json:"gold_awarded"`
	ItemsAwarded      []string `json:"items_awarded,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

// NoteTypeGeneral es la categoria por defecto para notas sin tipo.
const NoteTypeGeneral = "general"

// SessionNote es una anotacion inmutable adjunta a una sesion.
type SessionNote struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	NoteType  string    `json:"note_type"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

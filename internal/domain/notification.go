package domain

import "time"

// Tipos de evento que atraviesan el fanout de notificaciones.
const (
	EventSessionStarted = "session.started"
	EventSessionEnded   = "session.ended"
	EventNoteAdded      = "session.note_added"
	EventZoneChanged    = "character.zone_changed"
)

// Event describe un cambio de ciclo de vida o de posicion a difundir.
type Event struct {
	Kind            string         `json:"kind"`
	SubjectID       string         `json:"subject_id"`
	Payload         map[string]any `json:"payload,omitempty"`
	AffectedUserIDs []string       `json:"-"`
}

// Notification es el registro durable que recibe cada usuario afectado.
// No hay garantia de idempotencia: reintentos pueden duplicar registros.
type Notification struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	CampaignID string         `json:"campaign_id"`
	Kind       string         `json:"kind"`
	SubjectID  string         `json:"subject_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	ReadAt     *time.Time     `json:"read_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

package domain

import "time"

type Character struct {
	ID           string         `json:"id"`
	CampaignID   string         `json:"campaign_id"`
	OwnerID      string         `json:"owner_id"`
	Name         string         `json:"name"`
	Class        string         `json:"class,omitempty"`
	Level        int            `json:"level"`
	Zone         Zone           `json:"zone"`
	ZoneMetadata map[string]any `json:"zone_metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ControlledBy indica si el usuario controla este personaje.
func (c Character) ControlledBy(userID string) bool {
	return c.OwnerID == userID
}

package domain

import "time"

type Campaign struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	GameSystem  string    `json:"game_system,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Role representa la relacion de un usuario con una campana.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// IsAdmin indica si el rol habilita operaciones administrativas.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Membership vincula un usuario con una campana; unico por (user, campaign).
type Membership struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CampaignID string    `json:"campaign_id"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

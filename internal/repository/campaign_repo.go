package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-hub/internal/domain"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign domain.Campaign) error
	GetByID(ctx context.Context, id string) (domain.Campaign, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Campaign, error)
}

type PgCampaignRepository struct {
	pool *pgxpool.Pool
}

func NewPgCampaignRepository(pool *pgxpool.Pool) *PgCampaignRepository {
	return &PgCampaignRepository{pool: pool}
}

func (r *PgCampaignRepository) Create(ctx context.Context, campaign domain.Campaign) error {
	const query = `
		INSERT INTO campaigns (id, name, description, game_system, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		campaign.ID,
		campaign.Name,
		campaign.Description,
		campaign.GameSystem,
		campaign.OwnerID,
		campaign.CreatedAt,
	)
	return err
}

func (r *PgCampaignRepository) GetByID(ctx context.Context, id string) (domain.Campaign, error) {
	const query = `
		SELECT id, name, description, game_system, owner_id, created_at
		FROM campaigns
		WHERE id = $1
	`
	var c domain.Campaign
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.GameSystem,
		&c.OwnerID,
		&c.CreatedAt,
	)
	return c, err
}

func (r *PgCampaignRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Campaign, error) {
	const query = `
		SELECT c.id, c.name, c.description, c.game_system, c.owner_id, c.created_at
		FROM campaigns c
		JOIN memberships m ON m.campaign_id = c.id
		WHERE m.user_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.GameSystem,
			&c.OwnerID,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return campaigns, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-hub/internal/domain"
)

type CharacterRepository interface {
	Create(ctx context.Context, character domain.Character) error
	GetByID(ctx context.Context, id string) (domain.Character, error)
	ListByCampaignID(ctx context.Context, campaignID string) ([]domain.Character, error)
	// UpdateZone sobreescribe zona y metadata del personaje (last-write-wins).
	UpdateZone(ctx context.Context, id string, position domain.Position) error
}

type PgCharacterRepository struct {
	pool *pgxpool.Pool
}

func NewPgCharacterRepository(pool *pgxpool.Pool) *PgCharacterRepository {
	return &PgCharacterRepository{pool: pool}
}

func (r *PgCharacterRepository) Create(ctx context.Context, character domain.Character) error {
	const query = `
		INSERT INTO characters (id, campaign_id, owner_id, name, class, level, zone, zone_metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		character.ID,
		character.CampaignID,
		character.OwnerID,
		character.Name,
		character.Class,
		character.Level,
		character.Zone,
		character.ZoneMetadata,
		character.CreatedAt,
		character.UpdatedAt,
	)
	return err
}

func (r *PgCharacterRepository) GetByID(ctx context.Context, id string) (domain.Character, error) {
	const query = `
		SELECT id, campaign_id, owner_id, name, class, level, COALESCE(zone, ''), zone_metadata, created_at, updated_at
		FROM characters
		WHERE id = $1
	`
	var c domain.Character
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.CampaignID,
		&c.OwnerID,
		&c.Name,
		&c.Class,
		&c.Level,
		&c.Zone,
		&c.ZoneMetadata,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *PgCharacterRepository) ListByCampaignID(ctx context.Context, campaignID string) ([]domain.Character, error) {
	const query = `
		SELECT id, campaign_id, owner_id, name, class, level, COALESCE(zone, ''), zone_metadata, created_at, updated_at
		FROM characters
		WHERE campaign_id = $1
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chars []domain.Character
	for rows.Next() {
		var c domain.Character
		if err := rows.Scan(
			&c.ID,
			&c.CampaignID,
			&c.OwnerID,
			&c.Name,
			&c.Class,
			&c.Level,
			&c.Zone,
			&c.ZoneMetadata,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chars, nil
}

func (r *PgCharacterRepository) UpdateZone(ctx context.Context, id string, position domain.Position) error {
	const query = `
		UPDATE characters
		SET zone = $1, zone_metadata = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.pool.Exec(ctx, query,
		position.Zone,
		position.Metadata,
		id,
	)
	return err
}

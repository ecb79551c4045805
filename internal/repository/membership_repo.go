package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-hub/internal/domain"
)

// MembershipRepository resuelve membresias; (user_id, campaign_id) es unico.
type MembershipRepository interface {
	Create(ctx context.Context, membership domain.Membership) error
	Get(ctx context.Context, userID, campaignID string) (domain.Membership, error)
	ListByCampaignID(ctx context.Context, campaignID string) ([]domain.Membership, error)
}

type PgMembershipRepository struct {
	pool *pgxpool.Pool
}

func NewPgMembershipRepository(pool *pgxpool.Pool) *PgMembershipRepository {
	return &PgMembershipRepository{pool: pool}
}

func (r *PgMembershipRepository) Create(ctx context.Context, membership domain.Membership) error {
	const query = `
		INSERT INTO memberships (id, user_id, campaign_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		membership.ID,
		membership.UserID,
		membership.CampaignID,
		membership.Role,
		membership.CreatedAt,
	)
	return err
}

func (r *PgMembershipRepository) Get(ctx context.Context, userID, campaignID string) (domain.Membership, error) {
	const query = `
		SELECT id, user_id, campaign_id, role, created_at
		FROM memberships
		WHERE user_id = $1 AND campaign_id = $2
	`
	var m domain.Membership
	err := r.pool.QueryRow(ctx, query, userID, campaignID).Scan(
		&m.ID,
		&m.UserID,
		&m.CampaignID,
		&m.Role,
		&m.CreatedAt,
	)
	return m, err
}

func (r *PgMembershipRepository) ListByCampaignID(ctx context.Context, campaignID string) ([]domain.Membership, error) {
	const query = `
		SELECT id, user_id, campaign_id, role, created_at
		FROM memberships
		WHERE campaign_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.CampaignID,
			&m.Role,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return memberships, nil
}

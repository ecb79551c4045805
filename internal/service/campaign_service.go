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
	"campaign-hub/internal/email"
	"campaign-hub/internal/repository"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrNotMember        = errors.New("not a campaign member")
	ErrAlreadyMember    = errors.New("already a campaign member")
	ErrEmailSendFailure = errors.New("email send failed")
)

// CampaignService coordina campanas y membresias.
type CampaignService struct {
	logger      *zap.Logger
	campaigns   repository.CampaignRepository
	memberships repository.MembershipRepository
	emailSender email.Sender
	baseURL     string
}

func NewCampaignService(
	logger *zap.Logger,
	campaigns repository.CampaignRepository,
	memberships repository.MembershipRepository,
	emailSender email.Sender,
	baseURL string,
) *CampaignService {
	return &CampaignService{
		logger:      logger,
		campaigns:   campaigns,
		memberships: memberships,
		emailSender: emailSender,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// CreateCampaign crea la campana y registra al creador como ADMIN.
func (s *CampaignService) CreateCampaign(ctx context.Context, ownerID, name, description, gameSystem string) (domain.Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Campaign{}, newValidationError("name", "must not be empty")
	}

	now := time.Now().UTC()
	campaign := domain.Campaign{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		GameSystem:  strings.TrimSpace(gameSystem),
		OwnerID:     ownerID,
		CreatedAt:   now,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return domain.Campaign{}, err
	}

	membership := domain.Membership{
		ID:         uuid.NewString(),
		UserID:     ownerID,
		CampaignID: campaign.ID,
		Role:       domain.RoleAdmin,
		CreatedAt:  now,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return domain.Campaign{}, err
	}

	return campaign, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id string) (domain.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Campaign{}, ErrCampaignNotFound
		}
		return domain.Campaign{}, err
	}
	return campaign, nil
}

func (s *CampaignService) ListCampaigns(ctx context.Context, userID string) ([]domain.Campaign, error) {
	return s.campaigns.ListByUserID(ctx, userID)
}

// Role resuelve el rol del usuario en la campana; ErrNotMember si no tiene.
func (s *CampaignService) Role(ctx context.Context, userID, campaignID string) (domain.Role, error) {
	membership, err := s.memberships.Get(ctx, userID, campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotMember
		}
		return "", err
	}
	return membership.Role, nil
}

// Join registra al usuario como MEMBER de la campana.
func (s *CampaignService) Join(ctx context.Context, userID, campaignID string) (domain.Membership, error) {
	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		return domain.Membership{}, err
	}
	if _, err := s.memberships.Get(ctx, userID, campaignID); err == nil {
		return domain.Membership{}, ErrAlreadyMember
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Membership{}, err
	}

	membership := domain.Membership{
		ID:         uuid.NewString(),
		UserID:     userID,
		CampaignID: campaignID,
		Role:       domain.RoleMember,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return domain.Membership{}, err
	}
	return membership, nil
}

// Invite envia una invitacion por correo a unirse a la campana.
func (s *CampaignService) Invite(ctx context.Context, campaignID, toEmail, inviterName string) error {
	toEmail = strings.ToLower(strings.TrimSpace(toEmail))
	if toEmail == "" {
		return newValidationError("email", "must not be empty")
	}

	campaign, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}

	if s.emailSender == nil {
		return ErrEmailSendFailure
	}
	joinURL := s.baseURL + "/campaigns/" + campaign.ID + "/join"
	if err := s.emailSender.SendCampaignInvite(ctx, toEmail, campaign.Name, inviterName, joinURL); err != nil {
		if s.logger != nil {
			s.logger.Warn("send campaign invite failed", zap.Error(err), zap.String("email", toEmail))
		}
		return ErrEmailSendFailure
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/realtime"
	"campaign-hub/internal/repository"
)

// FanoutService traduce eventos de ciclo de vida y posicion en registros
// durables de notificacion mas un broadcast realtime por campana.
//
// Ambos canales son best-effort independientes: una falla al publicar no
// revierte los registros durables y una falla al escribir un registro no
// frena el publish. No hay idempotencia; un reintento del evento puede
// duplicar registros (limitacion aceptada y documentada).
type FanoutService struct {
	logger        *zap.Logger
	notifications repository.NotificationRepository
	memberships   repository.MembershipRepository
	publisher     realtime.Publisher
}

func NewFanoutService(
	logger *zap.Logger,
	notifications repository.NotificationRepository,
	memberships repository.MembershipRepository,
	publisher realtime.Publisher,
) *FanoutService {
	if publisher == nil {
		publisher = realtime.NewDisabledPublisher()
	}
	return &FanoutService{
		logger:        logger,
		notifications: notifications,
		memberships:   memberships,
		publisher:     publisher,
	}
}

// Deliver entrega el evento: un registro por usuario afectado y un publish
// al canal de la campana. Si AffectedUserIDs viene vacio, el evento apunta a
// todos los miembros de la campana. Nunca devuelve error; todo se loguea.
func (f *FanoutService) Deliver(ctx context.Context, campaignID string, event domain.Event) {
	if f == nil {
		return
	}

	userIDs := event.AffectedUserIDs
	if len(userIDs) == 0 {
		members, err := f.memberships.ListByCampaignID(ctx, campaignID)
		if err != nil {
			f.logger.Warn("fanout member lookup failed",
				zap.Error(err),
				zap.String("campaign_id", campaignID),
				zap.String("kind", event.Kind),
			)
		}
		for _, m := range members {
			userIDs = append(userIDs, m.UserID)
		}
	}

	now := time.Now().UTC()
	for _, userID := range userIDs {
		notification := domain.Notification{
			ID:         uuid.NewString(),
			UserID:     userID,
			CampaignID: campaignID,
			Kind:       event.Kind,
			SubjectID:  event.SubjectID,
			Payload:    event.Payload,
			CreatedAt:  now,
		}
		if err := f.notifications.Create(ctx, notification); err != nil {
			f.logger.Warn("fanout notification write failed",
				zap.Error(err),
				zap.String("user_id", userID),
				zap.String("kind", event.Kind),
			)
		}
	}

	channel := realtime.ChannelForCampaign(campaignID)
	if err := f.publisher.Publish(ctx, channel, event.Kind, event.Payload); err != nil {
		f.logger.Warn("fanout realtime publish failed",
			zap.Error(err),
			zap.String("channel", channel),
			zap.String("kind", event.Kind),
		)
	}
}

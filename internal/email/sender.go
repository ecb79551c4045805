package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para envio de invitaciones a campanas.
type Sender interface {
	SendCampaignInvite(ctx context.Context, toEmail, campaignName, inviterName, joinURL string) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendCampaignInvite(_ context.Context, _, _, _, _ string) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}

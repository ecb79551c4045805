package realtime

import "context"

// Publisher define la interfaz de difusion en tiempo real por canal.
// La entrega es fire-and-forget: sin ack, sin reintentos.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

type disabledPublisher struct{}

// NewDisabledPublisher devuelve un publisher que descarta todo.
// Se usa cuando no hay transporte realtime configurado.
func NewDisabledPublisher() Publisher {
	return &disabledPublisher{}
}

func (p *disabledPublisher) Publish(_ context.Context, _, _ string, _ any) error {
	return nil
}

// ChannelForCampaign arma el nombre de canal por campana.
func ChannelForCampaign(campaignID string) string {
	return "campaign:" + campaignID
}

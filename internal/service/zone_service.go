package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/repository"
)

var ErrCharacterNotFound = errors.New("character not found")

// ZoneService mantiene la posicion de proximidad actual de cada personaje.
// El modelo es una enumeracion plana: no hay regla de adyacencia, un
// personaje puede saltar de close a distant en una sola llamada.
type ZoneService struct {
	characters repository.CharacterRepository
	fanout     *FanoutService
}

func NewZoneService(characters repository.CharacterRepository, fanout *FanoutService) *ZoneService {
	return &ZoneService{
		characters: characters,
		fanout:     fanout,
	}
}

// UpdateZone sobreescribe la zona del personaje. El simbolo se valida aca de
// nuevo aunque el borde HTTP ya lo haya hecho; un valor desconocido falla
// antes de cualquier mutacion. La autorizacion (duenio del personaje o admin
// de la campana) ya fue resuelta por el caller.
func (s *ZoneService) UpdateZone(ctx context.Context, campaignID, characterID string, zone domain.Zone, metadata map[string]any) (domain.Position, error) {
	if !zone.Valid() {
		return domain.Position{}, newValidationError("zone", "must be one of close, near, far, distant")
	}

	character, err := s.getCharacter(ctx, campaignID, characterID)
	if err != nil {
		return domain.Position{}, err
	}

	position := domain.Position{Zone: zone, Metadata: metadata}
	if err := s.characters.UpdateZone(ctx, character.ID, position); err != nil {
		return domain.Position{}, err
	}

	s.fanout.Deliver(ctx, character.CampaignID, domain.Event{
		Kind:      domain.EventZoneChanged,
		SubjectID: character.ID,
		Payload: map[string]any{
			"character_id": character.ID,
			"zone":         string(zone),
		},
		AffectedUserIDs: nil,
	})

	return position, nil
}

// GetZone devuelve la posicion actual, o near con metadata vacia si el
// personaje nunca registro una.
func (s *ZoneService) GetZone(ctx context.Context, campaignID, characterID string) (domain.Position, error) {
	character, err := s.getCharacter(ctx, campaignID, characterID)
	if err != nil {
		return domain.Position{}, err
	}

	zone := character.Zone
	if zone == "" {
		zone = domain.DefaultZone
	}
	return domain.Position{Zone: zone, Metadata: character.ZoneMetadata}, nil
}

// getCharacter resuelve el personaje dentro de la campana indicada. Un
// personaje de otra campana se trata como inexistente.
func (s *ZoneService) getCharacter(ctx context.Context, campaignID, characterID string) (domain.Character, error) {
	character, err := s.characters.GetByID(ctx, strings.TrimSpace(characterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Character{}, ErrCharacterNotFound
		}
		return domain.Character{}, err
	}
	if character.CampaignID != campaignID {
		return domain.Character{}, ErrCharacterNotFound
	}
	return character, nil
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/repository"
	"campaign-hub/internal/service"
)

// CharacterHandler mantiene dependencias para endpoints de personajes y zonas.
type CharacterHandler struct {
	logger      *zap.Logger
	characters  repository.CharacterRepository
	zoneServ    *service.ZoneService
	zoneLimiter service.ActionRateLimiter
}

// NewCharacterHandler crea una instancia de CharacterHandler con dependencias necesarias.
func NewCharacterHandler(
	logger *zap.Logger,
	characters repository.CharacterRepository,
	zoneServ *service.ZoneService,
	zoneLimiter service.ActionRateLimiter,
) *CharacterHandler {
	return &CharacterHandler{
		logger:      logger,
		characters:  characters,
		zoneServ:    zoneServ,
		zoneLimiter: zoneLimiter,
	}
}

// CreateCharacter maneja POST /campaigns/:id/characters.
func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	var req struct {
		Name  string `json:"name" binding:"required"`
		Class string `json:"class"`
		Level int    `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create character request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	level := req.Level
	if level <= 0 {
		level = 1
	}

	now := time.Now().UTC()
	character := domain.Character{
		ID:         uuid.NewString(),
		CampaignID: c.Param("id"),
		OwnerID:    claims.UserID,
		Name:       req.Name,
		Class:      req.Class,
		Level:      level,
		Zone:       domain.DefaultZone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.characters.Create(c.Request.Context(), character); err != nil {
		h.logger.Error("create character failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create character"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"character": character})
}

// GetCharacter maneja GET /campaigns/:id/characters/:characterID.
func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	character, err := h.characters.GetByID(c.Request.Context(), c.Param("characterID"))
	if err != nil || character.CampaignID != c.Param("id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"character": character})
}

// ListCharacters maneja GET /campaigns/:id/characters.
func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	chars, err := h.characters.ListByCampaignID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("list characters failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list characters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"characters": chars})
}

// UpdateZone maneja PUT /campaigns/:id/characters/:characterID/zone.
// Solo el usuario que controla el personaje, o un ADMIN de la campana,
// puede mover la zona de ese personaje.
func (h *CharacterHandler) UpdateZone(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	var req struct {
		Zone     string         `json:"zone" binding:"required"`
		Metadata map[string]any `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	zone, err := domain.ParseZone(req.Zone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zone must be one of close, near, far, distant", "field": "zone"})
		return
	}

	characterID := c.Param("characterID")
	character, err := h.characters.GetByID(c.Request.Context(), characterID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}
	if character.CampaignID != c.Param("id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}

	role, _ := GetCampaignRole(c)
	if !character.ControlledBy(claims.UserID) && !role.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot move another player's character"})
		return
	}

	if h.zoneLimiter != nil && !h.zoneLimiter.Allow(characterID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many zone updates"})
		return
	}

	position, err := h.zoneServ.UpdateZone(c.Request.Context(), c.Param("id"), characterID, zone, req.Metadata)
	if err != nil {
		h.respondZoneError(c, err, "could not update zone")
		return
	}

	c.JSON(http.StatusOK, gin.H{"position": position})
}

// GetZone maneja GET /campaigns/:id/characters/:characterID/zone.
func (h *CharacterHandler) GetZone(c *gin.Context) {
	position, err := h.zoneServ.GetZone(c.Request.Context(), c.Param("id"), c.Param("characterID"))
	if err != nil {
		h.respondZoneError(c, err, "could not load zone")
		return
	}

	c.JSON(http.StatusOK, gin.H{"position": position})
}

func (h *CharacterHandler) respondZoneError(c *gin.Context, err error, fallback string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, service.ErrCharacterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

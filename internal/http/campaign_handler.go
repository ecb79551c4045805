package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campaign-hub/internal/service"
)

// CampaignHandler mantiene dependencias para endpoints de campanas.
type CampaignHandler struct {
	logger       *zap.Logger
	campaignServ *service.CampaignService
	noteIndex    *service.NoteIndexService
}

// NewCampaignHandler crea una instancia de CampaignHandler con dependencias necesarias.
func NewCampaignHandler(logger *zap.Logger, campaignServ *service.CampaignService, noteIndex *service.NoteIndexService) *CampaignHandler {
	return &CampaignHandler{
		logger:       logger,
		campaignServ: campaignServ,
		noteIndex:    noteIndex,
	}
}

// CreateCampaign maneja POST /campaigns.
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		GameSystem  string `json:"game_system"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create campaign request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	campaign, err := h.campaignServ.CreateCampaign(c.Request.Context(), claims.UserID, req.Name, req.Description, req.GameSystem)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
			return
		}
		h.logger.Error("create campaign failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create campaign"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"campaign": campaign})
}

// GetCampaign maneja GET /campaigns/:id.
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignServ.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		h.logger.Error("get campaign failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load campaign"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}

// ListCampaigns maneja GET /campaigns.
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	campaigns, err := h.campaignServ.ListCampaigns(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list campaigns failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list campaigns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// Join maneja POST /campaigns/:id/join.
func (h *CampaignHandler) Join(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	membership, err := h.campaignServ.Join(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		case errors.Is(err, service.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "already a campaign member"})
		default:
			h.logger.Error("join campaign failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not join campaign"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"membership": membership})
}

// Invite maneja POST /campaigns/:id/invite.
func (h *CampaignHandler) Invite(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.campaignServ.Invite(c.Request.Context(), c.Param("id"), req.Email, claims.DisplayName); err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		case errors.Is(err, service.ErrEmailSendFailure):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email delivery unavailable"})
		default:
			h.logger.Error("invite failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send invite"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "invite sent"})
}

// SearchNotes maneja GET /campaigns/:id/notes/search.
func (h *CampaignHandler) SearchNotes(c *gin.Context) {
	query := c.Query("q")
	k, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	notes, err := h.noteIndex.SearchNotes(c.Request.Context(), c.Param("id"), query, k)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
			return
		}
		h.logger.Error("note search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

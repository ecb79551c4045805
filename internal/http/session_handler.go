package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/service"
)

// SessionHandler mantiene dependencias para endpoints de sesiones de juego.
type SessionHandler struct {
	logger      *zap.Logger
	sessionServ *service.SessionService
	recapServ   *service.RecapService
}

// NewSessionHandler crea una instancia de SessionHandler con dependencias necesarias.
func NewSessionHandler(logger *zap.Logger, sessionServ *service.SessionService, recapServ *service.RecapService) *SessionHandler {
	return &SessionHandler{
		logger:      logger,
		sessionServ: sessionServ,
		recapServ:   recapServ,
	}
}

// CreateSession maneja POST /campaigns/:id/sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.sessionServ.CreateSession(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// ListSessions maneja GET /campaigns/:id/sessions.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionServ.ListSessions(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("list sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetSession maneja GET /campaigns/:id/sessions/:sessionID.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, notes, err := h.sessionServ.GetSession(c.Request.Context(), c.Param("id"), c.Param("sessionID"))
	if err != nil {
		h.respondSessionError(c, err, "could not load session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session, "notes": notes})
}

// StartSession maneja POST /campaigns/:id/sessions/:sessionID/start.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req struct {
		CharacterIDs []string `json:"character_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.sessionServ.StartSession(c.Request.Context(), c.Param("id"), c.Param("sessionID"), req.CharacterIDs)
	if err != nil {
		h.respondSessionError(c, err, "could not start session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// EndSession maneja POST /campaigns/:id/sessions/:sessionID/end.
func (h *SessionHandler) EndSession(c *gin.Context) {
	var req struct {
		ExperienceAwarded *int     `json:"experience_awarded"`
		GoldAwarded       *int     `json:"gold_awarded"`
		ItemsAwarded      []string `json:"items_awarded"`
		Notes             string   `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	// Numericos ausentes quedan en cero; los negativos los rechaza el servicio.
	summary := domain.SessionSummary{
		ItemsAwarded: req.ItemsAwarded,
		Notes:        req.Notes,
	}
	if req.ExperienceAwarded != nil {
		summary.ExperienceAwarded = *req.ExperienceAwarded
	}
	if req.GoldAwarded != nil {
		summary.GoldAwarded = *req.GoldAwarded
	}

	session, err := h.sessionServ.EndSession(c.Request.Context(), c.Param("id"), c.Param("sessionID"), summary)
	if err != nil {
		h.respondSessionError(c, err, "could not end session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// AddNote maneja POST /campaigns/:id/sessions/:sessionID/notes.
func (h *SessionHandler) AddNote(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	var req struct {
		Content  string  `json:"content" binding:"required"`
		NoteType *string `json:"note_type"`
		IsPublic *bool   `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	note, err := h.sessionServ.AddSessionNote(c.Request.Context(), c.Param("id"), c.Param("sessionID"), claims.UserID, req.Content, req.NoteType, req.IsPublic)
	if err != nil {
		h.respondSessionError(c, err, "could not add note")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// Recap maneja POST /campaigns/:id/sessions/:sessionID/recap.
func (h *SessionHandler) Recap(c *gin.Context) {
	recap, err := h.recapServ.GenerateRecap(c.Request.Context(), c.Param("id"), c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, service.ErrNoNotesForRecap) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "session has no notes to recap"})
			return
		}
		h.respondSessionError(c, err, "could not generate recap")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recap": recap})
}

func (h *SessionHandler) respondSessionError(c *gin.Context, err error, fallback string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "field": vErr.Field})
	case errors.Is(err, service.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid session state transition"})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campaign-hub/internal/repository"
)

// NotificationHandler mantiene dependencias para endpoints de notificaciones.
type NotificationHandler struct {
	logger        *zap.Logger
	notifications repository.NotificationRepository
}

// NewNotificationHandler crea una instancia de NotificationHandler.
func NewNotificationHandler(logger *zap.Logger, notifications repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{
		logger:        logger,
		notifications: notifications,
	}
}

// ListNotifications maneja GET /notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	notifications, err := h.notifications.ListByUserID(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		h.logger.Error("list notifications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead maneja POST /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("id"), claims.UserID, time.Now().UTC()); err != nil {
		h.logger.Error("mark notification read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark notification read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

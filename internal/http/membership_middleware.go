package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/service"
)

const campaignRoleKey = "campaign_role"

// RequireMembership resuelve el rol del caller en la campana :id y lo deja
// en el contexto. Sin membresia responde 403.
func RequireMembership(campaignServ *service.CampaignService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			c.Abort()
			return
		}

		campaignID := c.Param("id")
		role, err := campaignServ.Role(c.Request.Context(), claims.UserID, campaignID)
		if err != nil {
			if errors.Is(err, service.ErrNotMember) {
				c.JSON(http.StatusForbidden, gin.H{"error": "not a campaign member"})
				c.Abort()
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resolve membership"})
			c.Abort()
			return
		}

		c.Set(campaignRoleKey, role)
		c.Next()
	}
}

// RequireAdmin exige rol ADMIN; corre despues de RequireMembership.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetCampaignRole(c)
		if !ok || !role.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCampaignRole obtiene el rol resuelto por RequireMembership.
func GetCampaignRole(c *gin.Context) (domain.Role, bool) {
	val, ok := c.Get(campaignRoleKey)
	if !ok {
		return "", false
	}
	role, ok := val.(domain.Role)
	return role, ok
}

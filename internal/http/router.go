package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campaign-hub/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtServ *service.JWTService,
	campaignServ *service.CampaignService,
	userH *UserHandler,
	campaignH *CampaignHandler,
	characterH *CharacterHandler,
	sessionH *SessionHandler,
	notificationH *NotificationHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.POST("/users", userH.Register)

	auth := r.Group("/auth")
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.Refresh)
	auth.POST("/logout", userH.Logout)

	authed := r.Group("", JWTAuthMiddleware(jwtServ))
	authed.GET("/me", userH.Me)
	authed.POST("/campaigns", campaignH.CreateCampaign)
	authed.GET("/campaigns", campaignH.ListCampaigns)
	authed.GET("/notifications", notificationH.ListNotifications)
	authed.POST("/notifications/:id/read", notificationH.MarkRead)

	// Unirse no requiere membresia previa; el resto de la campana si.
	authed.POST("/campaigns/:id/join", campaignH.Join)

	member := authed.Group("/campaigns/:id", RequireMembership(campaignServ))
	member.GET("", campaignH.GetCampaign)
	member.GET("/notes/search", campaignH.SearchNotes)
	member.POST("/characters", characterH.CreateCharacter)
	member.GET("/characters", characterH.ListCharacters)
	member.GET("/characters/:characterID", characterH.GetCharacter)
	member.PUT("/characters/:characterID/zone", characterH.UpdateZone)
	member.GET("/characters/:characterID/zone", characterH.GetZone)
	member.GET("/sessions", sessionH.ListSessions)
	member.GET("/sessions/:sessionID", sessionH.GetSession)
	member.POST("/sessions/:sessionID/notes", sessionH.AddNote)
	member.POST("/sessions/:sessionID/recap", sessionH.Recap)

	admin := member.Group("", RequireAdmin())
	admin.POST("/invite", campaignH.Invite)
	admin.POST("/sessions", sessionH.CreateSession)
	admin.POST("/sessions/:sessionID/start", sessionH.StartSession)
	admin.POST("/sessions/:sessionID/end", sessionH.EndSession)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

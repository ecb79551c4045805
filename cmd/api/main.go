package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"campaign-hub/internal/config"
	"campaign-hub/internal/db"
	"campaign-hub/internal/email"
	apihttp "campaign-hub/internal/http"
	"campaign-hub/internal/llm"
	"campaign-hub/internal/realtime"
	"campaign-hub/internal/repository"
	"campaign-hub/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	campaignRepo := repository.NewPgCampaignRepository(pool)
	membershipRepo := repository.NewPgMembershipRepository(pool)
	characterRepo := repository.NewPgCharacterRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	noteRepo := repository.NewPgNoteRepository(pool)
	notificationRepo := repository.NewPgNotificationRepository(pool)

	var (
		publisher   realtime.Publisher
		zoneLimiter service.ActionRateLimiter
		tokenStore  service.RefreshTokenStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			publisher = realtime.NewRedisPublisher(redisClient)
			zoneLimiter = service.NewRedisActionRateLimiter(redisClient, time.Minute, 30)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	if publisher == nil {
		publisher = realtime.NewDisabledPublisher()
	}
	if zoneLimiter == nil {
		zoneLimiter = service.NewActionRateLimiter(time.Minute, 30)
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var llmClient llm.Client
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbeddingModel, logger.Sugar())
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	fanoutSvc := service.NewFanoutService(logger, notificationRepo, membershipRepo, publisher)
	noteIndexSvc := service.NewNoteIndexService(logger, llmClient, noteRepo)
	userSvc := service.NewUserService(logger, userRepo)
	campaignSvc := service.NewCampaignService(logger, campaignRepo, membershipRepo, emailSender, cfg.PublicBaseURL)
	sessionSvc := service.NewSessionService(logger, sessionRepo, noteRepo, fanoutSvc, noteIndexSvc)
	zoneSvc := service.NewZoneService(characterRepo, fanoutSvc)
	recapSvc := service.NewRecapService(llmClient, sessionRepo, noteRepo)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	campaignHandler := apihttp.NewCampaignHandler(logger, campaignSvc, noteIndexSvc)
	characterHandler := apihttp.NewCharacterHandler(logger, characterRepo, zoneSvc, zoneLimiter)
	sessionHandler := apihttp.NewSessionHandler(logger, sessionSvc, recapSvc)
	notificationHandler := apihttp.NewNotificationHandler(logger, notificationRepo)

	router := apihttp.NewRouter(logger, jwtSvc, campaignSvc, userHandler, campaignHandler, characterHandler, sessionHandler, notificationHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

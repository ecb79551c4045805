package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/service"
)

type stubSessionRepo struct {
	sessions map[string]domain.GameSession
}

func (r *stubSessionRepo) Create(ctx context.Context, session domain.GameSession) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *stubSessionRepo) GetByID(ctx context.Context, id string) (domain.GameSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return domain.GameSession{}, pgx.ErrNoRows
	}
	return session, nil
}

func (r *stubSessionRepo) ListByCampaignID(ctx context.Context, campaignID string) ([]domain.GameSession, error) {
	return nil, nil
}

func (r *stubSessionRepo) StartIfPending(ctx context.Context, id string, participantIDs []string, startedAt time.Time) (bool, error) {
	session, ok := r.sessions[id]
	if !ok || session.Status != domain.SessionPending {
		return false, nil
	}
	session.Status = domain.SessionActive
	session.ParticipantIDs = participantIDs
	session.StartedAt = &startedAt
	r.sessions[id] = session
	return true, nil
}

func (r *stubSessionRepo) EndIfActive(ctx context.Context, id string, summary domain.SessionSummary, endedAt time.Time) (bool, error) {
	session, ok := r.sessions[id]
	if !ok || session.Status != domain.SessionActive {
		return false, nil
	}
	session.Status = domain.SessionEnded
	r.sessions[id] = session
	return true, nil
}

type stubNoteRepo struct{}

func (r *stubNoteRepo) Create(ctx context.Context, note domain.SessionNote) error { return nil }
func (r *stubNoteRepo) ListBySessionID(ctx context.Context, sessionID string) ([]domain.SessionNote, error) {
	return nil, nil
}
func (r *stubNoteRepo) UpdateEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error {
	return nil
}
func (r *stubNoteRepo) SearchByEmbedding(ctx context.Context, campaignID string, queryEmbedding pgvector.Vector, k int) ([]domain.SessionNote, error) {
	return nil, nil
}

type stubNotificationRepo struct{}

func (r *stubNotificationRepo) Create(ctx context.Context, n domain.Notification) error { return nil }
func (r *stubNotificationRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	return nil, nil
}
func (r *stubNotificationRepo) MarkRead(ctx context.Context, id, userID string, readAt time.Time) error {
	return nil
}

type stubMembershipRepo struct{}

func (r *stubMembershipRepo) Create(ctx context.Context, m domain.Membership) error { return nil }
func (r *stubMembershipRepo) Get(ctx context.Context, userID, campaignID string) (domain.Membership, error) {
	return domain.Membership{}, pgx.ErrNoRows
}
func (r *stubMembershipRepo) ListByCampaignID(ctx context.Context, campaignID string) ([]domain.Membership, error) {
	return nil, nil
}

func stubAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(authClaimsKey, service.Claims{UserID: userID})
		c.Next()
	}
}

// El grupo de campana autoriza :id; una sesion de otra campana debe
// responder 404 sin transicionar.
func TestSessionHandler_StartRejectsSessionFromOtherCampaign(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := &stubSessionRepo{sessions: map[string]domain.GameSession{
		"s-other": {ID: "s-other", CampaignID: "campY", Status: domain.SessionPending},
	}}
	logger := zap.NewNop()
	fanout := service.NewFanoutService(logger, &stubNotificationRepo{}, &stubMembershipRepo{}, nil)
	sessionServ := service.NewSessionService(logger, repo, &stubNoteRepo{}, fanout, nil)
	handler := NewSessionHandler(logger, sessionServ, nil)

	r := gin.New()
	r.POST("/campaigns/:id/sessions/:sessionID/start", stubAuthMiddleware("admin-x"), handler.StartSession)

	body := strings.NewReader(`{"character_ids":["c1"]}`)
	req := httptest.NewRequest(http.MethodPost, "/campaigns/campX/sessions/s-other/start", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	stored := repo.sessions["s-other"]
	if stored.Status != domain.SessionPending || len(stored.ParticipantIDs) != 0 {
		t.Fatalf("cross-campaign start transitioned the session: %+v", stored)
	}

	// El mismo request contra la campana correcta si arranca la sesion.
	req = httptest.NewRequest(http.MethodPost, "/campaigns/campY/sessions/s-other/start", strings.NewReader(`{"character_ids":["c1"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owning campaign, got %d", rec.Code)
	}
	if repo.sessions["s-other"].Status != domain.SessionActive {
		t.Fatalf("owning campaign start did not transition the session")
	}
}

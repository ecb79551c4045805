package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"campaign-hub/internal/domain"
	"campaign-hub/internal/llm"
)

func endedSessionWithNotes(notes ...domain.SessionNote) (*fakeSessionRepo, *fakeNoteRepo) {
	now := time.Now().UTC()
	session := domain.GameSession{
		ID:         "s1",
		CampaignID: "camp1",
		Status:     domain.SessionEnded,
		EndedAt:    &now,
		CreatedAt:  now,
	}
	return newFakeSessionRepo(session), &fakeNoteRepo{notes: notes}
}

func TestRecapService_GenerateRecap(t *testing.T) {
	sessions, notes := endedSessionWithNotes(
		domain.SessionNote{ID: "n1", SessionID: "s1", NoteType: "combat", Content: "Goblins ambushed the party.", IsPublic: true},
		domain.SessionNote{ID: "n2", SessionID: "s1", NoteType: "secret", Content: "DM only", IsPublic: false},
	)
	mock := &llm.MockClient{Response: "The party survived an ambush."}
	svc := NewRecapService(mock, sessions, notes)

	recap, err := svc.GenerateRecap(context.Background(), "camp1", "s1")
	if err != nil {
		t.Fatalf("generate recap: %v", err)
	}
	if recap != "The party survived an ambush." {
		t.Fatalf("unexpected recap: %q", recap)
	}
}

func TestRecapService_RequiresEndedSession(t *testing.T) {
	sessions := newFakeSessionRepo(pendingSession("s1", "camp1"))
	svc := NewRecapService(&llm.MockClient{}, sessions, &fakeNoteRepo{})

	_, err := svc.GenerateRecap(context.Background(), "camp1", "s1")
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
	}
}

func TestRecapService_NoPublicNotes(t *testing.T) {
	sessions, notes := endedSessionWithNotes(
		domain.SessionNote{ID: "n1", SessionID: "s1", Content: "DM only", IsPublic: false},
	)
	svc := NewRecapService(&llm.MockClient{}, sessions, notes)

	_, err := svc.GenerateRecap(context.Background(), "camp1", "s1")
	if !errors.Is(err, ErrNoNotesForRecap) {
		t.Fatalf("expected ErrNoNotesForRecap, got %v", err)
	}
}

func TestRecapService_RejectsSessionFromOtherCampaign(t *testing.T) {
	sessions, notes := endedSessionWithNotes(
		domain.SessionNote{ID: "n1", SessionID: "s1", Content: "Goblins ambushed the party.", IsPublic: true},
	)
	svc := NewRecapService(&llm.MockClient{Response: "recap"}, sessions, notes)

	_, err := svc.GenerateRecap(context.Background(), "camp2", "s1")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on cross-campaign recap, got %v", err)
	}
}

func TestRecapService_UnknownSession(t *testing.T) {
	svc := NewRecapService(&llm.MockClient{}, newFakeSessionRepo(), &fakeNoteRepo{})

	_, err := svc.GenerateRecap(context.Background(), "camp1", "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"campaign-hub/internal/domain"
)

func TestFanoutService_DeliverToAllMembers(t *testing.T) {
	notifications := &fakeNotificationRepo{}
	memberships := &fakeMembershipRepo{members: memberOf("camp1", "u1", "u2", "u3")}
	pub := &fakePublisher{}
	fanout := NewFanoutService(zap.NewNop(), notifications, memberships, pub)

	fanout.Deliver(context.Background(), "camp1", domain.Event{
		Kind:      domain.EventSessionStarted,
		SubjectID: "s1",
		Payload:   map[string]any{"session_id": "s1"},
	})

	if len(notifications.created) != 3 {
		t.Fatalf("expected 3 notification records, got %d", len(notifications.created))
	}
	seen := make(map[string]bool)
	for _, n := range notifications.created {
		seen[n.UserID] = true
		if n.Kind != domain.EventSessionStarted || n.SubjectID != "s1" {
			t.Fatalf("unexpected notification: %+v", n)
		}
	}
	if !seen["u1"] || !seen["u2"] || !seen["u3"] {
		t.Fatalf("missing member records: %v", seen)
	}
	if len(pub.channels) != 1 || pub.channels[0] != "campaign:camp1" {
		t.Fatalf("unexpected publishes: %v", pub.channels)
	}
}

func TestFanoutService_ExplicitAffectedUsersSkipMemberLookup(t *testing.T) {
	notifications := &fakeNotificationRepo{}
	memberships := &fakeMembershipRepo{members: memberOf("camp1", "u1", "u2")}
	fanout := NewFanoutService(zap.NewNop(), notifications, memberships, &fakePublisher{})

	fanout.Deliver(context.Background(), "camp1", domain.Event{
		Kind:            domain.EventZoneChanged,
		SubjectID:       "c1",
		AffectedUserIDs: []string{"u9"},
	})

	if memberships.listCalls != 0 {
		t.Fatalf("member lookup performed despite explicit affected users")
	}
	if len(notifications.created) != 1 || notifications.created[0].UserID != "u9" {
		t.Fatalf("unexpected records: %+v", notifications.created)
	}
}

func TestFanoutService_PublishFailureDoesNotBlockRecords(t *testing.T) {
	notifications := &fakeNotificationRepo{}
	memberships := &fakeMembershipRepo{members: memberOf("camp1", "u1", "u2")}
	pub := &fakePublisher{err: errors.New("redis down")}
	fanout := NewFanoutService(zap.NewNop(), notifications, memberships, pub)

	fanout.Deliver(context.Background(), "camp1", domain.Event{
		Kind:      domain.EventSessionEnded,
		SubjectID: "s1",
	})

	if len(notifications.created) != 2 {
		t.Fatalf("durable records lost on publish failure: got %d", len(notifications.created))
	}
}

func TestFanoutService_RecordFailureDoesNotBlockPublish(t *testing.T) {
	notifications := &fakeNotificationRepo{createErr: errors.New("db down")}
	memberships := &fakeMembershipRepo{members: memberOf("camp1", "u1")}
	pub := &fakePublisher{}
	fanout := NewFanoutService(zap.NewNop(), notifications, memberships, pub)

	fanout.Deliver(context.Background(), "camp1", domain.Event{
		Kind:      domain.EventNoteAdded,
		SubjectID: "s1",
	})

	if len(pub.channels) != 1 {
		t.Fatalf("publish skipped on record failure")
	}
}

func TestFanoutService_NilPublisherFallsBackToDisabled(t *testing.T) {
	notifications := &fakeNotificationRepo{}
	memberships := &fakeMembershipRepo{members: memberOf("camp1", "u1")}
	fanout := NewFanoutService(zap.NewNop(), notifications, memberships, nil)

	// No debe entrar en panico sin publisher configurado.
	fanout.Deliver(context.Background(), "camp1", domain.Event{Kind: domain.EventSessionStarted, SubjectID: "s1"})

	if len(notifications.created) != 1 {
		t.Fatalf("expected durable record with disabled publisher, got %d", len(notifications.created))
	}
}

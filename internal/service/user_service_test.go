package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"campaign-hub/internal/domain"
)

type fakeUserRepo struct {
	byID    map[string]domain.User
	byEmail map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]domain.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user domain.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newFakeUserRepo())

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:       "  GM@Example.com ",
		DisplayName: " Dungeon Master ",
		Password:    "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "gm@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.DisplayName != "Dungeon Master" {
		t.Fatalf("display name not trimmed: %q", user.DisplayName)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct horse" {
		t.Fatalf("password not hashed")
	}

	authed, err := svc.Authenticate(context.Background(), "gm@example.com", "correct horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("unexpected user: %+v", authed)
	}

	if _, err := svc.Authenticate(context.Background(), "gm@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_RegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newFakeUserRepo())

	input := RegisterInput{Email: "gm@example.com", Password: "correct horse"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_RegisterRejectsShortPassword(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Email: "gm@example.com", Password: "short"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" {
		t.Fatalf("expected password ValidationError, got %v", err)
	}
}

func TestUserService_GetUserNotFound(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newFakeUserRepo())

	if _, err := svc.GetUser(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

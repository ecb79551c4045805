package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisKVClient struct {
	setKey    string
	setVal    interface{}
	setTTL    time.Duration
	existsKey []string
	delKey    []string

	setErr    error
	existsErr error
	delErr    error
	existsN   int64
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.setKey = key
	m.setVal = value
	m.setTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKVClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.existsKey = keys
	cmd := redis.NewIntCmd(ctx)
	if m.existsErr != nil {
		cmd.SetErr(m.existsErr)
		return cmd
	}
	cmd.SetVal(m.existsN)
	return cmd
}

func (m *mockRedisKVClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.delKey = keys
	cmd := redis.NewIntCmd(ctx)
	if m.delErr != nil {
		cmd.SetErr(m.delErr)
		return cmd
	}
	cmd.SetVal(1)
	return cmd
}

func TestMemoryRefreshTokenStore_StoreAndExpire(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	ok, err := store.Exists("never-issued")
	if err != nil || ok {
		t.Fatalf("expected unknown jti false,nil; got %v,%v", ok, err)
	}

	if err := store.Store("gm-session-jti", "user-gm", 50*time.Millisecond); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	ok, err = store.Exists("gm-session-jti")
	if err != nil || !ok {
		t.Fatalf("expected stored jti to exist, got %v,%v", ok, err)
	}

	time.Sleep(70 * time.Millisecond)
	ok, err = store.Exists("gm-session-jti")
	if err != nil || ok {
		t.Fatalf("expected jti expired after TTL, got %v,%v", ok, err)
	}
}

func TestMemoryRefreshTokenStore_RevokeAndEmptyJTI(t *testing.T) {
	store := NewMemoryRefreshTokenStore()
	if err := store.Store("", "user-gm", time.Minute); err != nil {
		t.Fatalf("empty jti store should be no-op, got %v", err)
	}
	if err := store.Store("player-jti", "user-player", time.Minute); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := store.Revoke("player-jti"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	ok, err := store.Exists("player-jti")
	if err != nil || ok {
		t.Fatalf("expected revoked jti absent, got %v,%v", ok, err)
	}
}

func TestRedisRefreshTokenStore_KeyPrefixTrimAndTTLFallback(t *testing.T) {
	mock := &mockRedisKVClient{existsN: 1}
	store := &redisRefreshTokenStore{
		client: mock,
		prefix: "auth:refresh:",
	}

	// El jti llega recortado a la clave; un TTL no positivo cae al default.
	if err := store.Store(" gm-session-jti ", "user-gm", 0); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if mock.setKey != "auth:refresh:gm-session-jti" {
		t.Fatalf("unexpected redis key: %q", mock.setKey)
	}
	if mock.setTTL <= 0 {
		t.Fatalf("expected positive TTL fallback, got %v", mock.setTTL)
	}

	ok, err := store.Exists(" gm-session-jti ")
	if err != nil || !ok {
		t.Fatalf("expected exists true,nil; got %v,%v", ok, err)
	}
	if len(mock.existsKey) != 1 || mock.existsKey[0] != "auth:refresh:gm-session-jti" {
		t.Fatalf("unexpected exists key: %+v", mock.existsKey)
	}

	if err := store.Revoke(" gm-session-jti "); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if len(mock.delKey) != 1 || mock.delKey[0] != "auth:refresh:gm-session-jti" {
		t.Fatalf("unexpected del key: %+v", mock.delKey)
	}
}

func TestRedisRefreshTokenStore_ErrorPathsAndEmptyJTI(t *testing.T) {
	mock := &mockRedisKVClient{
		setErr:    errors.New("set failed"),
		existsErr: errors.New("exists failed"),
		delErr:    errors.New("del failed"),
	}
	store := &redisRefreshTokenStore{
		client: mock,
		prefix: "auth:refresh:",
	}

	// jti vacio nunca toca redis.
	if err := store.Store("", "user-gm", time.Minute); err != nil {
		t.Fatalf("empty jti store should be no-op, got %v", err)
	}
	ok, err := store.Exists("")
	if err != nil || ok {
		t.Fatalf("empty jti exists should be false,nil; got %v,%v", ok, err)
	}
	if err := store.Revoke(""); err != nil {
		t.Fatalf("empty jti revoke should be no-op, got %v", err)
	}

	if err := store.Store("player-jti", "user-player", time.Minute); err == nil {
		t.Fatalf("expected store error")
	}
	if _, err := store.Exists("player-jti"); err == nil {
		t.Fatalf("expected exists error")
	}
	if err := store.Revoke("player-jti"); err == nil {
		t.Fatalf("expected revoke error")
	}
}

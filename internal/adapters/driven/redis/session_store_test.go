package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MuraliChowdhary/GradeMyMail1-sub002/internal/core/domain"
)

// setupTestRedis creates a miniredis instance and a connected client
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

// createTestSession creates a test session with default values
func createTestSession(userID string) *domain.Session {
	return &domain.Session{
		ID:           "session-123",
		UserID:       userID,
		Token:        "token-abc",
		RefreshToken: "refresh-xyz",
		ExpiresAt:    time.Now().Add(24 * time.Hour),
		CreatedAt:    time.Now(),
		UserAgent:    "Mozilla/5.0",
		IPAddress:    "192.168.1.1",
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewSessionStore(client)
	ctx := context.Background()
	session := createTestSession("user-1")

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("unexpected error saving session: %v", err)
	}

	retrieved, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("failed to retrieve saved session: %v", err)
	}
	if retrieved.ID != session.ID {
		t.Errorf("expected ID %s, got %s", session.ID, retrieved.ID)
	}
	if retrieved.UserID != session.UserID {
		t.Errorf("expected UserID %s, got %s", session.UserID, retrieved.UserID)
	}
	if retrieved.Token != session.Token {
		t.Errorf("expected Token %s, got %s", session.Token, retrieved.Token)
	}
}

func TestSessionStore_SaveExpiredSession(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := createTestSession("user-1")
	session.ExpiresAt = time.Now().Add(-time.Hour)

	// Saving an expired session is a no-op
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, session.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestSessionStore_GetByToken(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewSessionStore(client)
	ctx := context.Background()
	session := createTestSession("user-1")
	_ = store.Save(ctx, session)

	retrieved, err := store.GetByToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retrieved.ID != session.ID {
		t.Errorf("expected ID %s, got %s", session.ID, retrieved.ID)
	}

	if _, err := store.GetByToken(ctx, "nonexistent"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStore_GetByRefreshToken(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewSessionStore(client)
	ctx := context.Background()
	session := createTestSession("user-1")
	_ = store.Save(ctx, session)

	retrieved, err := store.GetByRefreshToken(ctx, session.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retrieved.ID != session.ID {
		t.Errorf("expected ID %s, got %s", session.ID, retrieved.ID)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewSessionStore(client)
	ctx := context.Background()
	session := createTestSession("user-1")
	_ = store.Save(ctx, session)

	if err := store.Delete(ctx, session.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Session and its indexes are gone
	if _, err := store.Get(ctx, session.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := store.GetByToken(ctx, session.Token); err != domain.ErrNotFound {
		t.Errorf("expected token index removed, got %v", err)
	}
	if _, err := store.GetByRefreshToken(ctx, session.RefreshToken); err != domain.ErrNotFound {
		t.Errorf("expected refresh token index removed, got %v", err)
	}

	// Deleting again is a no-op
	if err := store.Delete(ctx, session.ID); err != nil {
		t.Errorf("expected nil for double delete, got %v", err)
	}
}

func TestSessionStore_DeleteByUser(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewSessionStore(client)
	ctx := context.Background()

	for i, id := range []string{"s1", "s2", "s3"} {
		session := createTestSession("user-1")
		session.ID = id
		session.Token = "token-" + id
		session.RefreshToken = "refresh-" + id
		if i == 2 {
			session.UserID = "user-2"
		}
		_ = store.Save(ctx, session)
	}

	if err := store.DeleteByUser(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(ctx, "s1"); err != domain.ErrNotFound {
		t.Errorf("expected s1 deleted, got %v", err)
	}
	if _, err := store.Get(ctx, "s2"); err != domain.ErrNotFound {
		t.Errorf("expected s2 deleted, got %v", err)
	}
	if _, err := store.Get(ctx, "s3"); err != nil {
		t.Errorf("expected user-2 session untouched, got %v", err)
	}
}

func TestSessionStore_TTLExpiry(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := createTestSession("user-1")
	session.ExpiresAt = time.Now().Add(time.Minute)
	_ = store.Save(ctx, session)

	// Advance miniredis past the TTL
	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, session.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after TTL, got %v", err)
	}
}

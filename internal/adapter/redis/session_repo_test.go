package redis

import (
	"context"
	"os"
	"testing"
	"time"
)

func openTestRepo(t *testing.T) *SessionRepo {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	repo, err := Open(context.Background(), Options{Addr: addr})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSessionRepo_RoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	token := "test-" + time.Now().Format("150405.000000000")

	if err := repo.Create(ctx, 7, token, "ua", "10.0.0.1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(ctx, token) })

	s, err := repo.GetByToken(ctx, token)
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s == nil || s.UserID != 7 || s.UserAgent != "ua" || s.IP != "10.0.0.1" {
		t.Fatalf("unexpected session: %+v", s)
	}

	ttl, err := repo.client.TTL(ctx, key(token)).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected TTL within a minute, got %v", ttl)
	}

	if err := repo.Delete(ctx, token); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s, _ := repo.GetByToken(ctx, token); s != nil {
		t.Error("expected nil after delete")
	}
}

func TestSessionRepo_UnknownToken(t *testing.T) {
	repo := openTestRepo(t)
	s, err := repo.GetByToken(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil, got %+v", s)
	}
}

func TestSessionRepo_AlreadyExpiredIsNotStored(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	token := "expired-" + time.Now().Format("150405.000000000")

	if err := repo.Create(ctx, 1, token, "ua", "", time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s, _ := repo.GetByToken(ctx, token); s != nil {
		t.Errorf("expected nil, got %+v", s)
	}
}

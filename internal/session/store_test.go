package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/campuskit/admin-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, 30*time.Minute), mr
}

func TestBindLookupRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	account := &model.UserAccountView{ID: 7, Username: "alice", Permissions: "1,2"}
	if err := store.Bind(ctx, "sid-1", account); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	got, err := store.Lookup(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got == nil {
		t.Fatal("expected bound principal, got none")
	}
	if got.ID != 7 || got.Username != "alice" || got.Permissions != "1,2" {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestLookupUnboundSessionIsAnonymous(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Lookup(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no binding, got %+v", got)
	}
}

func TestRebindReplacesPrincipal(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Bind(ctx, "sid-1", &model.UserAccountView{ID: 1, Username: "alice"}); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := store.Bind(ctx, "sid-1", &model.UserAccountView{ID: 2, Username: "bob"}); err != nil {
		t.Fatalf("rebind: %v", err)
	}

	got, err := store.Lookup(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.ID != 2 || got.Username != "bob" {
		t.Fatalf("expected replacement binding, got %+v", got)
	}
}

func TestUnbindIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Bind(ctx, "sid-1", &model.UserAccountView{ID: 1, Username: "alice"}); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := store.Unbind(ctx, "sid-1"); err != nil {
		t.Fatalf("Unbind: %v", err)
	}
	if err := store.Unbind(ctx, "sid-1"); err != nil {
		t.Fatalf("second Unbind: %v", err)
	}

	got, err := store.Lookup(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no binding after unbind, got %+v", got)
	}
}

func TestSessionExpiresAfterInactivity(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Bind(ctx, "sid-1", &model.UserAccountView{ID: 1, Username: "alice"}); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	mr.FastForward(31 * time.Minute)

	got, err := store.Lookup(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != nil {
		t.Fatalf("expected expired session to read as unbound, got %+v", got)
	}
}

func TestLookupSlidesExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Bind(ctx, "sid-1", &model.UserAccountView{ID: 1, Username: "alice"}); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	// Touch the session just before expiry, then cross the original deadline.
	mr.FastForward(29 * time.Minute)
	if got, err := store.Lookup(ctx, "sid-1"); err != nil || got == nil {
		t.Fatalf("Lookup before expiry: got=%v err=%v", got, err)
	}
	mr.FastForward(29 * time.Minute)

	got, err := store.Lookup(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got == nil {
		t.Fatal("expected refreshed session to survive past original deadline")
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/campuskit/admin-backend/internal/model"
	"github.com/campuskit/admin-backend/internal/repository"
	"github.com/campuskit/admin-backend/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const testSalt = "lsw"

// fakeAccounts is an in-memory AccountReader backed by a mutable map, so
// tests can change stored permissions between requests.
type fakeAccounts struct {
	byID map[int]*model.UserAccount
}

func (f *fakeAccounts) GetByID(_ context.Context, id int) (*model.UserAccount, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*model.UserAccount, error) {
	for _, a := range f.byID {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeAccounts) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	accounts := &fakeAccounts{byID: map[int]*model.UserAccount{
		1: {
			ID:             1,
			Username:       "alice",
			PasswordDigest: DigestPassword(testSalt, "secret123"),
			Permissions:    "1",
			State:          model.AccountStateActive,
		},
	}}

	store := session.NewStore(rdb, 30*time.Minute)
	return NewAuthService(accounts, store, testSalt, zerolog.Nop()), accounts
}

func TestDigestPasswordIsDeterministic(t *testing.T) {
	a := DigestPassword(testSalt, "secret123")
	b := DigestPassword(testSalt, "secret123")
	if a != b {
		t.Fatalf("digest not deterministic: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Fatalf("expected 32-char hex digest, got %q", a)
	}
	if DigestPassword("other", "secret123") == a {
		t.Fatal("digest must depend on the salt")
	}
}

func TestLoginBindsPrincipalWithStoredPermissions(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	view, err := svc.Login(ctx, "sid-1", "alice", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if view.Username != "alice" || view.Permissions != "1" {
		t.Fatalf("unexpected profile: %+v", view)
	}

	principal, err := svc.CurrentPrincipal(ctx, "sid-1")
	if err != nil {
		t.Fatalf("CurrentPrincipal: %v", err)
	}
	if principal.Anonymous() {
		t.Fatal("expected authenticated principal after login")
	}
	if principal.Permissions != "1" {
		t.Fatalf("principal permissions = %q, want %q", principal.Permissions, "1")
	}
}

func TestLoginFailuresCollapseToInvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, "sid-1", "nobody", "secret123")
	_, mismatchErr := svc.Login(ctx, "sid-1", "alice", "wrong-password")

	// Internally distinguishable...
	if !errors.Is(unknownErr, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", unknownErr)
	}
	if !errors.Is(mismatchErr, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", mismatchErr)
	}

	// ...but both carry the same externally visible class.
	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(mismatchErr, ErrInvalidCredentials) {
		t.Fatal("both failures must match ErrInvalidCredentials")
	}
}

func TestFailedLoginDoesNotBindSession(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "sid-1", "alice", "wrong-password"); err == nil {
		t.Fatal("expected login failure")
	}

	principal, err := svc.CurrentPrincipal(ctx, "sid-1")
	if err != nil {
		t.Fatalf("CurrentPrincipal: %v", err)
	}
	if !principal.Anonymous() {
		t.Fatalf("expected anonymous principal, got %+v", principal)
	}
}

func TestLogoutRevertsToAnonymous(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "sid-1", "alice", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(ctx, "sid-1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	principal, err := svc.CurrentPrincipal(ctx, "sid-1")
	if err != nil {
		t.Fatalf("CurrentPrincipal: %v", err)
	}
	if !principal.Anonymous() {
		t.Fatal("expected anonymous principal after logout")
	}
}

func TestLogoutWithoutLoginFails(t *testing.T) {
	svc, _ := newTestAuthService(t)

	err := svc.Logout(context.Background(), "sid-1")
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestReLoginIsIdempotent(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(ctx, "sid-1", "alice", "secret123"); err != nil {
			t.Fatalf("login %d: %v", i+1, err)
		}
	}

	principal, err := svc.CurrentPrincipal(ctx, "sid-1")
	if err != nil {
		t.Fatalf("CurrentPrincipal: %v", err)
	}
	if principal.Anonymous() || principal.Username != "alice" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestPermissionChangeTakesEffectWithoutReLogin(t *testing.T) {
	svc, accounts := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "sid-1", "alice", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Grant admin on the authoritative store after login.
	accounts.byID[1].Permissions = "1,2"

	principal, err := svc.CurrentPrincipal(ctx, "sid-1")
	if err != nil {
		t.Fatalf("CurrentPrincipal: %v", err)
	}
	if principal.Permissions != "1,2" {
		t.Fatalf("expected live re-read to see %q, got %q", "1,2", principal.Permissions)
	}
}

func TestDeletedAccountResolvesToAnonymous(t *testing.T) {
	svc, accounts := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "sid-1", "alice", "secret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	delete(accounts.byID, 1)

	principal, err := svc.CurrentPrincipal(ctx, "sid-1")
	if err != nil {
		t.Fatalf("CurrentPrincipal: %v", err)
	}
	if !principal.Anonymous() {
		t.Fatalf("expected anonymous principal for deleted account, got %+v", principal)
	}
}

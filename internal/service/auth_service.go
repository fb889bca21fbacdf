package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/campuskit/admin-backend/internal/model"
	"github.com/campuskit/admin-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Common auth errors. ErrUnknownAccount and ErrPasswordMismatch are
// distinguishable internally (logs, tests) but both match
// errors.Is(err, ErrInvalidCredentials), which is all the boundary exposes —
// a login failure must not reveal whether the account exists.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownAccount     = fmt.Errorf("%w: unknown account", ErrInvalidCredentials)
	ErrPasswordMismatch   = fmt.Errorf("%w: password mismatch", ErrInvalidCredentials)
	ErrNotLoggedIn        = errors.New("not logged in")
)

// AccountReader is the slice of the account repository the auth service needs.
type AccountReader interface {
	GetByID(ctx context.Context, id int) (*model.UserAccount, error)
	GetByUsername(ctx context.Context, username string) (*model.UserAccount, error)
}

// SessionBinder is the narrow session-store interface: at most one bound
// principal per session, written only by this service.
type SessionBinder interface {
	Bind(ctx context.Context, sessionID string, account *model.UserAccountView) error
	Lookup(ctx context.Context, sessionID string) (*model.UserAccountView, error)
	Unbind(ctx context.Context, sessionID string) error
}

// AuthService handles login, logout, and principal resolution.
type AuthService struct {
	accounts AccountReader
	sessions SessionBinder
	salt     string
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(accounts AccountReader, sessions SessionBinder, salt string, log zerolog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		salt:     salt,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// DigestPassword computes the stored form of a password: hex MD5 of the
// global salt concatenated before the password.
//
// One fixed salt for all accounts is a weak scheme (no per-user salt, fast
// hash). It is kept deliberately so that digests already in the store keep
// verifying; see the README before changing it.
func DigestPassword(salt, password string) string {
	sum := md5.Sum([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// DigestPassword digests with the configured salt.
func (s *AuthService) DigestPassword(password string) string {
	return DigestPassword(s.salt, password)
}

// Login verifies the credentials and binds the account's public profile into
// the session. The returned profile never includes the password digest.
func (s *AuthService) Login(ctx context.Context, sessionID, username, password string) (*model.UserAccountView, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrUnknownAccount
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if s.DigestPassword(password) != account.PasswordDigest {
		return nil, ErrPasswordMismatch
	}

	view := account.View()
	if err := s.sessions.Bind(ctx, sessionID, view); err != nil {
		return nil, fmt.Errorf("bind session: %w", err)
	}

	s.log.Debug().Str("username", username).Int("account_id", account.ID).Msg("login")
	return view, nil
}

// Logout unbinds the session's principal. Fails with ErrNotLoggedIn when the
// session carries no binding.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	bound, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("look up session: %w", err)
	}
	if bound == nil {
		return ErrNotLoggedIn
	}
	return s.sessions.Unbind(ctx, sessionID)
}

// CurrentPrincipal resolves the acting identity of a request.
//
// An unbound session yields the anonymous principal. A bound session is
// resolved by re-reading the account from the authoritative store rather
// than trusting the session-cached copy, so a permission change takes effect
// on the very next request without re-login. A bound account that no longer
// exists also resolves to anonymous: it holds nothing, so every non-empty
// declaration denies it.
func (s *AuthService) CurrentPrincipal(ctx context.Context, sessionID string) (*model.Principal, error) {
	bound, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("look up session: %w", err)
	}
	if bound == nil {
		return model.AnonymousPrincipal(), nil
	}

	account, err := s.accounts.GetByID(ctx, bound.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.log.Warn().Int("account_id", bound.ID).Msg("session bound to a deleted account")
			return model.AnonymousPrincipal(), nil
		}
		return nil, fmt.Errorf("re-read account: %w", err)
	}

	id := account.ID
	return &model.Principal{
		AccountID:   &id,
		Username:    account.Username,
		Permissions: account.Permissions,
	}, nil
}

// Package session implements the server-side session binding: an opaque
// session identifier mapped to at most one bound principal profile.
//
// The login service is the sole writer. Expiry is delegated to redis key
// TTLs; a lookup refreshes the TTL, giving inactivity-based expiry.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/campuskit/admin-backend/internal/config"
	"github.com/campuskit/admin-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// Store binds session identifiers to account profiles in Redis.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore creates a session store with the given inactivity TTL.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Bind stores the account profile as the session's principal, replacing any
// previous binding. Re-login on an already-bound session is therefore an
// idempotent re-entry into the authenticated state.
func (s *Store) Bind(ctx context.Context, sessionID string, account *model.UserAccountView) error {
	payload, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal session principal: %w", err)
	}

	if err := s.rdb.Set(ctx, config.Key.SessionKey(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Lookup returns the profile bound to the session, or (nil, nil) when the
// session has no binding. A successful lookup slides the expiry forward.
func (s *Store) Lookup(ctx context.Context, sessionID string) (*model.UserAccountView, error) {
	payload, err := s.rdb.GetEx(ctx, config.Key.SessionKey(sessionID), s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var account model.UserAccountView
	if err := json.Unmarshal(payload, &account); err != nil {
		return nil, fmt.Errorf("decode session principal: %w", err)
	}
	return &account, nil
}

// Unbind removes the session's binding. Unbinding an unbound session is a
// no-op.
func (s *Store) Unbind(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, config.Key.SessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

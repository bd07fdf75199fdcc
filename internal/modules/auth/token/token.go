// Package token issues, verifies, and revokes the bearer session tokens used
// by every authenticated route. Validity is cryptographic (signature +
// embedded expiry); the revocation set is the only shared mutable state.
package token

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/subkart/core/internal/models"
	jwtpkg "github.com/subkart/core/internal/pkg/jwt"
	"github.com/subkart/core/internal/pkg/kv"
	"github.com/subkart/core/internal/pkg/rejection"
)

const revokedKeyPrefix = "subkart:revoked:"

// Identity is the resolved result of a successful verification. Token carries
// the raw credential so the caller can revoke it later.
type Identity struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
	Token   string
}

// UserFinder resolves a token's bound user against the credential store.
// A (nil, nil) return means the user no longer exists.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Service is the token authority.
type Service struct {
	revoked kv.Store
	users   UserFinder
	ttl     time.Duration
}

func NewService(revoked kv.Store, users UserFinder, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{revoked: revoked, users: users, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue produces a signed, time-bounded credential for the user. Stateless:
// nothing is persisted.
func (s *Service) Issue(userID string) (string, error) {
	return jwtpkg.Sign(userID, s.ttl)
}

// Verify checks a raw token and resolves its identity. The revocation set is
// consulted before the signature so a revoked-but-valid token is always
// rejected. Failures are *rejection.Rejection values.
func (s *Service) Verify(ctx context.Context, raw string) (*Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, rejection.NoToken
	}

	_, found, err := s.revoked.Get(ctx, revokedKeyPrefix+raw)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, rejection.TokenRevoked
	}

	claims, err := jwtpkg.Parse(raw)
	if err != nil {
		if errors.Is(err, jwtpkg.ErrExpired) {
			return nil, rejection.TokenExpired
		}
		return nil, rejection.MalformedToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, rejection.UserNotFound
	}

	return &Identity{
		UserID:  user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   raw,
	}, nil
}

// Revoke adds the token to the revocation set. The entry lives for the
// maximum token lifetime, a conservative bound that covers the token's real
// expiry without having to decode it.
func (s *Service) Revoke(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return s.revoked.Put(ctx, revokedKeyPrefix+raw, "1", s.ttl)
}

// SweepRevoked removes expired revocation entries on stores without native
// expiry. Redis-backed stores self-expire and report zero work.
func SweepRevoked(store kv.Store) int {
	if ms, ok := store.(*kv.MemoryStore); ok {
		return ms.Sweep()
	}
	return 0
}

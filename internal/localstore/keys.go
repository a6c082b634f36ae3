package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/colare/recruit/pkg/domain"
)

const (
	TokenKey = "recruit_auth_token"
	UserKey  = "recruit_user"

	sectionsPrefix = "test-sections:"
)

// SectionsKey is the key holding the JSON section list of a test.
func SectionsKey(testID string) string {
	return sectionsPrefix + testID
}

// Token returns the stored bearer token, or "" when none is stored.
func (s *Store) Token(ctx context.Context) string {
	token, err := s.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithError(err).WithField("key", TokenKey).Debug("read token")
		}
		return ""
	}
	return strings.TrimSpace(token)
}

// SetToken persists the session token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.Set(ctx, TokenKey, strings.TrimSpace(token))
}

// ClearSession removes the token and the local user profile.
func (s *Store) ClearSession(ctx context.Context) error {
	return errors.Join(s.Delete(ctx, TokenKey), s.Delete(ctx, UserKey))
}

// LocalUser returns the stored user profile. A missing or malformed profile
// yields nil without error.
func (s *Store) LocalUser(ctx context.Context) *domain.LocalUser {
	raw, err := s.Get(ctx, UserKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.WithError(err).WithField("key", UserKey).Debug("read local user")
		}
		return nil
	}
	var user domain.LocalUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.WithError(err).WithField("key", UserKey).Debug("malformed local user")
		return nil
	}
	return &user
}

// SetLocalUser persists the signed-in member's profile as JSON.
func (s *Store) SetLocalUser(ctx context.Context, user domain.LocalUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode local user: %w", err)
	}
	return s.Set(ctx, UserKey, string(data))
}

// SectionTestIDs lists the tests that have a stored section list.
func (s *Store) SectionTestIDs(ctx context.Context) ([]string, error) {
	keys, err := s.Keys(ctx, sectionsPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, sectionsPrefix))
	}
	return ids, nil
}

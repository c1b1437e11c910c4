package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
	"github.com/cloudbr34k84/travel-app-sub000/pkg/crypto"
)

// RequestMeta is transport metadata recorded on issued sessions.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type metaContextKey struct{}

// WithRequestMeta attaches client address and user agent to the context for
// session issuance.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, metaContextKey{}, meta)
}

func metaFrom(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(metaContextKey{}).(RequestMeta)
	return meta
}

// issueSession mints an opaque random token, persists its hash with a fixed
// expiry, and returns the raw token for the cookie.
func (s Service) issueSession(ctx context.Context, userID string, meta RequestMeta) (*IssuedSession, error) {
	token, hash, err := crypto.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hash,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &IssuedSession{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// VerifySession resolves a raw cookie token to a SessionContext. Expired
// sessions are deleted on sight and read as not authenticated.
func (s Service) VerifySession(ctx context.Context, token string) (domain.SessionContext, error) {
	if token == "" {
		return domain.SessionContext{}, ErrNotAuthenticated
	}
	hash := crypto.HashToken(token)
	session, err := s.sessions.GetSessionByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.SessionContext{}, ErrNotAuthenticated
		}
		return domain.SessionContext{}, fmt.Errorf("load session: %w", err)
	}
	if session.Expired(time.Now()) {
		_ = s.sessions.DeleteSessionByTokenHash(ctx, hash)
		return domain.SessionContext{}, ErrNotAuthenticated
	}
	return domain.SessionContext{
		UserID:    session.UserID,
		SessionID: session.ID,
		TokenHash: session.TokenHash,
	}, nil
}

// SweepExpired removes sessions past their expiry. Run periodically; the
// verify path also drops expired rows lazily.
func (s Service) SweepExpired(ctx context.Context) (int, error) {
	return s.sessions.DeleteExpiredSessions(ctx, time.Now().UTC())
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
	"github.com/cloudbr34k84/travel-app-sub000/pkg/crypto"
)

// dummyHash keeps login latency flat when the username does not exist: the
// bcrypt comparison runs either way.
var dummyHash, _ = crypto.HashPassword("timing-equalizer")

// Service is the session/auth gateway: it owns credential verification,
// session lifecycle, and profile/password mutation. It keeps no state between
// requests; the user and session stores are the source of truth.
type Service struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	logger     *slog.Logger
	sessionTTL time.Duration
}

// New constructs a Service.
func New(users repository.UserRepository, sessions repository.SessionRepository, logger *slog.Logger, sessionTTL time.Duration) Service {
	return Service{users: users, sessions: sessions, logger: logger, sessionTTL: sessionTTL}
}

// RegisterInput is the strict registration payload.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfileInput patches profile fields; nil means "leave unchanged".
type UpdateProfileInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Phone     *string `json:"phone"`
	Avatar    *string `json:"avatar"`
}

// IssuedSession is the raw session token handed to the transport layer for
// the cookie, with its fixed expiry.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// Register validates the payload, rejects duplicate username/email, hashes
// the password, persists the user, and issues a first session.
func (s Service) Register(ctx context.Context, in RegisterInput) (domain.Profile, *IssuedSession, error) {
	if err := validateRegister(in); err != nil {
		return domain.Profile{}, nil, err
	}

	// Friendly pre-checks; the unique indexes close the race below.
	if _, err := s.users.GetUserByUsername(ctx, in.Username); err == nil {
		return domain.Profile{}, nil, &ConflictError{Message: "Username already exists"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return domain.Profile{}, nil, &ConflictError{Message: "Email already exists"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return domain.Profile{}, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if conflict := asConflict(err); conflict != nil {
			return domain.Profile{}, nil, conflict
		}
		return domain.Profile{}, nil, fmt.Errorf("create user: %w", err)
	}

	issued, err := s.issueSession(ctx, user.ID, metaFrom(ctx))
	if err != nil {
		return domain.Profile{}, nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user.PublicProfile(), issued, nil
}

// Login verifies credentials and issues a session. Every failure surfaces
// the same ErrInvalidCredentials so usernames cannot be enumerated.
func (s Service) Login(ctx context.Context, username, password string) (domain.Profile, *IssuedSession, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = crypto.ComparePassword(dummyHash, password)
			return domain.Profile{}, nil, ErrInvalidCredentials
		}
		return domain.Profile{}, nil, fmt.Errorf("find user: %w", err)
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return domain.Profile{}, nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		return domain.Profile{}, nil, fmt.Errorf("record login: %w", err)
	}
	user.LastLoginAt = &now
	user.LoginCount++

	issued, err := s.issueSession(ctx, user.ID, metaFrom(ctx))
	if err != nil {
		return domain.Profile{}, nil, err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user.PublicProfile(), issued, nil
}

// Logout destroys the caller's session. Calling it without a session, or
// twice, is not an error; other sessions are untouched.
func (s Service) Logout(ctx context.Context, sess domain.SessionContext) error {
	if sess.TokenHash == "" {
		return nil
	}
	if err := s.sessions.DeleteSessionByTokenHash(ctx, sess.TokenHash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// LogoutAll revokes every session belonging to the caller, including the one
// that made the request. Returns how many sessions were dropped.
func (s Service) LogoutAll(ctx context.Context, sess domain.SessionContext) (int, error) {
	if sess.Anonymous() {
		return 0, ErrNotAuthenticated
	}
	deleted, err := s.sessions.DeleteSessionsByUser(ctx, sess.UserID)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	s.logger.Info("all sessions revoked", "user_id", sess.UserID, "deleted", deleted)
	return deleted, nil
}

// CurrentUser resolves the session's public profile.
func (s Service) CurrentUser(ctx context.Context, sess domain.SessionContext) (domain.Profile, error) {
	if sess.Anonymous() {
		return domain.Profile{}, ErrNotAuthenticated
	}
	user, err := s.users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Profile{}, ErrNotAuthenticated
		}
		return domain.Profile{}, fmt.Errorf("load user: %w", err)
	}
	return user.PublicProfile(), nil
}

// UpdateProfile applies a partial profile patch for the session's user.
func (s Service) UpdateProfile(ctx context.Context, sess domain.SessionContext, in UpdateProfileInput) (domain.Profile, error) {
	if sess.Anonymous() {
		return domain.Profile{}, ErrNotAuthenticated
	}
	user, err := s.users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Profile{}, ErrNotAuthenticated
		}
		return domain.Profile{}, fmt.Errorf("load user: %w", err)
	}

	if in.Email != nil && *in.Email != user.Email {
		if !validEmail(*in.Email) {
			verr := &ValidationError{}
			verr.add("email", "Invalid email address")
			return domain.Profile{}, verr
		}
		if other, err := s.users.GetUserByEmail(ctx, *in.Email); err == nil && other.ID != user.ID {
			return domain.Profile{}, &ConflictError{Message: "Email already exists"}
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return domain.Profile{}, fmt.Errorf("check email: %w", err)
		}
		user.Email = *in.Email
	}
	applyIfSet(&user.FirstName, in.FirstName)
	applyIfSet(&user.LastName, in.LastName)
	applyIfSet(&user.Bio, in.Bio)
	applyIfSet(&user.Location, in.Location)
	applyIfSet(&user.Phone, in.Phone)
	applyIfSet(&user.Avatar, in.Avatar)

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if conflict := asConflict(err); conflict != nil {
			return domain.Profile{}, conflict
		}
		return domain.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	s.logger.Info("profile updated", "user_id", user.ID)
	return user.PublicProfile(), nil
}

// ChangePassword re-verifies the current password, enforces the complexity
// policy on the replacement, and persists the new hash. Other active sessions
// for the user intentionally survive the rotation.
func (s Service) ChangePassword(ctx context.Context, sess domain.SessionContext, currentPassword, newPassword string) error {
	if sess.Anonymous() {
		return ErrNotAuthenticated
	}
	user, err := s.users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("load user: %w", err)
	}

	if err := crypto.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		verr := &ValidationError{}
		verr.add("currentPassword", "Current password is incorrect")
		return verr
	}
	if err := validateNewPassword(newPassword); err != nil {
		return err
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	active, _ := s.sessions.CountSessionsByUser(ctx, user.ID)
	s.logger.Info("password changed", "user_id", user.ID, "active_sessions", active)
	return nil
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func asConflict(err error) *ConflictError {
	var repoConflict *repository.ConflictError
	if !errors.As(err, &repoConflict) {
		return nil
	}
	switch repoConflict.Constraint {
	case "users_username_key":
		return &ConflictError{Message: "Username already exists"}
	case "users_email_key":
		return &ConflictError{Message: "Email already exists"}
	default:
		return &ConflictError{Message: "Already exists"}
	}
}

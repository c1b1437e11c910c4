package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cloudbr34k84/travel-app-sub000/internal/domain"
	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
)

type stubUserRepository struct {
	byID       map[string]*domain.User
	byUsername map[string]*domain.User
	byEmail    map[string]*domain.User
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{
		byID:       make(map[string]*domain.User),
		byUsername: make(map[string]*domain.User),
		byEmail:    make(map[string]*domain.User),
	}
}

func (s *stubUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if _, ok := s.byUsername[user.Username]; ok {
		return &repository.ConflictError{Constraint: "users_username_key"}
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return &repository.ConflictError{Constraint: "users_email_key"}
	}
	copied := *user
	s.byID[user.ID] = &copied
	s.byUsername[user.Username] = &copied
	s.byEmail[user.Email] = &copied
	return nil
}

func (s *stubUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.found(s.byID[id])
}

func (s *stubUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.found(s.byUsername[username])
}

func (s *stubUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.found(s.byEmail[email])
}

func (s *stubUserRepository) found(u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *stubUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	stored, ok := s.byID[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	delete(s.byEmail, stored.Email)
	*stored = *user
	s.byEmail[user.Email] = stored
	return nil
}

func (s *stubUserRepository) UpdatePasswordHash(ctx context.Context, userID string, hash []byte) error {
	stored, ok := s.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.PasswordHash = hash
	return nil
}

func (s *stubUserRepository) RecordLogin(ctx context.Context, userID string, at time.Time) error {
	stored, ok := s.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.LastLoginAt = &at
	stored.LoginCount++
	return nil
}

type stubSessionRepository struct {
	byHash map[string]*domain.Session
}

func newStubSessionRepository() *stubSessionRepository {
	return &stubSessionRepository{byHash: make(map[string]*domain.Session)}
}

func (s *stubSessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	copied := *session
	s.byHash[session.TokenHash] = &copied
	return nil
}

func (s *stubSessionRepository) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	sess, ok := s.byHash[tokenHash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *stubSessionRepository) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	delete(s.byHash, tokenHash)
	return nil
}

func (s *stubSessionRepository) DeleteSessionsByUser(ctx context.Context, userID string) (int, error) {
	removed := 0
	for hash, sess := range s.byHash {
		if sess.UserID == userID {
			delete(s.byHash, hash)
			removed++
		}
	}
	return removed, nil
}

func (s *stubSessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	removed := 0
	for hash, sess := range s.byHash {
		if sess.Expired(now) {
			delete(s.byHash, hash)
			removed++
		}
	}
	return removed, nil
}

func (s *stubSessionRepository) CountSessionsByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, sess := range s.byHash {
		if sess.UserID == userID {
			count++
		}
	}
	return count, nil
}

func newTestService() (Service, *stubUserRepository, *stubSessionRepository) {
	users := newStubUserRepository()
	sessions := newStubSessionRepository()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(users, sessions, log, 7*24*time.Hour), users, sessions
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:  "wanderer",
		Email:     "wanderer@example.com",
		Password:  "Sup3rSecret",
		FirstName: "Wan",
		LastName:  "Derer",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	profile, issued, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if profile.Username != "wanderer" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if issued == nil || issued.Token == "" {
		t.Fatal("expected a session token on registration")
	}

	loginProfile, loginSession, err := svc.Login(ctx, "wanderer", "Sup3rSecret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loginSession.Token == issued.Token {
		t.Fatal("login must issue a fresh session token")
	}
	if loginProfile.LoginCount != 1 {
		t.Fatalf("expected loginCount 1, got %d", loginProfile.LoginCount)
	}
	if loginProfile.LastLoginAt == nil {
		t.Fatal("expected lastLoginAt to be recorded")
	}

	stored := users.byUsername["wanderer"]
	if string(stored.PasswordHash) == "Sup3rSecret" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()

	in := validRegistration()
	in.Username = "ab"
	in.Email = "not-an-email"
	in.Password = "short"

	_, _, err := svc.Register(context.Background(), in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	fields := make(map[string]bool)
	for _, fe := range verr.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"username", "email", "password"} {
		if !fields[want] {
			t.Fatalf("expected a validation error for %q, got %+v", want, verr.Errors)
		}
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	dupUsername := validRegistration()
	dupUsername.Email = "other@example.com"
	_, _, err := svc.Register(ctx, dupUsername)
	var conflict *ConflictError
	if !errors.As(err, &conflict) || conflict.Message != "Username already exists" {
		t.Fatalf("expected username conflict, got %v", err)
	}

	dupEmail := validRegistration()
	dupEmail.Username = "someoneelse"
	_, _, err = svc.Register(ctx, dupEmail)
	if !errors.As(err, &conflict) || conflict.Message != "Email already exists" {
		t.Fatalf("expected email conflict, got %v", err)
	}
}

// Unknown usernames and wrong passwords must be indistinguishable to the
// caller.
func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	if _, _, err := svc.Register(ctx, validRegistration()); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, _, unknownErr := svc.Login(ctx, "nobody", "Sup3rSecret")
	_, _, wrongErr := svc.Login(ctx, "wanderer", "WrongPass1")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("error messages differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	_, issued, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	sess, err := svc.VerifySession(ctx, issued.Token)
	if err != nil {
		t.Fatalf("VerifySession returned error: %v", err)
	}

	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("first Logout returned error: %v", err)
	}
	if len(sessions.byHash) != 0 {
		t.Fatalf("expected session row removed, %d remain", len(sessions.byHash))
	}
	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("second Logout returned error: %v", err)
	}
	if err := svc.Logout(ctx, domain.SessionContext{}); err != nil {
		t.Fatalf("anonymous Logout returned error: %v", err)
	}
}

func TestLogoutAllDropsEverySession(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	reg := validRegistration()
	_, issued, err := svc.Register(ctx, reg)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	_, second, err := svc.Login(ctx, reg.Username, reg.Password)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	sess, err := svc.VerifySession(ctx, issued.Token)
	if err != nil {
		t.Fatalf("VerifySession returned error: %v", err)
	}

	deleted, err := svc.LogoutAll(ctx, sess)
	if err != nil {
		t.Fatalf("LogoutAll returned error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 sessions dropped, got %d", deleted)
	}
	if len(sessions.byHash) != 0 {
		t.Fatalf("expected no session rows left, %d remain", len(sessions.byHash))
	}
	for _, token := range []string{issued.Token, second.Token} {
		if _, err := svc.VerifySession(ctx, token); !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated after LogoutAll, got %v", err)
		}
	}

	if _, err := svc.LogoutAll(ctx, domain.SessionContext{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for anonymous caller, got %v", err)
	}
}

func TestVerifySessionRejectsExpired(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	_, issued, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	for _, sess := range sessions.byHash {
		sess.ExpiresAt = time.Now().Add(-time.Minute)
	}

	if _, err := svc.VerifySession(ctx, issued.Token); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if len(sessions.byHash) != 0 {
		t.Fatal("expired session row should be deleted on verification")
	}
}

func TestChangePasswordKeepsOtherSessions(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, first, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	_, second, err := svc.Login(ctx, "wanderer", "Sup3rSecret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	sess, err := svc.VerifySession(ctx, first.Token)
	if err != nil {
		t.Fatalf("VerifySession returned error: %v", err)
	}

	err = svc.ChangePassword(ctx, sess, "WrongCurrent1", "NextSecret9")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(ctx, sess, "Sup3rSecret", "weak"); !errors.As(err, &verr) {
		t.Fatalf("expected policy rejection, got %v", err)
	}

	if err := svc.ChangePassword(ctx, sess, "Sup3rSecret", "NextSecret9"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "wanderer", "Sup3rSecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, _, err := svc.Login(ctx, "wanderer", "NextSecret9"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// The concurrent session survives the rotation.
	if _, err := svc.VerifySession(ctx, second.Token); err != nil {
		t.Fatalf("other session invalidated by password change: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, issued, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	other := validRegistration()
	other.Username = "rival"
	other.Email = "rival@example.com"
	if _, _, err := svc.Register(ctx, other); err != nil {
		t.Fatalf("second Register returned error: %v", err)
	}
	sess, err := svc.VerifySession(ctx, issued.Token)
	if err != nil {
		t.Fatalf("VerifySession returned error: %v", err)
	}

	bio := "travels a lot"
	profile, err := svc.UpdateProfile(ctx, sess, UpdateProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if profile.Bio != bio {
		t.Fatalf("bio not applied: %+v", profile)
	}
	if profile.Email != "wanderer@example.com" {
		t.Fatalf("untouched field changed: %+v", profile)
	}

	taken := "rival@example.com"
	_, err = svc.UpdateProfile(ctx, sess, UpdateProfileInput{Email: &taken})
	var conflict *ConflictError
	if !errors.As(err, &conflict) || conflict.Message != "Email already exists" {
		t.Fatalf("expected email conflict, got %v", err)
	}
}

func TestCurrentUserRequiresSession(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.CurrentUser(context.Background(), domain.SessionContext{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

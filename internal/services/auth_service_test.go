package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
	authinfra "github.com/igor-kostenevich/woorkroom-BE/internal/infrastructure/auth"
	"github.com/igor-kostenevich/woorkroom-BE/internal/infrastructure/repositories"
	"github.com/igor-kostenevich/woorkroom-BE/internal/mocks"
)

// newMemoryUserRepo backs the func-field mock with an in-memory map so the
// full register/login/reset flows can run against real hashing.
func newMemoryUserRepo() *mocks.MockUserRepository {
	var mu sync.Mutex
	users := map[string]*domain.User{}
	byEmail := map[string]string{}
	seq := 0

	repo := mocks.NewMockUserRepository()
	repo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := byEmail[user.Email]; ok {
			return domain.ErrUserAlreadyExists
		}
		seq++
		user.ID = "user-" + string(rune('a'+seq-1))
		clone := *user
		users[user.ID] = &clone
		byEmail[user.Email] = user.ID
		return nil
	}
	repo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		mu.Lock()
		defer mu.Unlock()
		id, ok := byEmail[email]
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		clone := *users[id]
		return &clone, nil
	}
	repo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
		mu.Lock()
		defer mu.Unlock()
		user, ok := users[id]
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		clone := *user
		return &clone, nil
	}
	repo.AttachPhoneFunc = func(ctx context.Context, userID, phone string, verifiedAt time.Time) error {
		mu.Lock()
		defer mu.Unlock()
		user, ok := users[userID]
		if !ok {
			return domain.ErrUserNotFound
		}
		user.Phone = phone
		user.PhoneVerified = true
		user.PhoneVerifiedAt = &verifiedAt
		return nil
	}
	repo.UpdatePasswordFunc = func(ctx context.Context, userID, passwordHash string) error {
		mu.Lock()
		defer mu.Unlock()
		user, ok := users[userID]
		if !ok {
			return domain.ErrUserNotFound
		}
		user.PasswordHash = passwordHash
		return nil
	}
	return repo
}

type authHarness struct {
	svc    domain.AuthService
	users  *mocks.MockUserRepository
	mailer *mocks.MockMailSender
	tokens domain.TokenService
}

func newAuthHarness(t *testing.T) *authHarness {
	t.Helper()

	client, _ := setupTestRedis(t)
	hasher := authinfra.NewPasswordService()
	tokens := authinfra.NewJWTService("test-secret", "woorkroom", 15*time.Minute, 168*time.Hour)
	sessions := repositories.NewSessionRepository(client, hasher, 168*time.Hour)
	users := newMemoryUserRepo()
	mailer := mocks.NewMockMailSender()

	return &authHarness{
		svc:    NewAuthService(users, sessions, hasher, tokens, mailer, 168*time.Hour),
		users:  users,
		mailer: mailer,
		tokens: tokens,
	}
}

var testMeta = domain.SessionMeta{UserAgent: "go-test", IP: "127.0.0.1"}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	res, err := h.svc.Register(ctx, domain.RegisterInput{
		Email:     "anna@example.com",
		Password:  "s3cret-pass",
		FirstName: "Anna",
		LastName:  "K",
	}, testMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" || res.SessionID == "" {
		t.Fatalf("expected a full auth result, got %+v", res)
	}

	claims, err := h.tokens.VerifyToken(res.AccessToken)
	if err != nil {
		t.Fatalf("access token does not verify: %v", err)
	}
	if claims.UserID == "" {
		t.Error("expected a subject in the access token")
	}

	login, err := h.svc.Login(ctx, "anna@example.com", "s3cret-pass", testMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if login.SessionID == res.SessionID {
		t.Error("expected login to mint a fresh session")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	in := domain.RegisterInput{Email: "dup@example.com", Password: "pw-123456", FirstName: "A"}
	if _, err := h.svc.Register(ctx, in, testMeta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.svc.Register(ctx, in, testMeta); err != domain.ErrUserAlreadyExists {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestAuthService_RegisterWithPhoneToken(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	phoneToken, err := h.tokens.SignPhoneToken("+380631234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := h.svc.Register(ctx, domain.RegisterInput{
		Email:      "verified@example.com",
		Password:   "pw-123456",
		FirstName:  "Vera",
		PhoneToken: phoneToken,
	}, testMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, _ := h.tokens.VerifyToken(res.AccessToken)
	user, err := h.svc.GetProfile(ctx, claims.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Phone != "+380631234567" || !user.PhoneVerified {
		t.Errorf("expected verified phone on the profile, got %+v", user)
	}
	if user.PhoneVerifiedAt == nil {
		t.Error("expected a verification timestamp")
	}
}

func TestAuthService_RegisterRejectsNonPhoneToken(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	// An access token is signed with the same key but must not pass as
	// proof of phone ownership.
	access, err := h.tokens.SignAccessToken("some-user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = h.svc.Register(ctx, domain.RegisterInput{
		Email:      "sneaky@example.com",
		Password:   "pw-123456",
		FirstName:  "S",
		PhoneToken: access,
	}, testMeta)
	if err != domain.ErrInvalidPhoneToken {
		t.Errorf("expected ErrInvalidPhoneToken, got %v", err)
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	if _, err := h.svc.Register(ctx, domain.RegisterInput{
		Email: "known@example.com", Password: "right-pass", FirstName: "K",
	}, testMeta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, unknownErr := h.svc.Login(ctx, "unknown@example.com", "whatever", testMeta)
	_, wrongErr := h.svc.Login(ctx, "known@example.com", "wrong-pass", testMeta)

	if unknownErr != domain.ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if wrongErr != domain.ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
}

func TestAuthService_StorageFailureIsNotACredentialFailure(t *testing.T) {
	// A broken backend must surface as a server error, not as the generic
	// bad-credentials or unknown-user response.
	users := mocks.NewMockUserRepository()
	users.FindByEmailFunc = func(context.Context, string) (*domain.User, error) {
		return nil, errors.New("pq: connection refused")
	}
	svc := NewAuthService(users, mocks.NewMockSessionRepository(), mocks.NewMockPasswordService(), mocks.NewMockTokenService(), mocks.NewMockMailSender(), time.Hour)
	ctx := context.Background()

	_, err := svc.Login(ctx, "anna@example.com", "pw-123456", testMeta)
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Error("storage failure must not look like bad credentials")
	}

	err = svc.ForgotPassword(ctx, "anna@example.com")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		t.Error("storage failure must not look like an unknown user")
	}
}

func TestAuthService_RefreshRotatesSession(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	res, err := h.svc.Register(ctx, domain.RegisterInput{
		Email: "rot@example.com", Password: "pw-123456", FirstName: "R",
	}, testMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rotated, err := h.svc.Refresh(ctx, res.SessionID, res.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rotated.SessionID != res.SessionID {
		t.Errorf("expected the sid to survive rotation, got %s", rotated.SessionID)
	}
	if rotated.RefreshToken == res.RefreshToken {
		t.Error("expected a fresh refresh token after rotation")
	}

	// The pre-rotation token is dead.
	if _, err := h.svc.Refresh(ctx, res.SessionID, res.RefreshToken); err != domain.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized for the replaced token, got %v", err)
	}

	// The rotated one still works.
	if _, err := h.svc.Refresh(ctx, rotated.SessionID, rotated.RefreshToken); err != nil {
		t.Errorf("expected the rotated token to refresh, got %v", err)
	}
}

func TestAuthService_RefreshRejections(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	res, err := h.svc.Register(ctx, domain.RegisterInput{
		Email: "rej@example.com", Password: "pw-123456", FirstName: "R",
	}, testMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		sid   string
		token string
	}{
		{"empty sid", "", res.RefreshToken},
		{"empty token", res.SessionID, ""},
		{"garbage token", res.SessionID, "not-a-jwt"},
		{"unknown sid", "missing-sid", res.RefreshToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.svc.Refresh(ctx, tt.sid, tt.token); err != domain.ErrUnauthorized {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestAuthService_RefreshRejectsForeignSession(t *testing.T) {
	// The session owner recorded in the store must match the token subject.
	sessions := mocks.NewMockSessionRepository()
	sessions.VerifyAndRotateFunc = func(ctx context.Context, sid, refreshToken string) (string, error) {
		return "other-user", nil
	}
	tokens := mocks.NewMockTokenService()
	tokens.VerifyTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: "token-user"}, nil
	}
	svc := NewAuthService(mocks.NewMockUserRepository(), sessions, mocks.NewMockPasswordService(), tokens, mocks.NewMockMailSender(), time.Hour)

	if _, err := svc.Refresh(context.Background(), "sid-1", "refresh-token"); err != domain.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_LogoutKillsSession(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	res, err := h.svc.Register(ctx, domain.RegisterInput{
		Email: "bye@example.com", Password: "pw-123456", FirstName: "B",
	}, testMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := h.svc.Logout(ctx, res.SessionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.svc.Refresh(ctx, res.SessionID, res.RefreshToken); err != domain.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized after logout, got %v", err)
	}

	// Without a sid there is nothing to do and nothing to fail.
	if err := h.svc.Logout(ctx, ""); err != nil {
		t.Errorf("expected empty-sid logout to be a no-op, got %v", err)
	}
}

func TestAuthService_AttachPhone(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	res, err := h.svc.Register(ctx, domain.RegisterInput{
		Email: "attach@example.com", Password: "pw-123456", FirstName: "A",
	}, testMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, _ := h.tokens.VerifyToken(res.AccessToken)

	phoneToken, err := h.svc.IssuePhoneToken("+380631234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := h.svc.AttachPhone(ctx, claims.UserID, phoneToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Phone != "+380631234567" || !user.PhoneVerified {
		t.Errorf("expected verified phone, got %+v", user)
	}

	if _, err := h.svc.AttachPhone(ctx, claims.UserID, res.AccessToken); err != domain.ErrInvalidPhoneToken {
		t.Errorf("expected ErrInvalidPhoneToken for a non-phone token, got %v", err)
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	res, err := h.svc.Register(ctx, domain.RegisterInput{
		Email: "reset@example.com", Password: "old-pass-123", FirstName: "R",
	}, testMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := h.svc.ForgotPassword(ctx, "reset@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.mailer.Recipients) != 1 || h.mailer.Recipients[0] != "reset@example.com" {
		t.Fatalf("expected one reset mail, got %v", h.mailer.Recipients)
	}
	tempPassword := h.mailer.TempPasswords[0]
	if len(tempPassword) != 6 {
		t.Errorf("expected a 6-digit temporary password, got %q", tempPassword)
	}

	// The overwrite is live immediately.
	if _, err := h.svc.Login(ctx, "reset@example.com", tempPassword, testMeta); err != nil {
		t.Errorf("expected login with the temporary password, got %v", err)
	}
	if _, err := h.svc.Login(ctx, "reset@example.com", "old-pass-123", testMeta); err != domain.ErrInvalidCredentials {
		t.Errorf("expected the old password to stop working, got %v", err)
	}

	// Existing sessions are untouched by the reset.
	if _, err := h.svc.Refresh(ctx, res.SessionID, res.RefreshToken); err != nil {
		t.Errorf("expected the pre-reset session to refresh, got %v", err)
	}

	if err := h.svc.ForgotPassword(ctx, "nobody@example.com"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Validate(t *testing.T) {
	h := newAuthHarness(t)
	ctx := context.Background()

	res, err := h.svc.Register(ctx, domain.RegisterInput{
		Email: "val@example.com", Password: "pw-123456", FirstName: "V",
	}, testMeta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, _ := h.tokens.VerifyToken(res.AccessToken)

	if err := h.svc.Validate(ctx, claims.UserID); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := h.svc.Validate(ctx, "ghost-user"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

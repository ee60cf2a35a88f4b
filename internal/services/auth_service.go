package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
	authinfra "github.com/igor-kostenevich/woorkroom-BE/internal/infrastructure/auth"
)

// AuthServiceImpl implements domain.AuthService. It composes the credential
// store, hasher, token signer and session store; all business-rule failures
// are mapped to domain errors before they leave this package.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	hasher      domain.PasswordHasher
	tokenSvc    domain.TokenService
	mailer      domain.MailSender
	refreshTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	hasher domain.PasswordHasher,
	tokenSvc domain.TokenService,
	mailer domain.MailSender,
	refreshTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
		refreshTTL:  refreshTTL,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, in domain.RegisterInput, meta domain.SessionMeta) (*domain.AuthResult, error) {
	// Fast path only; the unique constraint on email is authoritative.
	if existing, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrUserAlreadyExists
	}

	var phoneNumber string
	var phoneVerified bool
	var phoneVerifiedAt *time.Time
	if in.PhoneToken != "" {
		claims := s.verifyPhoneToken(in.PhoneToken)
		if claims == nil {
			return nil, domain.ErrInvalidPhoneToken
		}
		phoneNumber = claims.Phone
		phoneVerified = true
		now := time.Now()
		phoneVerifiedAt = &now
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:           in.Email,
		PasswordHash:    passwordHash,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Phone:           phoneNumber,
		PhoneVerified:   phoneVerified,
		PhoneVerifiedAt: phoneVerifiedAt,
		Role:            domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueSession(ctx, user.ID, meta)
}

// Login implements domain.AuthService. An unknown email and a wrong
// password return the same error; a storage failure is not a credential
// failure and propagates as one.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, meta domain.SessionMeta) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, user.ID, meta)
}

// Refresh implements domain.AuthService. Signature validity and session
// validity are independent checks; both must pass, and the session owner
// must match the token subject.
func (s *AuthServiceImpl) Refresh(ctx context.Context, sid, refreshToken string) (*domain.AuthResult, error) {
	if sid == "" || refreshToken == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokenSvc.VerifyToken(refreshToken)
	if err != nil || claims.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	userID, err := s.sessionRepo.VerifyAndRotate(ctx, sid, refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if userID != claims.UserID {
		log.Printf("SESSION_USER_MISMATCH: sid=%s token_sub=%s session_owner=%s", sid, claims.UserID, userID)
		return nil, domain.ErrUnauthorized
	}

	accessToken, newRefresh, err := s.generateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.sessionRepo.UpdateTokenHash(ctx, sid, newRefresh); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		SessionID:    sid,
		ExpiresAt:    time.Now().Add(s.refreshTTL),
	}, nil
}

// Logout implements domain.AuthService. Calling it without a live session
// is not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.sessionRepo.Destroy(ctx, sid)
}

// IssuePhoneToken implements domain.AuthService; called only after a
// successful OTP verification.
func (s *AuthServiceImpl) IssuePhoneToken(phone string) (string, error) {
	return s.tokenSvc.SignPhoneToken(phone)
}

// AttachPhone implements domain.AuthService
func (s *AuthServiceImpl) AttachPhone(ctx context.Context, userID, phoneToken string) (*domain.User, error) {
	claims := s.verifyPhoneToken(phoneToken)
	if claims == nil {
		return nil, domain.ErrInvalidPhoneToken
	}

	if err := s.userRepo.AttachPhone(ctx, userID, claims.Phone, time.Now()); err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(ctx, userID)
}

// ForgotPassword implements domain.AuthService. The new temporary password
// is live immediately; this is a reset-by-overwrite, not a reset-link flow,
// and existing sessions stay valid.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return fmt.Errorf("failed to generate temporary password: %w", err)
	}

	passwordHash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return fmt.Errorf("failed to hash temporary password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.mailer.SendResetPassword(ctx, email, tempPassword); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// Validate implements domain.AuthService; the middleware uses it to confirm
// the token subject still exists.
func (s *AuthServiceImpl) Validate(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return domain.ErrUserNotFound
	}
	return nil
}

// verifyPhoneToken returns nil for any token that is not a validly signed,
// unexpired phone verification token. The purpose claim is re-checked even
// though the signature already proves authenticity: an access token signed
// with the same key must not pass here.
func (s *AuthServiceImpl) verifyPhoneToken(token string) *domain.TokenClaims {
	claims, err := s.tokenSvc.VerifyToken(token)
	if err != nil {
		return nil
	}
	if claims.Purpose != authinfra.PurposePhoneVerified || claims.Phone == "" {
		return nil
	}
	return claims
}

func (s *AuthServiceImpl) issueSession(ctx context.Context, userID string, meta domain.SessionMeta) (*domain.AuthResult, error) {
	accessToken, refreshToken, err := s.generateTokenPair(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	sid, err := s.sessionRepo.Create(ctx, userID, refreshToken, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &domain.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sid,
		ExpiresAt:    time.Now().Add(s.refreshTTL),
	}, nil
}

func (s *AuthServiceImpl) generateTokenPair(userID string) (string, string, error) {
	accessToken, err := s.tokenSvc.SignAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.tokenSvc.SignRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// generateTempPassword draws a 6-digit numeric password for the
// forgot-password flow.
func generateTempPassword() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

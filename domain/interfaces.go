package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	AttachPhone(ctx context.Context, userID, phone string, verifiedAt time.Time) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// SessionRepository tracks one record per logged-in device, keyed by sid.
// The record holds a hash of the currently valid refresh token; callers
// rotate it with UpdateTokenHash after a successful VerifyAndRotate.
type SessionRepository interface {
	Create(ctx context.Context, userID, refreshToken string, meta SessionMeta) (string, error)
	VerifyAndRotate(ctx context.Context, sid, refreshToken string) (string, error)
	UpdateTokenHash(ctx context.Context, sid, newRefreshToken string) error
	Destroy(ctx context.Context, sid string) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, in RegisterInput, meta SessionMeta) (*AuthResult, error)
	Login(ctx context.Context, email, password string, meta SessionMeta) (*AuthResult, error)
	Refresh(ctx context.Context, sid, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sid string) error
	IssuePhoneToken(phone string) (string, error)
	AttachPhone(ctx context.Context, userID, phoneToken string) (*User, error)
	ForgotPassword(ctx context.Context, email string) error
	GetProfile(ctx context.Context, userID string) (*User, error)
	Validate(ctx context.Context, userID string) error
}

// RegisterInput carries registration fields into AuthService.Register
type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	PhoneToken string
}

// OTPService defines the phone verification handshake
type OTPService interface {
	Request(ctx context.Context, rawPhone string) (*OTPTicket, error)
	Verify(ctx context.Context, rawPhone, code string) (string, error)
}

// PasswordHasher defines the one-way hash primitive used for passwords,
// refresh tokens and OTP codes
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(digest, plaintext string) bool
}

// TokenService defines signed token issuance and verification
type TokenService interface {
	SignAccessToken(userID string) (string, error)
	SignRefreshToken(userID string) (string, error)
	SignPhoneToken(phone string) (string, error)
	VerifyToken(token string) (*TokenClaims, error)
}

// SmsSender delivers a text message to an E.164 number
type SmsSender interface {
	Send(ctx context.Context, toE164, message string) error
}

// MailSender delivers transactional mail
type MailSender interface {
	SendResetPassword(ctx context.Context, email, tempPassword string) error
}

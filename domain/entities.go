package domain

import "time"

// Role values stored on a user record.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User represents an account in the system
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	Phone           string
	PhoneVerified   bool
	PhoneVerifiedAt *time.Time
	Role            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SessionMeta carries request metadata captured at session creation
type SessionMeta struct {
	UserAgent string
	IP        string
}

// Session represents one authenticated device lineage. TokenHash is the
// argon2 digest of the currently valid refresh token and changes on every
// rotation.
type Session struct {
	UserID    string `json:"user_id"`
	TokenHash string `json:"token_hash"`
	UserAgent string `json:"ua,omitempty"`
	IP        string `json:"ip,omitempty"`
	CreatedAt string `json:"created_at"`
}

// AuthResult represents a successful authentication outcome
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresAt    time.Time
}

// OTPChallenge is the record stored per normalized phone while a code is
// outstanding. Only the hash of the code is persisted.
type OTPChallenge struct {
	CodeHash string `json:"hash"`
	Attempts int    `json:"attempts"`
}

// OTPTicket is returned from a successful OTP request
type OTPTicket struct {
	OK  bool  `json:"ok"`
	TTL int64 `json:"ttl"`
}

// TokenClaims represents verified JWT claims
type TokenClaims struct {
	UserID    string
	Phone     string
	Purpose   string
	IssuedAt  int64
	ExpiresAt int64
}

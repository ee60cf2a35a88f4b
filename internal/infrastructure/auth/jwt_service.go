package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// PurposePhoneVerified is the purpose claim carried by phone verification
// tokens. The orchestrator must re-check it: a validly signed access token
// must never be accepted where a phone token is expected.
const PurposePhoneVerified = "phone-verified"

// phoneTokenTTL is fixed; the token only bridges OTP verification and the
// subsequent register or phone-attach call.
const phoneTokenTTL = 60 * time.Minute

type tokenClaims struct {
	Phone   string `json:"phone,omitempty"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey  []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// SignAccessToken implements domain.TokenService
func (j *JWTServiceImpl) SignAccessToken(userID string) (string, error) {
	return j.sign(tokenClaims{}, userID, j.accessTTL)
}

// SignRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) SignRefreshToken(userID string) (string, error) {
	return j.sign(tokenClaims{}, userID, j.refreshTTL)
}

// SignPhoneToken implements domain.TokenService
func (j *JWTServiceImpl) SignPhoneToken(phone string) (string, error) {
	return j.sign(tokenClaims{Phone: phone, Purpose: PurposePhoneVerified}, "", phoneTokenTTL)
}

func (j *JWTServiceImpl) sign(claims tokenClaims, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// VerifyToken implements domain.TokenService. Tampered or expired tokens
// fail closed with a domain error; no signing-library detail leaks out.
func (j *JWTServiceImpl) VerifyToken(tokenString string) (*domain.TokenClaims, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.TokenClaims{
		UserID:  claims.Subject,
		Phone:   claims.Phone,
		Purpose: claims.Purpose,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return out, nil
}

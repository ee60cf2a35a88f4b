package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
	"github.com/igor-kostenevich/woorkroom-BE/internal/phone"
)

// OTPServiceImpl implements domain.OTPService using Redis persistence.
// Challenge and rate-limit keys live in distinct namespaces ("otp:",
// "otp:rl:") inside the store shared with sessions.
type OTPServiceImpl struct {
	sms    domain.SmsSender
	hasher domain.PasswordHasher
	redis  *redis.Client
	config OTPConfig
}

type OTPConfig struct {
	CodeTTL        time.Duration
	ResendCooldown time.Duration
	MaxAttempts    int
	DefaultRegion  string
}

// NewOTPService creates a new Redis-based OTP service. The SMS driver is
// injected, chosen once at startup.
func NewOTPService(sms domain.SmsSender, hasher domain.PasswordHasher, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		sms:    sms,
		hasher: hasher,
		redis:  redisClient,
		config: config,
	}
}

func otpKey(e164 string) string { return "otp:" + e164 }
func rlKey(e164 string) string  { return "otp:rl:" + e164 }

// Request implements domain.OTPService. It normalizes the phone, enforces
// the resend cooldown, stores a hash of a fresh 4-digit code and dispatches
// it over SMS.
func (s *OTPServiceImpl) Request(ctx context.Context, rawPhone string) (*domain.OTPTicket, error) {
	e164, err := phone.NormalizeE164(rawPhone, s.config.DefaultRegion)
	if err != nil {
		return nil, err
	}

	throttled, err := s.redis.Exists(ctx, rlKey(e164)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check resend cooldown: %w", err)
	}
	if throttled > 0 {
		return nil, domain.ErrOTPCooldown
	}
	if err := s.redis.Set(ctx, rlKey(e164), "1", s.config.ResendCooldown).Err(); err != nil {
		return nil, fmt.Errorf("failed to arm resend cooldown: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	codeHash, err := s.hasher.Hash(code)
	if err != nil {
		return nil, fmt.Errorf("failed to hash code: %w", err)
	}

	challenge := domain.OTPChallenge{CodeHash: codeHash, Attempts: 0}
	data, err := json.Marshal(challenge)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal challenge: %w", err)
	}
	if err := s.redis.Set(ctx, otpKey(e164), data, s.config.CodeTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}

	ttlSec := int64(s.config.CodeTTL.Seconds())
	message := fmt.Sprintf("Your code: %s. Valid for %d sec.", code, ttlSec)
	if err := s.sms.Send(ctx, e164, message); err != nil {
		// Remove both keys so the caller can retry immediately after a
		// gateway failure.
		s.redis.Del(ctx, otpKey(e164), rlKey(e164))
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return &domain.OTPTicket{OK: true, TTL: ttlSec}, nil
}

// Verify implements domain.OTPService. A matching code consumes the
// challenge; a mismatch increments the attempt counter and rewrites the
// record with the full code TTL, which re-arms the expiry window on every
// wrong guess up to the attempt cap.
func (s *OTPServiceImpl) Verify(ctx context.Context, rawPhone, code string) (string, error) {
	e164, err := phone.NormalizeE164(rawPhone, s.config.DefaultRegion)
	if err != nil {
		return "", err
	}

	data, err := s.redis.Get(ctx, otpKey(e164)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrOTPNotFound
		}
		return "", fmt.Errorf("failed to load challenge: %w", err)
	}

	var challenge domain.OTPChallenge
	if err := json.Unmarshal([]byte(data), &challenge); err != nil {
		return "", fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	if challenge.Attempts >= s.config.MaxAttempts {
		s.redis.Del(ctx, otpKey(e164))
		return "", domain.ErrOTPMaxAttempts
	}

	if !s.hasher.Verify(challenge.CodeHash, code) {
		// The incremented counter must land before the mismatch is reported;
		// a lost write would hand the guesser extra attempts.
		challenge.Attempts++
		updated, err := json.Marshal(challenge)
		if err != nil {
			return "", fmt.Errorf("failed to marshal challenge: %w", err)
		}
		if err := s.redis.Set(ctx, otpKey(e164), updated, s.config.CodeTTL).Err(); err != nil {
			return "", fmt.Errorf("failed to record failed attempt: %w", err)
		}
		return "", domain.ErrOTPInvalidCode
	}

	// Single use: the challenge is gone after a successful verification.
	s.redis.Del(ctx, otpKey(e164))

	return e164, nil
}

// generateCode draws a uniform value from [0,10000); leading zeros are kept,
// so "0042" is a valid code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

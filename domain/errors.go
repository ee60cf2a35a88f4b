package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials deliberately covers both an unknown email and a
	// wrong password so responses cannot be used for user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Phone / OTP errors
var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrOTPCooldown        = errors.New("please wait before requesting another code")
	ErrOTPNotFound        = errors.New("code expired or not found")
	ErrOTPMaxAttempts     = errors.New("too many attempts")
	ErrOTPInvalidCode     = errors.New("invalid code")
)

// Token errors
var (
	ErrTokenInvalid      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token has expired")
	ErrInvalidPhoneToken = errors.New("invalid phone token")
)

// Session errors
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
)

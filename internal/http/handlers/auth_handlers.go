package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

const (
	cookieRefreshToken = "refreshToken"
	cookieSessionID    = "sid"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc      domain.AuthService
	otpSvc       domain.OTPService
	cookieDomain string
	prod         bool
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, cookieDomain string, prod bool) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		otpSvc:       otpSvc,
		cookieDomain: cookieDomain,
		prod:         prod,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName,omitempty"`
	PhoneToken string `json:"phoneToken,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// RequestOTPRequest represents an OTP request
type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required,max=20"`
}

// VerifyOTPRequest represents an OTP verification request
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,max=20"`
	Code  string `json:"code" binding:"required,len=4"`
}

// AttachPhoneRequest represents a phone attach request
type AttachPhoneRequest struct {
	PhoneToken string `json:"phoneToken" binding:"required"`
}

// ForgotPasswordRequest represents a forgot-password request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := domain.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		PhoneToken: req.PhoneToken,
	}

	result, err := h.authSvc.Register(c.Request.Context(), in, sessionMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		case errors.Is(err, domain.ErrInvalidPhoneToken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	h.setAuthCookies(c, result, true)
	c.JSON(http.StatusCreated, gin.H{"accessToken": result.AccessToken})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, sessionMeta(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	h.setAuthCookies(c, result, req.RememberMe)
	c.JSON(http.StatusOK, gin.H{"accessToken": result.AccessToken})
}

// Refresh handles token rotation. Both cookies are required; every failure
// mode maps to the same 401.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(cookieRefreshToken)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not found"})
		return
	}
	sid, err := c.Cookie(cookieSessionID)
	if err != nil || sid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not found"})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), sid, refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}

	h.setAuthCookies(c, result, true)
	c.JSON(http.StatusOK, gin.H{"accessToken": result.AccessToken})
}

// Logout destroys the session if the cookie is present and always clears
// both cookies. Idempotent.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if sid, err := c.Cookie(cookieSessionID); err == nil && sid != "" {
		if err := h.authSvc.Logout(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
	}

	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RequestOTP handles OTP generation and SMS dispatch
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.otpSvc.Request(c.Request.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPhoneNumber):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case errors.Is(err, domain.ErrOTPCooldown):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please wait before requesting another code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send code"})
		}
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// VerifyOTP verifies a code and returns a phone token for registration or
// phone attach
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone, err := h.otpSvc.Verify(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPhoneNumber):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case errors.Is(err, domain.ErrOTPNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Code expired or not found"})
		case errors.Is(err, domain.ErrOTPMaxAttempts):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Too many attempts"})
		case errors.Is(err, domain.ErrOTPInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	phoneToken, err := h.authSvc.IssuePhoneToken(phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "phoneToken": phoneToken})
}

// AttachPhone attaches a verified phone to the authenticated user
func (h *AuthHandlers) AttachPhone(c *gin.Context) {
	var req AttachPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	user, err := h.authSvc.AttachPhone(c.Request.Context(), userID, req.PhoneToken)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPhoneToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach phone"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

// ForgotPassword overwrites the user's password with a mailed temporary one
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset email sent successfully"})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

// GetUser returns any user's profile by id; the route is gated to manager
// and admin roles.
func (h *AuthHandlers) GetUser(c *gin.Context) {
	user, err := h.authSvc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

func profileResponse(user *domain.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"firstName":       user.FirstName,
		"lastName":        user.LastName,
		"phone":           user.Phone,
		"phoneVerified":   user.PhoneVerified,
		"phoneVerifiedAt": user.PhoneVerifiedAt,
		"role":            user.Role,
		"createdAt":       user.CreatedAt,
		"updatedAt":       user.UpdatedAt,
	}
}

// sessionMeta captures request metadata for the session record; a
// forwarded-for header wins over the socket address.
func sessionMeta(c *gin.Context) domain.SessionMeta {
	ip := c.GetHeader("X-Forwarded-For")
	if ip == "" {
		ip = c.ClientIP()
	}
	return domain.SessionMeta{
		UserAgent: c.GetHeader("User-Agent"),
		IP:        ip,
	}
}

// setAuthCookies issues the refreshToken and sid cookies with a shared
// expiry. With remember=false the cookies are session-scoped while the
// server-side record keeps its full TTL.
func (h *AuthHandlers) setAuthCookies(c *gin.Context, result *domain.AuthResult, remember bool) {
	h.writeCookie(c, cookieRefreshToken, result.RefreshToken, result.ExpiresAt, remember)
	h.writeCookie(c, cookieSessionID, result.SessionID, result.ExpiresAt, remember)
}

// clearAuthCookies expires both cookies at epoch
func (h *AuthHandlers) clearAuthCookies(c *gin.Context) {
	epoch := time.Unix(0, 0)
	h.writeCookie(c, cookieRefreshToken, "", epoch, true)
	h.writeCookie(c, cookieSessionID, "", epoch, true)
}

func (h *AuthHandlers) writeCookie(c *gin.Context, name, value string, expires time.Time, remember bool) {
	sameSite := http.SameSiteLaxMode
	if h.prod {
		sameSite = http.SameSiteNoneMode
	}

	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   h.prod,
		SameSite: sameSite,
	}
	if remember {
		cookie.Expires = expires
	}

	http.SetCookie(c.Writer, cookie)
}

package mocks

import (
	"context"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc        func(ctx context.Context, in domain.RegisterInput, meta domain.SessionMeta) (*domain.AuthResult, error)
	LoginFunc           func(ctx context.Context, email, password string, meta domain.SessionMeta) (*domain.AuthResult, error)
	RefreshFunc         func(ctx context.Context, sid, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc          func(ctx context.Context, sid string) error
	IssuePhoneTokenFunc func(phone string) (string, error)
	AttachPhoneFunc     func(ctx context.Context, userID, phoneToken string) (*domain.User, error)
	ForgotPasswordFunc  func(ctx context.Context, email string) error
	GetProfileFunc      func(ctx context.Context, userID string) (*domain.User, error)
	ValidateFunc        func(ctx context.Context, userID string) error
}

// NewMockAuthService creates a new MockAuthService
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, in domain.RegisterInput, meta domain.SessionMeta) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in, meta)
	}
	return &domain.AuthResult{AccessToken: "mock-access", RefreshToken: "mock-refresh", SessionID: "mock-sid"}, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, meta domain.SessionMeta) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, meta)
	}
	return &domain.AuthResult{AccessToken: "mock-access", RefreshToken: "mock-refresh", SessionID: "mock-sid"}, nil
}

func (m *MockAuthService) Refresh(ctx context.Context, sid, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, sid, refreshToken)
	}
	return nil, domain.ErrUnauthorized
}

func (m *MockAuthService) Logout(ctx context.Context, sid string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sid)
	}
	return nil
}

func (m *MockAuthService) IssuePhoneToken(phone string) (string, error) {
	if m.IssuePhoneTokenFunc != nil {
		return m.IssuePhoneTokenFunc(phone)
	}
	return "mock-phone-token", nil
}

func (m *MockAuthService) AttachPhone(ctx context.Context, userID, phoneToken string) (*domain.User, error) {
	if m.AttachPhoneFunc != nil {
		return m.AttachPhoneFunc(ctx, userID, phoneToken)
	}
	return &domain.User{ID: userID, PhoneVerified: true}, nil
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return &domain.User{ID: userID, Email: "mock@example.com", Role: domain.RoleUser}, nil
}

func (m *MockAuthService) Validate(ctx context.Context, userID string) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, userID)
	}
	return nil
}

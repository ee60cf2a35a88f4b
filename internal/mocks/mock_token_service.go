package mocks

import "github.com/igor-kostenevich/woorkroom-BE/domain"

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	SignAccessTokenFunc  func(userID string) (string, error)
	SignRefreshTokenFunc func(userID string) (string, error)
	SignPhoneTokenFunc   func(phone string) (string, error)
	VerifyTokenFunc      func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) SignAccessToken(userID string) (string, error) {
	if m.SignAccessTokenFunc != nil {
		return m.SignAccessTokenFunc(userID)
	}
	return "mock-access-" + userID, nil
}

func (m *MockTokenService) SignRefreshToken(userID string) (string, error) {
	if m.SignRefreshTokenFunc != nil {
		return m.SignRefreshTokenFunc(userID)
	}
	return "mock-refresh-" + userID, nil
}

func (m *MockTokenService) SignPhoneToken(phone string) (string, error) {
	if m.SignPhoneTokenFunc != nil {
		return m.SignPhoneTokenFunc(phone)
	}
	return "mock-phone-token", nil
}

func (m *MockTokenService) VerifyToken(token string) (*domain.TokenClaims, error) {
	if m.VerifyTokenFunc != nil {
		return m.VerifyTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

package mocks

import (
	"context"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	RequestFunc func(ctx context.Context, rawPhone string) (*domain.OTPTicket, error)
	VerifyFunc  func(ctx context.Context, rawPhone, code string) (string, error)
}

// NewMockOTPService creates a new MockOTPService
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Request(ctx context.Context, rawPhone string) (*domain.OTPTicket, error) {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, rawPhone)
	}
	return &domain.OTPTicket{OK: true, TTL: 90}, nil
}

func (m *MockOTPService) Verify(ctx context.Context, rawPhone, code string) (string, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, rawPhone, code)
	}
	return rawPhone, nil
}

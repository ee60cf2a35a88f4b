package mocks

import (
	"context"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc          func(ctx context.Context, userID, refreshToken string, meta domain.SessionMeta) (string, error)
	VerifyAndRotateFunc func(ctx context.Context, sid, refreshToken string) (string, error)
	UpdateTokenHashFunc func(ctx context.Context, sid, newRefreshToken string) error
	DestroyFunc         func(ctx context.Context, sid string) error
}

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, userID, refreshToken string, meta domain.SessionMeta) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, refreshToken, meta)
	}
	return "mock-sid", nil
}

func (m *MockSessionRepository) VerifyAndRotate(ctx context.Context, sid, refreshToken string) (string, error) {
	if m.VerifyAndRotateFunc != nil {
		return m.VerifyAndRotateFunc(ctx, sid, refreshToken)
	}
	return "", domain.ErrSessionNotFound
}

func (m *MockSessionRepository) UpdateTokenHash(ctx context.Context, sid, newRefreshToken string) error {
	if m.UpdateTokenHashFunc != nil {
		return m.UpdateTokenHashFunc(ctx, sid, newRefreshToken)
	}
	return nil
}

func (m *MockSessionRepository) Destroy(ctx context.Context, sid string) error {
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, sid)
	}
	return nil
}

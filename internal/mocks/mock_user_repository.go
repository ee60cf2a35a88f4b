package mocks

import (
	"context"
	"time"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	UpdateFunc         func(ctx context.Context, user *domain.User) error
	AttachPhoneFunc    func(ctx context.Context, userID, phone string, verifiedAt time.Time) error
	UpdatePasswordFunc func(ctx context.Context, userID, passwordHash string) error
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "mock-user-id"
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &domain.User{ID: id, Email: "mock@example.com", Role: domain.RoleUser}, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) AttachPhone(ctx context.Context, userID, phone string, verifiedAt time.Time) error {
	if m.AttachPhoneFunc != nil {
		return m.AttachPhoneFunc(ctx, userID, phone, verifiedAt)
	}
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, passwordHash)
	}
	return nil
}

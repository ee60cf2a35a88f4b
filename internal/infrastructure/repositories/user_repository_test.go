package repositories

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&DBUser{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestUserRepository_CreateAssignsID(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		Email:        "anna@example.com",
		PasswordHash: "digest",
		FirstName:    "Anna",
		Role:         domain.RoleUser,
	}

	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected id to be assigned on create")
	}
}

func TestUserRepository_DuplicateEmailIsConflict(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	first := &domain.User{Email: "dup@example.com", PasswordHash: "digest", FirstName: "A", Role: domain.RoleUser}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := &domain.User{Email: "dup@example.com", PasswordHash: "other", FirstName: "B", Role: domain.RoleUser}
	if err := repo.Create(ctx, second); err != domain.ErrUserAlreadyExists {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{Email: "find@example.com", PasswordHash: "digest", FirstName: "Finn", Role: domain.RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByEmail(ctx, "find@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != user.ID || found.FirstName != "Finn" {
		t.Errorf("unexpected user returned: %+v", found)
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{Email: "id@example.com", PasswordHash: "digest", FirstName: "Ida", Role: domain.RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != "id@example.com" {
		t.Errorf("expected email id@example.com, got %s", found.Email)
	}

	if _, err := repo.FindByID(ctx, "missing-id"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_AttachPhone(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{Email: "phone@example.com", PasswordHash: "digest", FirstName: "Pia", Role: domain.RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	verifiedAt := time.Now()
	if err := repo.AttachPhone(ctx, user.ID, "+380631234567", verifiedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Phone != "+380631234567" {
		t.Errorf("expected phone to be set, got %q", found.Phone)
	}
	if !found.PhoneVerified {
		t.Error("expected phone to be marked verified")
	}
	if found.PhoneVerifiedAt == nil {
		t.Error("expected verification timestamp to be set")
	}

	if err := repo.AttachPhone(ctx, "missing-id", "+380631234567", verifiedAt); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{Email: "pass@example.com", PasswordHash: "old-digest", FirstName: "Pat", Role: domain.RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.UpdatePassword(ctx, user.ID, "new-digest"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.PasswordHash != "new-digest" {
		t.Errorf("expected password hash to be overwritten, got %q", found.PasswordHash)
	}

	if err := repo.UpdatePassword(ctx, "missing-id", "x"); err != domain.ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

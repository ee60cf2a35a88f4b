package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID              string  `gorm:"primaryKey;size:36"`
	Email           string  `gorm:"uniqueIndex;size:255"`
	PasswordHash    string  `gorm:"column:password"`
	FirstName       string  `gorm:"size:255"`
	LastName        string  `gorm:"size:255"`
	Phone           *string `gorm:"index;size:32"`
	PhoneVerified   bool    `gorm:"index"`
	PhoneVerifiedAt *time.Time
	Role            string `gorm:"index;size:32"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// BeforeCreate assigns the opaque id
func (u *DBUser) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. The unique constraint on email is
// the authoritative conflict signal; the service-level pre-check is only a
// fast path.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(user)).Error
}

// AttachPhone implements domain.UserRepository
func (r *UserRepositoryImpl) AttachPhone(ctx context.Context, userID, phone string, verifiedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"phone":             phone,
		"phone_verified":    true,
		"phone_verified_at": verifiedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// isDuplicateKey covers gorm's translated error plus the raw driver text
// for backends without translation (sqlite in tests).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	var phone *string
	if user.Phone != "" {
		p := user.Phone
		phone = &p
	}
	return &DBUser{
		ID:              user.ID,
		Email:           user.Email,
		PasswordHash:    user.PasswordHash,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Phone:           phone,
		PhoneVerified:   user.PhoneVerified,
		PhoneVerifiedAt: user.PhoneVerifiedAt,
		Role:            user.Role,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	phone := ""
	if dbUser.Phone != nil {
		phone = *dbUser.Phone
	}
	return &domain.User{
		ID:              dbUser.ID,
		Email:           dbUser.Email,
		PasswordHash:    dbUser.PasswordHash,
		FirstName:       dbUser.FirstName,
		LastName:        dbUser.LastName,
		Phone:           phone,
		PhoneVerified:   dbUser.PhoneVerified,
		PhoneVerifiedAt: dbUser.PhoneVerifiedAt,
		Role:            dbUser.Role,
		CreatedAt:       dbUser.CreatedAt,
		UpdatedAt:       dbUser.UpdatedAt,
	}
}

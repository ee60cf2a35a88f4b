package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
	"github.com/igor-kostenevich/woorkroom-BE/internal/config"
	"github.com/igor-kostenevich/woorkroom-BE/internal/infrastructure/auth"
	"github.com/igor-kostenevich/woorkroom-BE/internal/infrastructure/database"
	"github.com/igor-kostenevich/woorkroom-BE/internal/infrastructure/notifications"
	"github.com/igor-kostenevich/woorkroom-BE/internal/infrastructure/repositories"
	"github.com/igor-kostenevich/woorkroom-BE/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository

	Hasher   domain.PasswordHasher
	TokenSvc domain.TokenService
	Sms      domain.SmsSender
	Mailer   domain.MailSender
	OTPSvc   domain.OTPService
	AuthSvc  domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	c.Hasher = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)

	// Drivers are picked once here; nothing downstream knows which gateway
	// is behind the interface.
	c.Sms = notifications.NewSmsSender(cfg)
	c.Mailer = notifications.NewResendMailer(cfg.MailAPIKey, cfg.MailFrom, cfg.AppURL)

	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Hasher, cfg.RefreshTTL)

	c.OTPSvc = services.NewOTPService(c.Sms, c.Hasher, c.RedisClient, services.OTPConfig{
		CodeTTL:        cfg.OTPCodeTTL,
		ResendCooldown: cfg.OTPResendCooldown,
		MaxAttempts:    cfg.OTPMaxAttempts,
		DefaultRegion:  cfg.DefaultRegion,
	})

	c.AuthSvc = services.NewAuthService(c.UserRepo, c.SessionRepo, c.Hasher, c.TokenSvc, c.Mailer, cfg.RefreshTTL)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

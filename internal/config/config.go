package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port         int    `yaml:"port"`
	Env          string `yaml:"env"`
	CookieDomain string `yaml:"cookie_domain"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	CodeTTL        string `yaml:"code_ttl"`
	ResendCooldown string `yaml:"resend_cooldown"`
	MaxAttempts    int    `yaml:"max_attempts"`
	DefaultRegion  string `yaml:"default_region"`
}

type SMSConfig struct {
	Driver     string `yaml:"driver"`
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type MailConfig struct {
	APIKey string `yaml:"api_key"`
	From   string `yaml:"from"`
	AppURL string `yaml:"app_url"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	SMS      SMSConfig      `yaml:"sms"`
	Mail     MailConfig     `yaml:"mail"`
}

type Config struct {
	Port              string
	Env               string
	CookieDomain      string
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTSecret         string
	JWTIssuer         string
	AccessTTL         time.Duration
	RefreshTTL        time.Duration
	OTPCodeTTL        time.Duration
	OTPResendCooldown time.Duration
	OTPMaxAttempts    int
	DefaultRegion     string
	SMSDriver         string
	TwilioSID         string
	TwilioToken       string
	TwilioFrom        string
	MailAPIKey        string
	MailFrom          string
	AppURL            string
}

// IsProd reports whether the service runs with production cookie policy
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	codeTTL, err := time.ParseDuration(configFile.OTP.CodeTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP code TTL: %w", err)
	}

	cooldown, err := time.ParseDuration(configFile.OTP.ResendCooldown)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend cooldown: %w", err)
	}

	secret := env("JWT_SECRET", configFile.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	cfg := &Config{
		Port:              fmt.Sprintf("%d", configFile.App.Port),
		Env:               env("APP_ENV", configFile.App.Env),
		CookieDomain:      configFile.App.CookieDomain,
		DSN:               env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:         env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:     env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:           configFile.Redis.DB,
		JWTSecret:         secret,
		JWTIssuer:         configFile.JWT.Issuer,
		AccessTTL:         accTTL,
		RefreshTTL:        refTTL,
		OTPCodeTTL:        codeTTL,
		OTPResendCooldown: cooldown,
		OTPMaxAttempts:    configFile.OTP.MaxAttempts,
		DefaultRegion:     configFile.OTP.DefaultRegion,
		SMSDriver:         env("SMS_DRIVER", configFile.SMS.Driver),
		TwilioSID:         env("TWILIO_ACCOUNT_SID", configFile.SMS.AccountSID),
		TwilioToken:       env("TWILIO_AUTH_TOKEN", configFile.SMS.AuthToken),
		TwilioFrom:        env("TWILIO_FROM_NUMBER", configFile.SMS.FromNumber),
		MailAPIKey:        env("RESEND_API_KEY", configFile.Mail.APIKey),
		MailFrom:          configFile.Mail.From,
		AppURL:            configFile.Mail.AppURL,
	}

	if cfg.OTPMaxAttempts == 0 {
		cfg.OTPMaxAttempts = 5
	}
	if cfg.DefaultRegion == "" {
		cfg.DefaultRegion = "UA"
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

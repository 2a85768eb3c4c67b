package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTTTL    = "168h"
	defaultOTPTTL    = "10m"
	defaultJWTSecret = "change-me-jwt-secret"
	defaultOTPPepper = "change-me-otp-pepper"
	defaultSMTPPort  = "587"
)

type Runtime struct {
	AppEnv    string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	OTPPepper string
	OTPTTL    time.Duration

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() (*Runtime, error) {
	cfg := &Runtime{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = getEnv("PORT", "8080")
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.OTPPepper = strings.TrimSpace(getEnv("OTP_PEPPER", defaultOTPPepper))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.OTPTTL, err = parseDurationEnv("OTP_TTL", defaultOTPTTL)
	if err != nil {
		return nil, err
	}

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SMTP_HOST"))
	cfg.SMTPPort, err = parseIntEnv("SMTP_PORT", defaultSMTPPort)
	if err != nil {
		return nil, err
	}
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.MailFrom = getEnv("MAIL_FROM", cfg.SMTPUser)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SMTPConfigured reports whether outbound email can actually be sent;
// without it the server falls back to the console mailer.
func (c *Runtime) SMTPConfigured() bool {
	return c.SMTPHost != ""
}

func validate(cfg *Runtime) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.OTPTTL <= 0 {
		return fmt.Errorf("OTP_TTL must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.OTPPepper, defaultOTPPepper) {
			return fmt.Errorf("in prod/release OTP_PEPPER must be set and not default")
		}
		if !cfg.SMTPConfigured() {
			return fmt.Errorf("in prod/release SMTP_HOST must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

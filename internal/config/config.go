package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	GinMode      string
	GinPort      string
	JWTSecretKey string
	FrontendURL  string

	PaystackSecretKey    string
	FlutterwaveSecretKey string
	MonnifyAPIKey        string
	MonnifySecretKey     string
	RemitaAPIKey         string
	RemitaMerchantID     string
	PaymentWebhookSecret string

	VerifyMaxAttempts int
	VerifyRetryDelay  time.Duration

	HistoryDBPath string
	RedisAddr     string
	RedisPassword string

	TermiiAPIKey   string
	TermiiSenderID string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() (*Config, error) {

	getEnv := func(key string, required bool) (string, error) {
		value := os.Getenv(key)
		if value == "" && required {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg := &Config{}
	var err error

	cfg.GinMode = os.Getenv("GIN_MODE")
	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}
	cfg.GinPort = os.Getenv("GIN_PORT")
	if cfg.GinPort == "" {
		cfg.GinPort = "8002"
	}
	cfg.FrontendURL = os.Getenv("FRONTEND_URL")

	if cfg.JWTSecretKey, err = getEnv("JWT_SECRET_KEY", true); err != nil {
		return nil, err
	}
	if cfg.PaystackSecretKey, err = getEnv("PAYSTACK_SECRET_KEY", true); err != nil {
		return nil, err
	}
	if cfg.PaymentWebhookSecret, err = getEnv("PAYMENT_WEBHOOK_SECRET", true); err != nil {
		return nil, err
	}

	// Secondary gateways are optional; a missing key just means that
	// gateway is not registered.
	cfg.FlutterwaveSecretKey, _ = getEnv("FLUTTERWAVE_SECRET_KEY", false)
	cfg.MonnifyAPIKey, _ = getEnv("MONNIFY_API_KEY", false)
	cfg.MonnifySecretKey, _ = getEnv("MONNIFY_SECRET_KEY", false)
	cfg.RemitaAPIKey, _ = getEnv("REMITA_API_KEY", false)
	cfg.RemitaMerchantID, _ = getEnv("REMITA_MERCHANT_ID", false)

	cfg.VerifyMaxAttempts = 3
	if raw := os.Getenv("VERIFY_MAX_ATTEMPTS"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 {
			return nil, fmt.Errorf("invalid VERIFY_MAX_ATTEMPTS: %q", raw)
		}
		cfg.VerifyMaxAttempts = n
	}
	cfg.VerifyRetryDelay = time.Second
	if raw := os.Getenv("VERIFY_RETRY_DELAY"); raw != "" {
		d, convErr := time.ParseDuration(raw)
		if convErr != nil || d < 0 {
			return nil, fmt.Errorf("invalid VERIFY_RETRY_DELAY: %q", raw)
		}
		cfg.VerifyRetryDelay = d
	}

	cfg.HistoryDBPath = os.Getenv("HISTORY_DB_PATH")
	if cfg.HistoryDBPath == "" {
		cfg.HistoryDBPath = "phcityrent.db"
	}
	cfg.RedisAddr, _ = getEnv("REDIS_ADDR", false)
	cfg.RedisPassword, _ = getEnv("REDIS_PASSWORD", false)

	cfg.TermiiAPIKey, _ = getEnv("TERMII_API_KEY", false)
	cfg.TermiiSenderID, _ = getEnv("TERMII_SENDER_ID", false)

	cfg.CloudinaryCloudName, _ = getEnv("CLOUDINARY_CLOUD_NAME", false)
	cfg.CloudinaryAPIKey, _ = getEnv("CLOUDINARY_API_KEY", false)
	cfg.CloudinaryAPISecret, _ = getEnv("CLOUDINARY_API_SECRET", false)

	return cfg, nil
}

// CloudinaryConfigured reports whether all three Cloudinary credentials are
// present. Receipt sharing falls back to inline payloads without them.
func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

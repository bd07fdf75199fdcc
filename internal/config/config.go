package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort      = 5000
	defaultEnv       = "development"
	defaultMongoURI  = "mongodb://127.0.0.1:27017"
	defaultMongoName = "subkart"
	defaultRedisURL  = "redis://localhost:6379/0"
	defaultTokenTTL  = time.Hour
	defaultSMTPPort  = 587
)

// Load reads the YAML config file and applies environment overrides. A missing
// file is not an error: the original deployment was configured purely through
// the environment.
func Load(configPath string) (*AppConfig, error) {
	cfg := defaultAppConfig()

	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// env-only configuration
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if strings.TrimSpace(cfg.Mongo.URI) == "" {
		cfg.Mongo.URI = defaultMongoURI
	}
	if strings.TrimSpace(cfg.Mongo.Name) == "" {
		cfg.Mongo.Name = defaultMongoName
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		Mongo:    MongoConfig{URI: defaultMongoURI, Name: defaultMongoName},
		RedisURL: defaultRedisURL,
		TokenTTL: defaultTokenTTL,
		Mail:     MailConfig{SMTPPort: defaultSMTPPort},
	}
}

// applyEnvOverrides maps the original deployment's environment variables onto
// the config. Environment wins over the YAML file.
func applyEnvOverrides(cfg *AppConfig) {
	if v := envStr("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := envStr("NODE_ENV", "APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := envStr("MONGO_URI", "MONGODB_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := envStr("MONGO_DB_NAME"); v != "" {
		cfg.Mongo.Name = v
	}
	if v := envStr("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := envStr("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := envStr("JWT_EXPIRY"); v != "" {
		// the original stored this in milliseconds
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms > 0 {
			cfg.TokenTTL = time.Duration(ms) * time.Millisecond
		} else if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TokenTTL = d
		}
	}
	if v := envStr("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
	if v := envStr("BREVO_API_KEY"); v != "" {
		cfg.Mail.BrevoKey = v
	}
	if v := envStr("EMAIL_SENDER_NAME"); v != "" {
		cfg.Mail.SenderName = v
	}
	if v := envStr("EMAIL_SENDER_ADDRESS"); v != "" {
		cfg.Mail.SenderAddress = v
	}
	if v := envStr("SMTP_HOST"); v != "" {
		cfg.Mail.SMTPHost = v
	}
	if v := envStr("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Mail.SMTPPort = port
		}
	}
	if v := envStr("SMTP_USER"); v != "" {
		cfg.Mail.SMTPUser = v
	}
	if v := envStr("SMTP_PASS"); v != "" {
		cfg.Mail.SMTPPass = v
	}
	if v := envStr("RAZORPAY_KEY_ID"); v != "" {
		cfg.Razorpay.KeyID = v
	}
	if v := envStr("RAZORPAY_KEY_SECRET"); v != "" {
		cfg.Razorpay.KeySecret = v
	}
	if v := envStr("PAYPAL_CLIENT_ID"); v != "" {
		cfg.PayPalClientID = v
	}
	if v := envStr("TZ"); v != "" {
		cfg.Timezone = v
	}
}

func envStr(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

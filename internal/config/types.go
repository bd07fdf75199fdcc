package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML and the
// process environment.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Mongo          MongoConfig    `yaml:"mongo"`
	RedisURL       string         `yaml:"redis_url"`
	JWTSecret      string         `yaml:"jwt_secret"`
	TokenTTL       time.Duration  `yaml:"token_ttl"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Mail           MailConfig     `yaml:"mail"`
	Razorpay       RazorpayConfig `yaml:"razorpay"`
	PayPalClientID string         `yaml:"paypal_client_id"`
	Timezone       string         `yaml:"timezone"`
}

type MongoConfig struct {
	URI  string `yaml:"uri"`
	Name string `yaml:"name"`
}

// MailConfig selects between the Brevo HTTP API and plain SMTP.
type MailConfig struct {
	BrevoKey      string `yaml:"brevo_key"`
	SenderName    string `yaml:"sender_name"`
	SenderAddress string `yaml:"sender_address"`
	SMTPHost      string `yaml:"smtp_host"`
	SMTPPort      int    `yaml:"smtp_port"`
	SMTPUser      string `yaml:"smtp_user"`
	SMTPPass      string `yaml:"smtp_pass"`
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

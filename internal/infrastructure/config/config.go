package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Portal PortalConfig
	Mail   MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=agency_crm"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// PortalConfig locates the client-facing portal that invitation emails link to.
type PortalConfig struct {
	BaseURL    string `env:"PORTAL_BASE_URL, default=https://portal.example.com"`
	SignupPath string `env:"PORTAL_SIGNUP_PATH, default=/signup"`
}

// MailConfig points at the transactional email provider used for invites.
type MailConfig struct {
	APIURL string `env:"MAIL_API_URL"`
	APIKey string `env:"MAIL_API_KEY"`
	From   string `env:"MAIL_FROM, default=no-reply@example.com"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// UploadDir is the content area for locally stored product images.
	// Files in it are served publicly under /uploads.
	UploadDir string `env:"UPLOAD_DIR, default=public/uploads"`

	// Admin holds the initial administrator credentials. Used only when
	// no admin record exists yet; never a baked-in default.
	Admin AdminConfig

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type SessionConfig struct {
	TTL time.Duration `env:"SESSION_TTL, default=8h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=affiliate_catalog"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

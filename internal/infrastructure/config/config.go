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

	// StrictPassword makes the password length rule block submission
	// instead of being advisory only.
	StrictPassword bool `env:"STRICT_PASSWORD, default=false"`

	Upstream UpstreamConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type UpstreamConfig struct {
	BaseURL   string        `env:"UPSTREAM_BASE_URL, default=http://localhost:5000"`
	UploadURL string        `env:"UPLOAD_URL,        default=http://localhost:5000/api/upload"`
	Timeout   time.Duration `env:"UPSTREAM_TIMEOUT,  default=10s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,      default=admin_console"`
	// AuditEnabled turns the Mongo-backed action trail on or off.
	AuditEnabled bool `env:"AUDIT_ENABLED, default=true"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

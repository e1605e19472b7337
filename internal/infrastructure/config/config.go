package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	BaseURL  string `env:"FINRATING_BASE_URL, default=http://localhost:8080"`
	Env      string `env:"ENV,                default=development"`
	LogLevel string `env:"LOG_LEVEL,          default=info"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`
	UploadTimeout  time.Duration `env:"UPLOAD_TIMEOUT,  default=60s"`

	PageSize  int    `env:"PAGE_SIZE,  default=20"`
	TokenFile string `env:"TOKEN_FILE, default=.finrating-token"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

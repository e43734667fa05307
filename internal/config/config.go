package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

type Config struct {
	RunAddress          string        `envconfig:"RUN_ADDRESS"`
	OrderServiceAddress string        `envconfig:"ORDER_SERVICE_ADDRESS"`
	LogLevel            string        `envconfig:"LOG_LEVEL"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT"`
	ErrorTTL            time.Duration `envconfig:"ERROR_TTL"`
	SuccessTTL          time.Duration `envconfig:"SUCCESS_TTL"`
	SweepInterval       time.Duration `envconfig:"SWEEP_INTERVAL"`
	AllowedOrigins      []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// New reads flags from args, then lets the environment (and a .env file, if
// present) override them.
func New(args []string) (*Config, error) {
	cfg := &Config{}

	flags := pflag.NewFlagSet("orderdesk", pflag.ContinueOnError)
	flags.StringVarP(&cfg.RunAddress, "address", "a", "localhost:8080", "console address and port")
	flags.StringVarP(&cfg.OrderServiceAddress, "orders", "r", "http://localhost:8081", "order service base URL")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.DurationVar(&cfg.RequestTimeout, "request-timeout", 10*time.Second, "timeout for a single backend request")
	flags.DurationVar(&cfg.ErrorTTL, "error-ttl", 5*time.Second, "how long error notifications stay visible")
	flags.DurationVar(&cfg.SuccessTTL, "success-ttl", 3*time.Second, "how long success notifications stay visible")
	flags.DurationVar(&cfg.SweepInterval, "sweep-interval", time.Second, "how often expired notifications are dropped")
	flags.StringSliceVar(&cfg.AllowedOrigins, "cors-origin", []string{"*"}, "allowed CORS origins")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.RunAddress == "":
		return errors.New("run address is empty")
	case c.OrderServiceAddress == "":
		return errors.New("order service address is empty")
	case c.ErrorTTL <= 0 || c.SuccessTTL <= 0:
		return errors.New("notification ttl must be positive")
	}
	return nil
}

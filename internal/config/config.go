package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"adsync/internal/config/configs"
)

// maxPageSize is the largest page the partner programs API serves.
const maxPageSize = 40

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev).
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection. Environment variables
	// prefixed with PSQL_ will populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Partner configures the programs API (PARTNER_ prefix).
	Partner configs.Partner `envPrefix:"PARTNER_"`

	// Business configures the business API (BUSINESS_ prefix).
	Business configs.Business `envPrefix:"BUSINESS_"`

	Cache     configs.Cache     `envPrefix:"CACHE_"`
	Scheduler configs.Scheduler `envPrefix:"SCHEDULER_"`
}

// Load reads configuration from environment variables into a Config and
// validates it. All fields are loaded with their specified defaults when no
// environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the partner APIs or the scheduler cannot honour.
func (c Config) Validate() error {
	var errs []error
	if c.Partner.PageSize < 1 || c.Partner.PageSize > maxPageSize {
		errs = append(errs, fmt.Errorf("PARTNER_PAGE_SIZE must be between 1 and %d", maxPageSize))
	}
	if c.Partner.Concurrency < 1 {
		errs = append(errs, errors.New("PARTNER_CONCURRENCY must be at least 1"))
	}
	if c.Partner.RetryAttempts < 1 {
		errs = append(errs, errors.New("PARTNER_RETRY_ATTEMPTS must be at least 1"))
	}
	if c.Business.Concurrency < 1 {
		errs = append(errs, errors.New("BUSINESS_CONCURRENCY must be at least 1"))
	}
	if c.Business.RatePerSecond <= 0 {
		errs = append(errs, errors.New("BUSINESS_RATE_PER_SECOND must be positive"))
	}
	if c.Scheduler.Enabled {
		if c.Scheduler.Interval <= 0 {
			errs = append(errs, errors.New("SCHEDULER_INTERVAL must be positive"))
		}
		if len(c.Scheduler.Owners) == 0 {
			errs = append(errs, errors.New("SCHEDULER_OWNERS is required when the scheduler is enabled"))
		}
	}
	return errors.Join(errs...)
}

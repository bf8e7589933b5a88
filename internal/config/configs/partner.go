package configs

import "time"

// Partner configures the primary programs API and the paged fetch. The
// partner serves at most 40 records per page.
type Partner struct {
	BaseURL  string `env:"BASE_URL" envDefault:"http://localhost:9000/v1"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	PageSize      int           `env:"PAGE_SIZE" envDefault:"40"`
	Concurrency   int           `env:"CONCURRENCY" envDefault:"40"`
	RetryAttempts int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"RETRY_DELAY" envDefault:"500ms"`
	ProgressEvery int           `env:"PROGRESS_EVERY" envDefault:"10"`

	// Timeout bounds a whole request, ConnectTimeout only the dial.
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
}

// Business configures the secondary business API. It throttles at about 20
// concurrent requests, hence the low defaults.
type Business struct {
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:9000/v1"`
	Token   string `env:"TOKEN"`

	Concurrency   int     `env:"CONCURRENCY" envDefault:"5"`
	RatePerSecond float64 `env:"RATE_PER_SECOND" envDefault:"10"`
	Burst         int     `env:"BURST" envDefault:"5"`

	Timeout        time.Duration `env:"TIMEOUT" envDefault:"10s"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
}

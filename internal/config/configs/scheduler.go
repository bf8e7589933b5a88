package configs

import "time"

// Scheduler configures the periodic background sync of a fixed owner list.
type Scheduler struct {
	Enabled  bool          `env:"ENABLED" envDefault:"false"`
	Interval time.Duration `env:"INTERVAL" envDefault:"1h"`
	Owners   []string      `env:"OWNERS" envSeparator:","`
}

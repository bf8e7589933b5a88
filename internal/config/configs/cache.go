package configs

import "time"

// Cache configures the badger cache. An empty Path keeps it in memory.
type Cache struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Path    string        `env:"PATH"`
	TTL     time.Duration `env:"TTL" envDefault:"30m"`
}

package configs

import "time"

// HTTP defines configuration for the HTTP server. SyncRateLimit bounds how
// many sync runs a single client IP may start per SyncRateWindow.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// ShutdownTimeout bounds graceful shutdown of in-flight requests,
	// including streaming sync responses.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	SyncRateLimit  int           `env:"SYNC_RATE_LIMIT" envDefault:"5"`
	SyncRateWindow time.Duration `env:"SYNC_RATE_WINDOW" envDefault:"1m"`
}

// Package httppo is a multi-threaded static-file HTTP/1.1 server. It
// serves files from the process's working directory over plain TCP,
// dispatching each accepted connection to a fixed pool of worker
// goroutines backed by the packages under internal/.
package httppo

import (
	"runtime"
	"time"

	"github.com/atmatm9182/httppo-go/log"
)

// Config holds the tunables for a Server.
type Config struct {
	// Port is the TCP port to listen on.
	Port int

	// Threads is the number of worker goroutines. Zero or negative is
	// clamped to runtime.NumCPU().
	Threads int

	// MaxRequestSize bounds a single recv, overriding
	// internal/httpcodec.MaxRequestSize for this server.
	MaxRequestSize int

	// IdleSweepInterval is how often the file cache's idle sweep runs.
	IdleSweepInterval time.Duration

	// CacheIdleThreshold is how long a cached file may go unread before
	// a sweep evicts it.
	CacheIdleThreshold time.Duration

	// Logger receives the server's log output. Nil defaults to
	// log.NewConsoleLogger, colorized lines to stdout.
	Logger *log.Logger
}

// DefaultConfig returns a Config with sensible defaults:
//   - Port: 6969
//   - Threads: runtime.NumCPU()
//   - MaxRequestSize: 1024
//   - IdleSweepInterval: 1 second
//   - CacheIdleThreshold: 2.5 seconds
func DefaultConfig() Config {
	return Config{
		Port:               6969,
		Threads:            runtime.NumCPU(),
		MaxRequestSize:     1024,
		IdleSweepInterval:  time.Second,
		CacheIdleThreshold: 2500 * time.Millisecond,
	}
}

func (c Config) normalized() Config {
	if c.Threads < 1 {
		c.Threads = runtime.NumCPU()
	}
	if c.MaxRequestSize < 1 {
		c.MaxRequestSize = 1024
	}
	if c.IdleSweepInterval <= 0 {
		c.IdleSweepInterval = time.Second
	}
	if c.CacheIdleThreshold <= 0 {
		c.CacheIdleThreshold = 2500 * time.Millisecond
	}
	return c
}

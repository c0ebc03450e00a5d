package localstore

import (
	"fmt"
	"time"
)

// Config holds database configuration settings
type Config struct {
	Path         string
	MaxReadConns int
	BusyTimeout  time.Duration
	CacheSizeKB  int
}

// DefaultConfig returns default database configuration
func DefaultConfig() *Config {
	return &Config{
		MaxReadConns: 5,
		BusyTimeout:  5 * time.Second,
		CacheSizeKB:  16000,
	}
}

// pragmas returns SQLite PRAGMA statements based on configuration
func (c *Config) pragmas() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = memory",
		fmt.Sprintf("PRAGMA busy_timeout = %d", c.BusyTimeout.Milliseconds()),
		fmt.Sprintf("PRAGMA cache_size = -%d", c.CacheSizeKB),
	}
}

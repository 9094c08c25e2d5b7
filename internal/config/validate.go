package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if c.Storage.BusyTimeoutMs < 0 {
		return fmt.Errorf("storage.busy_timeout_ms must be >= 0 (got %d)", c.Storage.BusyTimeoutMs)
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}
	if c.Perf.SlowQueryMs < 0 {
		return fmt.Errorf("perf.slow_query_ms must be >= 0 (got %d)", c.Perf.SlowQueryMs)
	}
	if c.Perf.RingSize <= 0 {
		return fmt.Errorf("perf.ring_size must be > 0 (got %d)", c.Perf.RingSize)
	}
	return nil
}

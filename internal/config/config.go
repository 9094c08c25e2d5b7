package config

// Config is the root application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Perf    PerfConfig    `yaml:"perf"`
}

// StorageConfig holds the local SQLite store settings.
type StorageConfig struct {
	Path          string `yaml:"path"            env:"TIMETABLE_DB_PATH"      env-default:"timetable.db"`
	Key           string `yaml:"key"             env:"TIMETABLE_STORAGE_KEY"  env-default:"timetable-data"`
	Disabled      bool   `yaml:"disabled"        env:"TIMETABLE_NO_STORAGE"   env-default:"false"`
	BusyTimeoutMs int    `yaml:"busy_timeout_ms" env:"TIMETABLE_BUSY_TIMEOUT" env-default:"5000"`
}

// Enabled reports whether a storage medium should be opened.
func (s StorageConfig) Enabled() bool {
	return !s.Disabled && s.Path != ""
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// PerfConfig holds timing collection settings.
type PerfConfig struct {
	SlowQueryMs int `yaml:"slow_query_ms" env:"TIMETABLE_SLOW_QUERY_MS" env-default:"50"`
	RingSize    int `yaml:"ring_size"     env:"TIMETABLE_PERF_RING"     env-default:"1000"`
}

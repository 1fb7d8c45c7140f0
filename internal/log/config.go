package log

// Config controls the process-wide logger.
type Config struct {
	Level  string     `mapstructure:"level"`  // debug / info / warn / error
	Format string     `mapstructure:"format"` // json / text
	File   FileConfig `mapstructure:"file"`
}

// FileConfig enables rotated file output next to stdout.
type FileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

package config

// Config represents the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Diff    DiffConfig    `yaml:"diff"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig identifies the review server. A URL configured here
// takes precedence over one advertised through repository properties.
type ServerConfig struct {
	URL string `yaml:"url"`
}

// DiffConfig holds default diff options.
type DiffConfig struct {
	// ShowCopiesAsAdds is "y" or "n", or empty to decide per run.
	ShowCopiesAsAdds string `yaml:"showCopiesAsAdds"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig controls log verbosity: 0 warns, 1 informs, 2 debugs.
type LoggingConfig struct {
	Verbosity int `yaml:"verbosity"`
}

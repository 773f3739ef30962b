// Package config handles inspector configuration loading and management.
package config

// Config holds all inspector settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Games   GamesConfig   `yaml:"games"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds settings for the embedded web server.
type ServerConfig struct {
	Listen      string `yaml:"listen"`
	OpenBrowser bool   `yaml:"open_browser"`
}

// GamesConfig holds settings about the inspected installation.
type GamesConfig struct {
	// LastOpenedDir is remembered between runs so the folder picker
	// starts where the user left off.
	LastOpenedDir string `yaml:"last_opened_dir"`

	// GameOrder overrides the built-in oldest-to-newest release table
	// used to flag the latest variant of a resource.
	GameOrder []string `yaml:"game_order"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:      "127.0.0.1:8736",
			OpenBrowser: true,
		},
		Games: GamesConfig{
			LastOpenedDir: "",
			GameOrder:     nil,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagListen  = flag.String("listen", "", "Web server listen address")
	flagNoOpen  = flag.Bool("no-browser", false, "Do not open the browser on startup")
	flagGameDir = flag.String("games", "", "The Sims 2 installation directory or single package file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// GameDir returns the installation path given on the command line, if any.
// When empty the folder picker asks for one.
func GameDir() string {
	return *flagGameDir
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagListen != "" {
		cfg.Server.Listen = *flagListen
	}
	if *flagNoOpen {
		cfg.Server.OpenBrowser = false
	}
}

// Package main is the entry point for the S2UI inspector.
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/s2tools/s2ui/internal/config"
	"github.com/s2tools/s2ui/internal/inspector"
	"github.com/s2tools/s2ui/internal/logger"
	"github.com/s2tools/s2ui/internal/session"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== S2UI Inspector ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	path := gamePath(cfg)
	if path == "" {
		logger.Error("no installation directory selected")
		os.Exit(1)
	}

	s := session.New(cfg.Games.GameOrder, logger.Log)
	defer s.Close()

	if err := s.Load(path); err != nil {
		logger.Error("failed to load UI resources", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}

	// Remember the folder for next time.
	cfg.Games.LastOpenedDir = path
	if err := cfg.Save(); err != nil {
		logger.Warn("failed to save config", zap.Error(err))
	}

	url := "http://" + cfg.Server.Listen
	fmt.Printf("Serving %s at %s\n", path, url)
	if cfg.Server.OpenBrowser {
		openBrowser(url)
	}

	srv := inspector.NewServer(s, logger.Log)
	if err := http.ListenAndServe(cfg.Server.Listen, srv); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

// gamePath resolves the installation to inspect: the --games flag first,
// then a native folder picker starting from the last opened directory.
func gamePath(cfg *config.Config) string {
	if path := config.GameDir(); path != "" {
		return path
	}

	picker := dialog.Directory().Title("Where is The Sims 2 (and expansions) installed?")
	if cfg.Games.LastOpenedDir != "" {
		picker = picker.SetStartDir(cfg.Games.LastOpenedDir)
	}
	path, err := picker.Browse()
	if err != nil {
		return ""
	}
	return path
}

// openBrowser points the default browser at the served page. Failure is
// harmless, the URL is printed either way.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logger.Debug("could not open browser", zap.Error(err))
	}
}

package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"fitcoach/internal/api"
	"fitcoach/internal/auth"
	"fitcoach/internal/config"
	"fitcoach/internal/service"
	"fitcoach/internal/session"
	"fitcoach/internal/store"
	"fitcoach/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating default config: %w", err)
		}
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	logger, logClose, err := openLogger()
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logClose()

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Restore auth if a previous session left a token
	var token string
	storedAuth, err := db.GetAuth()
	switch {
	case err == nil:
		token = storedAuth.Token
	case errors.Is(err, store.ErrNoAuth):
		// First run or logged out, start at the login screen
	default:
		return fmt.Errorf("checking auth: %w", err)
	}

	tokenSource := auth.NewTokenSource(token)
	client := api.NewClient(cfg.API.BaseURL, tokenSource, logger)

	// Restore whatever session survives locally; the post-login fetch
	// replaces it with the server's copy.
	cache := session.NewCache(db, logger)
	state := cache.Restore()

	coachSvc := service.NewCoach(client, cache, tokenSource, db, state, logger)
	historySvc := service.NewHistoryService(client, db, logger)

	// Launch TUI
	app := tui.NewApp(coachSvc, historySvc, cfg.Display, tokenSource.Authenticated())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// openLogger writes structured logs to ~/.fitcoach/fitcoach.log. The
// terminal belongs to the TUI, so nothing logs to stderr.
func openLogger() (zerolog.Logger, func(), error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, "fitcoach.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}

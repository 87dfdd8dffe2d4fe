package cmd

import (
	"fmt"
	"os"

	"github.com/ziadkadry99/sketchbook/internal/config"
	"github.com/ziadkadry99/sketchbook/internal/content"
	"github.com/ziadkadry99/sketchbook/internal/db"
	"github.com/ziadkadry99/sketchbook/internal/input"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sketchbook init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadStack reads the page stack named by the config.
func loadStack(cfg *config.Config) (*content.Stack, error) {
	stack, err := content.Load(cfg.ContentDir, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("loading pages from %s: %w", cfg.ContentDir, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d pages from %s\n", stack.Len(), cfg.ContentDir)
	}
	return stack, nil
}

// openDatabase opens the SQLite database inside the data directory.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

func thresholds(cfg *config.Config) input.Thresholds {
	return input.Thresholds{Wheel: cfg.WheelThreshold, Swipe: cfg.SwipeThreshold}
}

// darkPages marks the pages drawn in the dark palette.
func darkPages(stack *content.Stack) map[int]bool {
	dark := make(map[int]bool)
	for i, sec := range stack.Sections {
		if sec.Dark {
			dark[i] = true
		}
	}
	return dark
}

// pageName labels a page index by its section id.
func pageName(sections []content.Section, i int) string {
	if i >= 0 && i < len(sections) {
		return sections[i].ID
	}
	return fmt.Sprintf("#%d", i)
}

package config

import (
	"path/filepath"
	"time"
)

// DefaultExcludes are glob patterns never loaded as pages.
var DefaultExcludes = []string{
	"*.draft.md",
	"README.md",
	"node_modules/**",
	".git/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:          "Hira Binta Usman | Sketchbook",
		Artist:         "Hira Binta Usman",
		Brand:          "Hira's Sketching",
		ContentDir:     "content",
		Include:        []string{"**/*.md"},
		Exclude:        append([]string(nil), DefaultExcludes...),
		DataDir:        ".sketchbook",
		Port:           8080,
		TurnDurationMS: 650,
		FrameRate:      60,
		WheelThreshold: 20,
		SwipeThreshold: 50,
		HistoryDays:    90,
		Renderer:       RendererStack,
		Render: RenderConfig{
			Width:     1280,
			Height:    800,
			Frames:    24,
			OutputDir: "frames",
		},
	}
}

// TurnDuration returns the configured page-turn length.
func (c *Config) TurnDuration() time.Duration {
	return time.Duration(c.TurnDurationMS) * time.Millisecond
}

// DatabasePath returns the SQLite file inside the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "sketchbook.db")
}

// AssetsDir returns the directory served under /assets.
func (c *Config) AssetsDir() string {
	return filepath.Join(c.ContentDir, "assets")
}

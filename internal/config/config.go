package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override the config file.
const EnvPrefix = "SKETCHBOOK_"

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".sketchbook.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SKETCHBOOK_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: SKETCHBOOK_PORT -> port,
	// SKETCHBOOK_RENDER__WIDTH -> render.width.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validRenderers is the set of recognized renderer values.
var validRenderers = map[RendererType]bool{
	RendererStack:    true,
	RendererSkeleton: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.TurnDurationMS <= 0 {
		return fmt.Errorf("turn_duration_ms must be positive")
	}
	if c.FrameRate <= 0 || c.FrameRate > 240 {
		return fmt.Errorf("frame_rate must be between 1 and 240")
	}
	if c.WheelThreshold < 0 {
		return fmt.Errorf("wheel_threshold must be non-negative")
	}
	if c.SwipeThreshold < 0 {
		return fmt.Errorf("swipe_threshold must be non-negative")
	}
	if c.HistoryDays < 0 {
		return fmt.Errorf("history_days must be non-negative")
	}
	if c.NotifyWebhook != "" {
		u, err := url.Parse(c.NotifyWebhook)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("notify_webhook must be an http(s) URL")
		}
	}
	if !validRenderers[c.Renderer] {
		return fmt.Errorf("invalid renderer %q: must be one of stack, skeleton", c.Renderer)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be positive")
	}
	if c.Render.Frames < 2 {
		return fmt.Errorf("render.frames must be at least 2")
	}
	return nil
}

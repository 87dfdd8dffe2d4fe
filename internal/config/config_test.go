package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.TurnDuration() != 650*time.Millisecond {
		t.Errorf("expected 650ms turn, got %v", cfg.TurnDuration())
	}
	if cfg.Renderer != RendererStack {
		t.Errorf("expected default renderer %q, got %q", RendererStack, cfg.Renderer)
	}
	if cfg.DatabasePath() != filepath.Join(".sketchbook", "sketchbook.db") {
		t.Errorf("unexpected database path %q", cfg.DatabasePath())
	}
}

func TestDefaultExcludesNotShared(t *testing.T) {
	a := DefaultConfig()
	a.Exclude = append(a.Exclude[:1], "x")
	b := DefaultConfig()
	if b.Exclude[1] != "README.md" || DefaultExcludes[1] != "README.md" {
		t.Errorf("default excludes were mutated: %v", b.Exclude)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.sketchbook.yml")

	original := DefaultConfig()
	original.Artist = "A. Painter"
	original.Port = 9090
	original.Renderer = RendererSkeleton
	original.Include = []string{"pages/*.md"}
	original.WheelThreshold = 35.5
	original.Render.Frames = 48

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Artist != original.Artist {
		t.Errorf("artist: got %q, want %q", loaded.Artist, original.Artist)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Renderer != original.Renderer {
		t.Errorf("renderer: got %q, want %q", loaded.Renderer, original.Renderer)
	}
	if loaded.WheelThreshold != original.WheelThreshold {
		t.Errorf("wheel_threshold: got %f, want %f", loaded.WheelThreshold, original.WheelThreshold)
	}
	if loaded.Render.Frames != 48 {
		t.Errorf("render.frames: got %d, want 48", loaded.Render.Frames)
	}
	if len(loaded.Include) != 1 || loaded.Include[0] != "pages/*.md" {
		t.Errorf("include: got %v", loaded.Include)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Title != DefaultConfig().Title {
		t.Errorf("expected default title, got %q", cfg.Title)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("SKETCHBOOK_PORT", "7000")
	t.Setenv("SKETCHBOOK_CONTENT_DIR", "pages")
	t.Setenv("SKETCHBOOK_RENDER__WIDTH", "640")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 7000 {
		t.Errorf("port override failed: got %d", loaded.Port)
	}
	if loaded.ContentDir != "pages" {
		t.Errorf("content_dir override failed: got %q", loaded.ContentDir)
	}
	if loaded.Render.Width != 640 {
		t.Errorf("render.width override failed: got %d", loaded.Render.Width)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty content dir", func(c *Config) { c.ContentDir = "" }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"zero turn", func(c *Config) { c.TurnDurationMS = 0 }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"negative wheel", func(c *Config) { c.WheelThreshold = -1 }},
		{"negative swipe", func(c *Config) { c.SwipeThreshold = -1 }},
		{"negative history", func(c *Config) { c.HistoryDays = -1 }},
		{"bad webhook", func(c *Config) { c.NotifyWebhook = "ftp://example.com" }},
		{"unknown renderer", func(c *Config) { c.Renderer = "raytrace" }},
		{"zero width", func(c *Config) { c.Render.Width = 0 }},
		{"one frame", func(c *Config) { c.Render.Frames = 1 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should be valid, got: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.md", []string{"**/*.md"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}

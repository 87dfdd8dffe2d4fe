package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to sketchbook! Let's set up your portfolio.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Artist and title.
	artist, err := (&promptui.Prompt{Label: "Artist name", Default: cfg.Artist}).Run()
	if err != nil {
		return nil, fmt.Errorf("artist: %w", err)
	}
	cfg.Artist = strings.TrimSpace(artist)

	title, err := (&promptui.Prompt{Label: "Page title", Default: cfg.Artist + " | Sketchbook"}).Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cfg.Title = strings.TrimSpace(title)

	brand, err := (&promptui.Prompt{Label: "Navigation bar brand", Default: cfg.Brand}).Run()
	if err != nil {
		return nil, fmt.Errorf("brand: %w", err)
	}
	cfg.Brand = strings.TrimSpace(brand)

	// 2. Content directory.
	contentDir, err := (&promptui.Prompt{Label: "Content directory (markdown pages)", Default: cfg.ContentDir}).Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = strings.TrimSpace(contentDir)
	if _, err := os.Stat(cfg.ContentDir); os.IsNotExist(err) {
		fmt.Printf("Note: %s does not exist yet; the built-in pages will be served until it does.\n", cfg.ContentDir)
	}

	// 3. Extra exclude patterns.
	excludeStr, err := (&promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)
	}

	// 4. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 5. Frame renderer.
	rendererPrompt := promptui.Select{
		Label: "Renderer for exported frames",
		Items: []string{
			"stack    | flat pages rotating about the spine",
			"skeleton | bending pages driven by damped joints",
		},
	}
	idx, _, err := rendererPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("renderer selection: %w", err)
	}
	cfg.Renderer = []RendererType{RendererStack, RendererSkeleton}[idx]

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

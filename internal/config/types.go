package config

// RendererType selects how page turns are drawn by `sketchbook render`.
type RendererType string

const (
	RendererStack    RendererType = "stack"
	RendererSkeleton RendererType = "skeleton"
)

// Config is the top-level sketchbook configuration, corresponding to .sketchbook.yml.
type Config struct {
	Title           string       `yaml:"title" koanf:"title"`
	Artist          string       `yaml:"artist" koanf:"artist"`
	Brand           string       `yaml:"brand" koanf:"brand"`
	ContentDir      string       `yaml:"content_dir" koanf:"content_dir"`
	Include         []string     `yaml:"include" koanf:"include"`
	Exclude         []string     `yaml:"exclude" koanf:"exclude"`
	DataDir         string       `yaml:"data_dir" koanf:"data_dir"`
	Port            int          `yaml:"port" koanf:"port"`
	AllowAllOrigins bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AdminToken      string       `yaml:"admin_token,omitempty" koanf:"admin_token"`
	NotifyWebhook   string       `yaml:"notify_webhook,omitempty" koanf:"notify_webhook"`
	TurnDurationMS  int          `yaml:"turn_duration_ms" koanf:"turn_duration_ms"`
	FrameRate       int          `yaml:"frame_rate" koanf:"frame_rate"`
	WheelThreshold  float64      `yaml:"wheel_threshold" koanf:"wheel_threshold"`
	SwipeThreshold  float64      `yaml:"swipe_threshold" koanf:"swipe_threshold"`
	HistoryDays     int          `yaml:"history_days" koanf:"history_days"`
	Renderer        RendererType `yaml:"renderer" koanf:"renderer"`
	Render          RenderConfig `yaml:"render" koanf:"render"`
}

// RenderConfig holds settings for PNG frame export.
type RenderConfig struct {
	Width     int    `yaml:"width" koanf:"width"`
	Height    int    `yaml:"height" koanf:"height"`
	Frames    int    `yaml:"frames" koanf:"frames"`
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
}

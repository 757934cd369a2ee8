package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of one render job
type Config struct {
	Composition    string      `yaml:"composition"`
	FPS            int         `yaml:"fps"`
	Width          int         `yaml:"width"`
	Height         int         `yaml:"height"`
	DurationFrames int         `yaml:"duration_frames"` // 0 = derived from the composition
	Workers        int         `yaml:"workers"`         // 0 = one per logical CPU
	ScenarioPath   string      `yaml:"scenario"`
	OutputPlan     string      `yaml:"output"`
	Encoder        string      `yaml:"encoder"` // libx264, h264_nvenc, h264_videotoolbox
	Quality        int         `yaml:"quality"`
	Log            LogConfig   `yaml:"log"`
	Theme          ThemeConfig `yaml:"theme"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"` // DEBUG, INFO, WARN, ERROR
	Path  string `yaml:"path"`  // optional log file, in addition to stderr
}

// ThemeConfig controls theme resolution
type ThemeConfig struct {
	ID          string            `yaml:"id"`
	PalettesDir string            `yaml:"palettes_dir"` // "~" is expanded
	Files       map[string]string `yaml:"files"`        // theme id -> palette file name
	Presets     map[string]Preset `yaml:"presets"`      // named presets layered above the built-ins
}

// Preset is a possibly partial colour record
type Preset struct {
	Primary     string `yaml:"primary,omitempty"`
	Bg          string `yaml:"bg,omitempty"`
	Accent      string `yaml:"accent,omitempty"`
	Fg          string `yaml:"fg,omitempty"`
	BgSecondary string `yaml:"bg_secondary,omitempty"`
	BgTertiary  string `yaml:"bg_tertiary,omitempty"`
}

// SegmentParams carries the per-segment render parameters handed to effects
type SegmentParams struct {
	Width, Height  int
	FPS            int
	DurationFrames int
	Text           string
	SegmentIndex   int
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Composition: "Teaser",
		FPS:         30,
		Width:       1920,
		Height:      1080,
		OutputPlan:  filepath.Join("output", "plan.yaml"),
		Encoder:     "libx264",
		Quality:     23,
		Log: LogConfig{
			Level: "INFO",
		},
		Theme: ThemeConfig{
			ID:          "wad",
			PalettesDir: filepath.Join("~", "design-assets", "color-palettes"),
			Files: map[string]string{
				"wad":      "wad-dark-theme.json",
				"bloghead": "bloghead-theme.json",
				"ea":       "ea-solutions-theme.json",
			},
		},
	}
}

// Validate checks the frame geometry
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("frame size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.DurationFrames < 0 {
		return fmt.Errorf("duration_frames must not be negative, got %d", c.DurationFrames)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// ResolvedPalettesDir expands a leading "~" in PalettesDir
func (t ThemeConfig) ResolvedPalettesDir() string {
	dir := t.PalettesDir
	if dir == "~" || len(dir) > 1 && dir[0] == '~' && os.IsPathSeparator(dir[1]) {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, dir[1:])
	}
	return dir
}

// Load loads the configuration from the given path.
// A missing file is created with default values; an existing file is merged
// over the defaults and not written back.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the path, creating its directory
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# teaserkit configuration
# composition: TitleCard, LowerThird, EndCard, Teaser
# theme.id: wad, bloghead, ea, or a key of theme.presets

`)
	data = append(header, data...)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

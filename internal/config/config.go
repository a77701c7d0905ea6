// Package config loads imagedeck settings from defaults, an optional TOML
// file, IMAGEDECK_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/VantageDataChat/imagedeck"
	"github.com/VantageDataChat/imagedeck/settings"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. IMAGEDECK_LAYOUT_COLOR.
	EnvPrefix = "IMAGEDECK"
	// FileName is the config file looked up in the working directory.
	FileName = "imagedeck.toml"
	// DefaultOutput is the presentation written when no path is given.
	DefaultOutput = "new_presentation.pptx"

	appName = "imagedeck"
)

// ErrExists is returned by Write when the target file is already there.
var ErrExists = errors.New("config file already exists")

// Config is the effective configuration.
type Config struct {
	Layout  LayoutConfig  `mapstructure:"layout" toml:"layout"`
	Output  OutputConfig  `mapstructure:"output" toml:"output"`
	Preview PreviewConfig `mapstructure:"preview" toml:"preview"`
	GUI     GUIConfig     `mapstructure:"gui" toml:"gui"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// LayoutConfig mirrors settings.Settings with plain types. Lengths are in
// inches, the line width in points.
type LayoutConfig struct {
	TopMargin    float64 `mapstructure:"top_margin" toml:"top_margin"`
	LeftMargin   float64 `mapstructure:"left_margin" toml:"left_margin"`
	RightMargin  float64 `mapstructure:"right_margin" toml:"right_margin"`
	BottomMargin float64 `mapstructure:"bottom_margin" toml:"bottom_margin"`
	HSpacing     float64 `mapstructure:"h_spacing" toml:"h_spacing"`
	VSpacing     float64 `mapstructure:"v_spacing" toml:"v_spacing"`
	LineWidth    float64 `mapstructure:"line_width" toml:"line_width"`
	Color        string  `mapstructure:"color" toml:"color"`
	Rounded      bool    `mapstructure:"rounded" toml:"rounded"`
}

// OutputConfig controls where and how the presentation is written.
// DiscardUnsupported allows appending to a file whose text, shapes or notes
// would be removed.
type OutputConfig struct {
	Path               string `mapstructure:"path" toml:"path"`
	Override           bool   `mapstructure:"override" toml:"override"`
	SlideSize          string `mapstructure:"slide_size" toml:"slide_size"`
	DiscardUnsupported bool   `mapstructure:"discard_unsupported" toml:"discard_unsupported"`
}

// PreviewConfig controls slide preview rendering.
type PreviewConfig struct {
	Width  int    `mapstructure:"width" toml:"width"`
	Format string `mapstructure:"format" toml:"format"`
}

// GUIConfig holds the initial state of the desktop window. Override starts
// checked so every run writes a fresh presentation.
type GUIConfig struct {
	Override bool `mapstructure:"override" toml:"override"`
}

// LogConfig holds the log level name (debug, info, warn, error).
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	d := settings.Default()

	// -- Layout --
	v.SetDefault("layout.top_margin", float64(d.TopMargin))
	v.SetDefault("layout.left_margin", float64(d.LeftMargin))
	v.SetDefault("layout.right_margin", float64(d.RightMargin))
	v.SetDefault("layout.bottom_margin", float64(d.BottomMargin))
	v.SetDefault("layout.h_spacing", float64(d.HSpacing))
	v.SetDefault("layout.v_spacing", float64(d.VSpacing))
	v.SetDefault("layout.line_width", float64(d.LineWidth))
	v.SetDefault("layout.color", d.Color().Hex())
	v.SetDefault("layout.rounded", d.Rounded)

	// -- Output --
	v.SetDefault("output.path", DefaultOutput)
	v.SetDefault("output.override", false)
	v.SetDefault("output.slide_size", imagedeck.LayoutScreen4x3)
	v.SetDefault("output.discard_unsupported", false)

	// -- Preview --
	v.SetDefault("preview.width", 960)
	v.SetDefault("preview.format", "png")

	// -- GUI --
	v.SetDefault("gui.override", true)

	// -- Log --
	v.SetDefault("log.level", "info")
}

// Default returns the configuration built from defaults alone.
func Default() Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return cfg
}

// Setup prepares v: defaults, environment variables and the config file.
// An explicit file must exist; otherwise the first of ./imagedeck.toml and
// $XDG_CONFIG_HOME/imagedeck/config.toml that exists is read, and having
// neither is fine. It returns the file used, or "".
func Setup(v *viper.Viper, file string) (string, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		file = Locate()
	}
	if file == "" {
		return "", nil
	}
	v.SetConfigFile(file)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("error reading config file %s: %w", file, err)
	}
	return file, nil
}

// Locate returns the first config file found in the lookup order, or "".
func Locate() string {
	candidates := []string{FileName}
	if p, err := UserPath(); err == nil {
		candidates = append(candidates, p)
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// UserPath returns the per-user config file path
// ($XDG_CONFIG_HOME/imagedeck/config.toml, falling back to ~/.config).
func UserPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that have a fixed vocabulary. Lengths are not
// checked: degenerate layouts are allowed.
func (c Config) Validate() error {
	if _, err := c.Settings(); err != nil {
		return fmt.Errorf("layout.color: %w", err)
	}
	if _, err := imagedeck.ParseLayout(c.Output.SlideSize); err != nil {
		return fmt.Errorf("output.slide_size: %w", err)
	}
	if _, err := imagedeck.ParseImageFormat(c.Preview.Format); err != nil {
		return fmt.Errorf("preview.format: %w", err)
	}
	if c.Preview.Width <= 0 {
		return fmt.Errorf("preview.width must be a positive integer")
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Settings converts the layout section to settings.Settings.
func (c Config) Settings() (settings.Settings, error) {
	s := settings.Settings{
		TopMargin:    settings.Inches(c.Layout.TopMargin),
		LeftMargin:   settings.Inches(c.Layout.LeftMargin),
		RightMargin:  settings.Inches(c.Layout.RightMargin),
		BottomMargin: settings.Inches(c.Layout.BottomMargin),
		HSpacing:     settings.Inches(c.Layout.HSpacing),
		VSpacing:     settings.Inches(c.Layout.VSpacing),
		LineWidth:    settings.Points(c.Layout.LineWidth),
		Rounded:      c.Layout.Rounded,
	}
	if err := s.SetColorString(c.Layout.Color); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}

// SetSettings copies s into the layout section.
func (c *Config) SetSettings(s settings.Settings) {
	c.Layout = LayoutConfig{
		TopMargin:    float64(s.TopMargin),
		LeftMargin:   float64(s.LeftMargin),
		RightMargin:  float64(s.RightMargin),
		BottomMargin: float64(s.BottomMargin),
		HSpacing:     float64(s.HSpacing),
		VSpacing:     float64(s.VSpacing),
		LineWidth:    float64(s.LineWidth),
		Color:        s.Color().Hex(),
		Rounded:      s.Rounded,
	}
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (charmlog.Level, error) {
	return charmlog.ParseLevel(c.Log.Level)
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Write saves c as a TOML file at path, creating parent directories. An
// existing file is only replaced when force is set.
func Write(path string, c Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

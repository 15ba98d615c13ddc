// Package config provides configuration loading for imageview.
// It supports loading from YAML files and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/imageview"
)

// DefaultFile is the config file looked up in the working directory when
// no path is given.
const DefaultFile = "imageview.yaml"

// Environment variables read by Load.
const (
	EnvResources = "IMAGEVIEW_RESOURCES"
	EnvLogLevel  = "IMAGEVIEW_LOG_LEVEL"
	EnvSeed      = "IMAGEVIEW_SEED"
	EnvMute      = "IMAGEVIEW_MUTE"
)

// Config contains all imageview settings.
type Config struct {
	Window    WindowConfig    `json:"window" yaml:"window"`
	Resources ResourcesConfig `json:"resources" yaml:"resources"`
	Assets    AssetsConfig    `json:"assets" yaml:"assets"`
	Animation AnimationConfig `json:"animation" yaml:"animation"`
	Lines     LinesConfig     `json:"lines" yaml:"lines"`
	Text      TextConfig      `json:"text" yaml:"text"`
	Colors    ColorsConfig    `json:"colors" yaml:"colors"`
	Audio     AudioConfig     `json:"audio" yaml:"audio"`
	Renderer  RendererConfig  `json:"renderer" yaml:"renderer"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

// WindowConfig configures the window frontend.
type WindowConfig struct {
	Title  string `json:"title" yaml:"title"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// ResourcesConfig lists the directories assets are searched in, first
// match wins. Empty means resources.DefaultDirs.
type ResourcesConfig struct {
	Paths []string `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// AssetsConfig holds the virtual paths of the scene's assets.
type AssetsConfig struct {
	Image string `json:"image" yaml:"image"`
	Font  string `json:"font" yaml:"font"`
	Sound string `json:"sound" yaml:"sound"`
}

// AnimationConfig configures the brightness oscillator.
type AnimationConfig struct {
	// TickRate is the number of oscillator steps per second.
	TickRate int `json:"tick_rate" yaml:"tick_rate"`
	Lower    int `json:"lower" yaml:"lower"`
	Upper    int `json:"upper" yaml:"upper"`
}

// LinesConfig configures the crazy lines.
type LinesConfig struct {
	Seed   uint64  `json:"seed" yaml:"seed"`
	Count  int     `json:"count" yaml:"count"`
	Origin Point   `json:"origin" yaml:"origin"`
	Width  float64 `json:"width" yaml:"width"`
}

// Point is a position in pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect is a rectangle in pixels.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// TextConfig configures the headline and the caption on its banner.
type TextConfig struct {
	Headline     string  `json:"headline" yaml:"headline"`
	HeadlineSize float64 `json:"headline_size" yaml:"headline_size"`
	Caption      string  `json:"caption" yaml:"caption"`
	CaptionSize  float64 `json:"caption_size" yaml:"caption_size"`
	Banner       Rect    `json:"banner" yaml:"banner"`
}

// ColorsConfig holds the fixed colours of the scene.
type ColorsConfig struct {
	Clear   Color `json:"clear" yaml:"clear"`
	Caption Color `json:"caption" yaml:"caption"`
	Banner  Color `json:"banner" yaml:"banner"`
}

// AudioConfig configures sound playback.
type AudioConfig struct {
	// Mute replaces the audio device with a silent player.
	Mute       bool    `json:"mute" yaml:"mute"`
	Volume     float64 `json:"volume" yaml:"volume"`
	Loop       bool    `json:"loop" yaml:"loop"`
	SampleRate int     `json:"sample_rate" yaml:"sample_rate"`
}

// RendererConfig configures gg.
type RendererConfig struct {
	// Shaper is "builtin" (default) or "gotext".
	Shaper string `json:"shaper" yaml:"shaper"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is "debug", "info" (default), "warn" or "error".
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config reproducing the original demo.
func Default() *Config {
	sc := imageview.DefaultSceneConfig()
	return &Config{
		Window: WindowConfig{
			Title:  "imageview",
			Width:  800,
			Height: 600,
		},
		Assets: AssetsConfig{
			Image: sc.ImagePath,
			Font:  sc.FontPath,
			Sound: sc.SoundPath,
		},
		Animation: AnimationConfig{
			TickRate: sc.TickRate,
			Lower:    sc.LowerBound,
			Upper:    sc.UpperBound,
		},
		Lines: LinesConfig{
			Seed:   sc.Seed,
			Count:  sc.Walker.Segments,
			Origin: Point{X: sc.Walker.Origin.X, Y: sc.Walker.Origin.Y},
			Width:  sc.Walker.Width,
		},
		Text: TextConfig{
			Headline:     sc.Headline,
			HeadlineSize: sc.HeadlineSize,
			Caption:      sc.Caption,
			CaptionSize:  sc.CaptionSize,
			Banner:       Rect(sc.Banner),
		},
		Colors: ColorsConfig{
			Clear:   Color{sc.ClearColor},
			Caption: Color{sc.CaptionColor},
			Banner:  Color{sc.BannerColor},
		},
		Audio: AudioConfig{
			Volume:     1,
			Loop:       false,
			SampleRate: 44100,
		},
		Renderer: RendererConfig{
			Shaper: "builtin",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration and applies environment overrides.
// Order: defaults -> file -> environment variables.
//
// An empty path loads DefaultFile if it exists and the defaults otherwise.
func Load(path string) (*Config, error) {
	config := Default()

	switch {
	case path != "":
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	default:
		if _, statErr := os.Stat(DefaultFile); statErr == nil {
			fileConfig, err := LoadFromFile(DefaultFile)
			if err != nil {
				return nil, err
			}
			config = fileConfig
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	config := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Animation.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.Animation.TickRate)
	}
	if c.Animation.Lower >= c.Animation.Upper {
		return fmt.Errorf("animation bounds must satisfy lower < upper, got (%d, %d]", c.Animation.Lower, c.Animation.Upper)
	}

	if c.Lines.Count < 0 {
		return fmt.Errorf("lines count must be non-negative, got %d", c.Lines.Count)
	}
	if !positive(c.Lines.Width) {
		return fmt.Errorf("line width must be positive, got %v", c.Lines.Width)
	}
	if !finite(c.Lines.Origin.X) || !finite(c.Lines.Origin.Y) {
		return fmt.Errorf("lines origin must be finite, got (%v, %v)", c.Lines.Origin.X, c.Lines.Origin.Y)
	}

	if !positive(c.Text.HeadlineSize) || !positive(c.Text.CaptionSize) {
		return fmt.Errorf("text sizes must be positive, got %v and %v", c.Text.HeadlineSize, c.Text.CaptionSize)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("volume must be between 0 and 1, got %f", c.Audio.Volume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.Audio.SampleRate)
	}

	validShapers := map[string]bool{"": true, "builtin": true, "gotext": true}
	if !validShapers[c.Renderer.Shaper] {
		return fmt.Errorf("invalid shaper: %s (valid: builtin, gotext)", c.Renderer.Shaper)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel returns the configured level. Empty means info.
func (c LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Level)
	}
	return level, nil
}

// SceneConfig converts c into the scene's configuration. Text is
// normalised to NFC so the shaper sees composed characters.
func (c *Config) SceneConfig() imageview.SceneConfig {
	return imageview.SceneConfig{
		ImagePath:    c.Assets.Image,
		FontPath:     c.Assets.Font,
		SoundPath:    c.Assets.Sound,
		Headline:     norm.NFC.String(c.Text.Headline),
		HeadlineSize: c.Text.HeadlineSize,
		Caption:      norm.NFC.String(c.Text.Caption),
		CaptionSize:  c.Text.CaptionSize,
		CaptionColor: c.Colors.Caption.RGBA,
		Banner:       imageview.Rect(c.Text.Banner),
		BannerColor:  c.Colors.Banner.RGBA,
		ClearColor:   c.Colors.Clear.RGBA,
		Seed:         c.Lines.Seed,
		TickRate:     c.Animation.TickRate,
		LowerBound:   c.Animation.Lower,
		UpperBound:   c.Animation.Upper,
		Walker: imageview.Walker{
			Origin:   imageview.Point{X: c.Lines.Origin.X, Y: c.Lines.Origin.Y},
			Segments: c.Lines.Count,
			Width:    c.Lines.Width,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv(EnvResources); v != "" {
		config.Resources.Paths = filepath.SplitList(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		config.Lines.Seed = seed
	}

	if v := os.Getenv(EnvMute); v != "" {
		config.Audio.Mute = v == "true" || v == "1"
	}

	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func positive(f float64) bool { return f > 0 && finite(f) }

// Color is a colour written as "#rgb", "#rrggbb", "#rrggbbaa" or a CSS
// colour name such as "midnightblue".
type Color struct {
	color.RGBA
}

// ParseColor parses a hex colour or a CSS colour name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return parseHex(hex)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{c}, nil
	}
	return Color{}, fmt.Errorf("invalid colour %q: want #rgb, #rrggbb, #rrggbbaa or a CSS colour name", s)
}

func parseHex(hex string) (Color, error) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid colour #%s: want 3, 6 or 8 hex digits", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour #%s: %w", hex, err)
	}
	return Color{color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}}, nil
}

// String returns the colour as "#rrggbb", or "#rrggbbaa" if not opaque.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: colour must be a string", node.Line)
	}
	parsed, err := ParseColor(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

package config

import (
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/imageview"
)

func TestDefault(t *testing.T) {
	config := Default()

	require.NoError(t, config.Validate())
	assert.Equal(t, 800, config.Window.Width)
	assert.Equal(t, 600, config.Window.Height)
	assert.Equal(t, "#1a334d", config.Colors.Clear.String())
	assert.Equal(t, "info", config.Logging.Level)
	assert.False(t, config.Audio.Mute)

	assert.Equal(t, imageview.DefaultSceneConfig(), config.SceneConfig(),
		"defaults must reproduce the demo scene")
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
window:
  title: lines
  width: 1024
lines:
  seed: 42
  count: 10
  origin: {x: 10, y: 20}
colors:
  clear: midnightblue
  banner: "#f00"
audio:
  mute: true
  volume: 0.5
renderer:
  shaper: gotext
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

	config, err := LoadFromFile(configPath)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, "lines", config.Window.Title)
	assert.Equal(t, 1024, config.Window.Width)
	assert.Equal(t, 600, config.Window.Height, "unset keys keep their defaults")
	assert.Equal(t, uint64(42), config.Lines.Seed)
	assert.Equal(t, 10, config.Lines.Count)
	assert.Equal(t, Point{X: 10, Y: 20}, config.Lines.Origin)
	assert.Equal(t, 3.0, config.Lines.Width)
	assert.Equal(t, color.RGBA{R: 25, G: 25, B: 112, A: 255}, config.Colors.Clear.RGBA)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, config.Colors.Banner.RGBA)
	assert.True(t, config.Audio.Mute)
	assert.Equal(t, 0.5, config.Audio.Volume)
	assert.Equal(t, "gotext", config.Renderer.Shaper)

	sc := config.SceneConfig()
	assert.Equal(t, uint64(42), sc.Seed)
	assert.Equal(t, imageview.Point{X: 10, Y: 20}, sc.Walker.Origin)
	assert.Equal(t, 10, sc.Walker.Segments)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "window: [", "parsing config file"},
		{"unknown key", "window:\n  depth: 3\n", "depth"},
		{"bad colour", "colors:\n  clear: notacolour\n", "invalid colour"},
		{"colour map", "colors:\n  clear: {r: 1}\n", "colour must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	config, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvResources, strings.Join([]string{"a", "b"}, string(filepath.ListSeparator)))
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSeed, "0x2a")
	t.Setenv(EnvMute, "1")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, config.Resources.Paths)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, uint64(42), config.Lines.Seed)
	assert.True(t, config.Audio.Mute)
}

func TestLoad_BadSeed(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvSeed, "-1")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSeed)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("lines:\n  seed: 7\n"), 0o600))

	config, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), config.Lines.Seed)

	config, err = Load(filepath.Join(dir, DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), config.Lines.Seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"window", func(c *Config) { c.Window.Height = 0 }, "window size"},
		{"tick rate", func(c *Config) { c.Animation.TickRate = 0 }, "tick_rate"},
		{"bounds", func(c *Config) { c.Animation.Lower = 250 }, "lower < upper"},
		{"count", func(c *Config) { c.Lines.Count = -1 }, "count"},
		{"width", func(c *Config) { c.Lines.Width = 0 }, "line width"},
		{"origin", func(c *Config) { c.Lines.Origin.X = math.Inf(1) }, "origin"},
		{"text size", func(c *Config) { c.Text.CaptionSize = -32 }, "text sizes"},
		{"volume", func(c *Config) { c.Audio.Volume = 1.5 }, "volume"},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 0 }, "sample_rate"},
		{"shaper", func(c *Config) { c.Renderer.Shaper = "harfbuzz" }, "shaper"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := LoggingConfig{Level: in}.SlogLevel()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestSceneConfig_NormalizesText(t *testing.T) {
	c := Default()
	c.Text.Headline = "Cafe\u0301"

	assert.Equal(t, "Caf\u00e9", c.SceneConfig().Headline)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#1a334d", want: color.RGBA{R: 26, G: 51, B: 77, A: 255}},
		{in: "#FFF", want: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "#00000080", want: color.RGBA{A: 128}},
		{in: " White ", want: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "black", want: color.RGBA{A: 255}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.RGBA)
		})
	}
}

func TestColor_YAMLRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(ColorsConfig{
		Clear:   Color{color.RGBA{R: 26, G: 51, B: 77, A: 255}},
		Caption: Color{color.RGBA{R: 1, G: 2, B: 3, A: 4}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "#1a334d")
	assert.Contains(t, string(out), "#01020304")

	var back ColorsConfig
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 4}, back.Caption.RGBA)
}

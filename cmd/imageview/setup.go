package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/internal/assets"
	"github.com/gogpu/imageview/internal/config"
	"github.com/gogpu/imageview/internal/ggrender"
	"github.com/gogpu/imageview/internal/resources"
)

// loadConfig loads the config file, applies environment overrides and
// then any flags set on the command line, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("resources") {
		cfg.Resources.Paths, _ = flags.GetStringSlice("resources")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("seed") {
		cfg.Lines.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("mute") {
		cfg.Audio.Mute, _ = flags.GetBool("mute")
	}
	if flags.Changed("width") {
		cfg.Window.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Window.Height, _ = flags.GetInt("height")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setup installs the logger and text shaper and opens the asset loader.
func setup(cmd *cobra.Command, cfg *config.Config) (*assets.Loader, error) {
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return nil, err
	}
	imageview.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))

	if err := ggrender.SetShaper(cfg.Renderer.Shaper); err != nil {
		return nil, err
	}

	dirs := cfg.Resources.Paths
	if len(dirs) == 0 {
		dirs = resources.DefaultDirs()
	}
	fsys := resources.New(dirs...)
	fsys.LogContents()

	return assets.New(fsys, cfg.Audio.SampleRate), nil
}

// addSceneFlags adds the flags shared by every command that shows the scene.
func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("seed", imageview.DefaultSeed, "Seed of the crazy lines")
	cmd.Flags().Int("width", 800, "Width in pixels")
	cmd.Flags().Int("height", 600, "Height in pixels")
}

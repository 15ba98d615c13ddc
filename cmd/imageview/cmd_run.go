package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/internal/audio"
	"github.com/gogpu/imageview/internal/frontend"
	"github.com/gogpu/imageview/internal/timer"
	"github.com/gogpu/imageview/internal/window"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the demo window (default)",
		Long: `Open the demo window. Escape or closing the window quits.

The oscillator ticks at animation.tick_rate regardless of the display rate.`,
		Args: cobra.NoArgs,
		RunE: runWindow,
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	addSceneFlags(cmd)
	cmd.Flags().Bool("mute", false, "Do not open the audio device")
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loader, err := setup(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = loader.Close() }()

	var player imageview.AudioPlayer
	if cfg.Audio.Mute {
		player = &audio.Silent{}
	} else {
		p := audio.NewPlayer(audio.Options{
			SampleRate: cfg.Audio.SampleRate,
			Volume:     cfg.Audio.Volume,
			Loop:       cfg.Audio.Loop,
		})
		defer func() { _ = p.Close() }()
		player = p
	}

	scene, err := imageview.NewScene(cfg.SceneConfig(), loader, player)
	if err != nil {
		return err
	}

	return window.Run(cmd.Context(), window.Options{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	}, frontend.NewLoop(scene, timer.New()))
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/internal/audio"
	"github.com/gogpu/imageview/internal/frontend"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render frames to PNG files without a window",
		Long: `Render frames offscreen with a simulated clock running at --fps and
write every --every-th frame to --out as frame-NNNN.png. Sound is muted.`,
		Example: `  imageview render --frames 502 --every 50 --out frames/`,
		Args:    cobra.NoArgs,
		RunE:    runRender,
	}
	addSceneFlags(cmd)
	cmd.Flags().Int("frames", 60, "Number of frames to simulate")
	cmd.Flags().Int("every", 1, "Write every n-th frame")
	cmd.Flags().Int("fps", frontend.DefaultFrameRate, "Simulated display rate")
	cmd.Flags().String("out", "frames", "Output directory")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loader, err := setup(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = loader.Close() }()

	scene, err := imageview.NewScene(cfg.SceneConfig(), loader, &audio.Silent{})
	if err != nil {
		return err
	}

	frames, _ := cmd.Flags().GetInt("frames")
	every, _ := cmd.Flags().GetInt("every")
	fps, _ := cmd.Flags().GetInt("fps")
	out, _ := cmd.Flags().GetString("out")

	paths, err := frontend.RenderFrames(cmd.Context(), scene, frontend.HeadlessOptions{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Frames:    frames,
		Every:     every,
		FrameRate: fps,
		OutDir:    out,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", len(paths), out)
	return nil
}

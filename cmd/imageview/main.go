// Command imageview shows an image, two lines of text and a field of
// randomly walking lines whose brightness pulses, with a sound playing in
// the background.
//
// Usage:
//
//	imageview [run]                      open the window
//	imageview render --frames 120 --out frames/
//	imageview version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "imageview",
		Short: "gg image, text, sound and random-walk demo",
		Long: `imageview draws a brightness-pulsing image and headline, a caption on a
black banner, and 100 randomly walking line segments, while a sound plays.

Assets are looked up by virtual path ("/dragon1.png") in the resource
directories, first match wins.`,
		Args:          cobra.NoArgs,
		RunE:          runWindow,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringSlice("resources", nil, "Resource directories, searched in order")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	addRunFlags(rootCmd)

	rootCmd.AddCommand(
		newRunCmd(),
		newRenderCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "imageview version %s\n", imageview.Version)
		},
	}
	return cmd
}

// Command texel edits and exports small square pixel textures.
//
//	texel run wall.yaml --out build --watch
//	texel show texture_16x16.png --zoom 2
//	texel edit --size 32 --color '#79e68a'
//	texel sizes
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcmodkit/texel"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "texel",
		Short:         "Pixel texture editor",
		Long:          "texel paints square pixel textures (8, 16, 32 or 64 pixels wide) from edit scripts or an interactive terminal editor, and exports them as PNG, BMP, TIFF or PDF.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose {
				texel.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log editor activity to stderr")

	root.AddCommand(newRunCmd(), newShowCmd(), newEditCmd(), newSizesCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "texel:", err)
		os.Exit(1)
	}
}

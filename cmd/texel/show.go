package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcmodkit/texel"
	"github.com/mcmodkit/texel/internal/termview"
)

func newShowCmd() *cobra.Command {
	var zoom float64

	cmd := &cobra.Command{
		Use:   "show IMAGE",
		Short: "Print a texture to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := texel.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), termview.Render(g, termview.WithScale(termview.ScaleForZoom(zoom))))
			return nil
		},
	}
	cmd.Flags().Float64VarP(&zoom, "zoom", "z", 1, "terminal columns per pixel")
	return cmd
}

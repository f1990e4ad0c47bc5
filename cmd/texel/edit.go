package main

import (
	"github.com/spf13/cobra"

	"github.com/mcmodkit/texel"
	"github.com/mcmodkit/texel/internal/tui"
)

func newEditCmd() *cobra.Command {
	var (
		size  int
		color string
		load  string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive terminal editor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ed, err := newEditor(size, color, load)
			if err != nil {
				return err
			}
			return tui.Run(ed, out)
		},
	}
	cmd.Flags().IntVarP(&size, "size", "s", texel.DefaultSize, "grid size: 8, 16, 32 or 64")
	cmd.Flags().StringVarP(&color, "color", "c", texel.DefaultColor.String(), "initial brush colour")
	cmd.Flags().StringVarP(&load, "load", "l", "", "start from an existing texture")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "export directory")
	return cmd
}

func newEditor(size int, color, load string) (*texel.Editor, error) {
	c, err := texel.ParseColor(color)
	if err != nil {
		return nil, err
	}
	ed, err := texel.NewEditor(texel.WithSize(size), texel.WithColor(c))
	if err != nil {
		return nil, err
	}
	if load != "" {
		g, err := texel.LoadFile(load)
		if err != nil {
			return nil, err
		}
		if err := ed.Load(g); err != nil {
			return nil, err
		}
	}
	return ed, nil
}

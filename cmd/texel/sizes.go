package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcmodkit/texel"
)

func newSizesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sizes",
		Short: "List the supported grid sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, n := range texel.SupportedSizes {
				def := ""
				if n == texel.DefaultSize {
					def = "default"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", n, texel.ExportFilename(n, texel.PNG), def)
			}
			return w.Flush()
		},
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcmodkit/texel"
	"github.com/mcmodkit/texel/internal/script"
)

func newRunCmd() *cobra.Command {
	var (
		out    string
		format string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Apply an edit script and export the result",
		Long: `Replays the steps of a YAML edit script on a fresh canvas and writes the
texture named texture_{N}x{N}.{format}.

--out and --format override the script's export section. With --watch the
script is re-run every time it is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			path := args[0]
			runOnce := func() error {
				res, err := runScript(ctx, path, out, format)
				if err != nil {
					return err
				}
				if res.Path != "" {
					fmt.Fprintln(cmd.OutOrStdout(), res.Path)
				}
				return nil
			}

			if err := runOnce(); err != nil {
				if !watch {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "texel:", err)
			}
			if !watch {
				return nil
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s\n", path)
			return script.Watch(ctx, path, 0, func() {
				if err := runOnce(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "texel:", err)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "export directory (default: the script's, or its own directory)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: png, bmp, tiff or pdf")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run whenever the script changes")
	return cmd
}

// runScript loads and runs one script. A non-empty out or format forces an
// export even when the script has none.
func runScript(ctx context.Context, path, out, format string) (*script.Result, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	if out != "" || format != "" {
		if s.Export == nil {
			s.Export = &script.Export{}
		}
		if out != "" {
			abs, err := filepath.Abs(out)
			if err != nil {
				return nil, err
			}
			s.Export.Dir = abs
		}
		if format != "" {
			if _, err := texel.ParseFormat(format); err != nil {
				return nil, err
			}
			s.Export.Format = format
		}
	}
	return script.Run(ctx, s, filepath.Dir(path))
}

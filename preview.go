package main

import (
	"codeberg.org/miketth/tagcycle/pkg/config"
	"codeberg.org/miketth/tagcycle/pkg/cycler"
	"codeberg.org/miketth/tagcycle/pkg/layout"
	"fmt"
	"github.com/spf13/cobra"
	"io"
	"strconv"
)

func newPreviewCmd(opts *options) *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "preview [windows]",
		Short: "Print the window rectangles every configured layout produces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			windows := 3
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 0 {
					return fmt.Errorf("invalid window count %q", args[0])
				}
				windows = n
			}

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			generators, err := cfg.BuildGenerators()
			if err != nil {
				return fmt.Errorf("build generators: %w", err)
			}

			// the same check the daemon runs on startup
			layouts, err := cycler.New[int](generators)
			if err != nil {
				return err
			}

			return writePreview(cmd.OutOrStdout(), layouts.Generators(), windows, layout.Rect{Width: width, Height: height})
		},
	}

	cmd.Flags().Float64Var(&width, "width", 1920, "output width")
	cmd.Flags().Float64Var(&height, "height", 1080, "output height")

	return cmd
}

func writePreview(w io.Writer, generators []layout.Generator, windows int, area layout.Rect) error {
	for i, g := range generators {
		if _, err := fmt.Fprintf(w, "%2d  %s\n", i, layout.Describe(g)); err != nil {
			return err
		}
		for slot, r := range layout.Arrange(layout.Generate(g, windows), area) {
			if _, err := fmt.Fprintf(w, "      %d: %4.0fx%-4.0f at %4.0f,%-4.0f\n", slot, r.Width, r.Height, r.X, r.Y); err != nil {
				return err
			}
		}
	}
	return nil
}

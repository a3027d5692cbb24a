package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/HamStudy/vscroll/internal/components/performance"
)

type windowFlags struct {
	items      int
	itemHeight float64
	height     float64
	overscan   int
	offsets    []float64
	virtual    bool
}

func newWindowCmd() *cobra.Command {
	flags := &windowFlags{}

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the visible and render windows for scroll offsets",
		Long: `Compute the windows a list would render at each given scroll offset
without opening the interactive view.

Example:
  vscroll window --items 1000 --item-height 50 --height 500 --offset 0 --offset 2500

Output:
  offset=0 visible=[0,10] render=[0,13] offsetY=0 total=50000
  offset=2500 visible=[50,60] render=[47,63] offsetY=2350 total=50000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := performance.Config{
				ItemHeight:      flags.itemHeight,
				ContainerHeight: flags.height,
				Overscan:        flags.overscan,
				ItemCount:       flags.items,
			}
			return printWindows(cmd.OutOrStdout(), cfg, flags.offsets, flags.virtual)
		},
	}

	cmd.Flags().IntVar(&flags.items, "items", 1000, "number of items in the list")
	cmd.Flags().Float64Var(&flags.itemHeight, "item-height", 50, "height of one item")
	cmd.Flags().Float64Var(&flags.height, "height", 500, "height of the viewport")
	cmd.Flags().IntVar(&flags.overscan, "overscan", performance.DefaultOverscan, "items rendered beyond each edge of the viewport")
	cmd.Flags().Float64SliceVar(&flags.offsets, "offset", []float64{0}, "scroll offset to evaluate (repeatable)")
	cmd.Flags().BoolVar(&flags.virtual, "virtual", false, "also list each virtual item")

	return cmd
}

func printWindows(w io.Writer, cfg performance.Config, offsets []float64, virtual bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("window: %w", err)
	}

	var buf []performance.VirtualItem
	for _, offset := range offsets {
		win := performance.ComputeWindow(cfg, offset)
		fmt.Fprintf(w, "offset=%g %s offsetY=%g total=%g\n",
			offset, win, win.OffsetY(cfg.ItemHeight), cfg.TotalHeight())

		if !virtual {
			continue
		}
		buf = performance.ListVirtualItems(win, cfg.ItemHeight, buf)
		for _, vi := range buf {
			marker := " "
			if vi.IsVisible {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %d top=%g\n", marker, vi.Index, vi.OffsetTop)
		}
	}
	return nil
}

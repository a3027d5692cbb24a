package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/HamStudy/vscroll/internal/components/performance"
	"github.com/HamStudy/vscroll/internal/config"
	"github.com/HamStudy/vscroll/internal/items"
	"github.com/HamStudy/vscroll/internal/log"
	"github.com/HamStudy/vscroll/internal/ui"
)

const defaultGeneratedItems = 10000

// CLIFlags holds the root command flags
type CLIFlags struct {
	items      int
	itemHeight int
	overscan   int
	theme      string
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &CLIFlags{}

	cmd := &cobra.Command{
		Use:   "vscroll [file]",
		Short: "Scroll through very long lists in the terminal",
		Long: `vscroll shows the lines of a file, of stdin, or a generated list in a
scrollable view that only ever draws the rows on screen.

Examples:
  vscroll /var/log/syslog
  seq 1 1000000 | vscroll
  vscroll --items 500000 --overscan 10`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.Setup(flags.debug)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return log.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, flags)
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "write debug logging to the state directory")
	bindListFlags(cmd, flags)

	cmd.AddCommand(newWindowCmd(), newConfigCmd())

	return cmd
}

func bindListFlags(cmd *cobra.Command, flags *CLIFlags) {
	cmd.Flags().IntVar(&flags.items, "items", defaultGeneratedItems, "number of rows to generate when no input is given")
	cmd.Flags().IntVar(&flags.itemHeight, "item-height", 1, "height of every row in terminal lines")
	cmd.Flags().IntVar(&flags.overscan, "overscan", performance.DefaultOverscan, "rows rendered beyond each edge of the screen")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "color theme (default, light, high-contrast)")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/vscroll/config.yaml)")
}

func runList(cmd *cobra.Command, args []string, flags *CLIFlags) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	opts := buildOptions(cfg, cmd, flags)

	rows, fromStdin, err := readItems(args, cmd.InOrStdin(), flags.items)
	if err != nil {
		return err
	}
	log.Printf("loaded %d items", len(rows))

	app, err := ui.NewApp(rows, opts)
	if err != nil {
		return err
	}

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	}
	if fromStdin {
		// stdin carries the list, so keys come from the terminal
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	if _, err := tea.NewProgram(app, programOpts...).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	if log.DebugEnabled() {
		log.Printf("performance: %v", app.Monitor().GetSummary())
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	loader, err := openConfig("", path)
	if err != nil {
		return nil, err
	}
	return loader.Get(), nil
}

// openConfig loads path, or the config file in dir when path is empty
func openConfig(dir, path string) (*config.Loader, error) {
	loader := config.NewLoader(dir)
	var err error
	if path != "" {
		err = loader.LoadFrom(path)
	} else {
		err = loader.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return loader, nil
}

// buildOptions layers explicitly set flags over the loaded config
func buildOptions(cfg *config.Config, cmd *cobra.Command, flags *CLIFlags) ui.Options {
	opts := ui.DefaultOptions()

	if cfg.Theme != "" {
		opts.Theme = cfg.Theme
	}
	if cfg.List != nil {
		if cfg.List.ItemHeight > 0 {
			opts.ItemHeight = cfg.List.ItemHeight
		}
		if d := cfg.List.FrameInterval.Std(); d > 0 {
			opts.FrameInterval = d
		}
		if d := cfg.List.SmoothScrollDuration.Std(); d > 0 {
			opts.SmoothScrollDuration = d
		}
		if cfg.List.Easing != "" {
			opts.Easing = cfg.List.Easing
		}
	}
	opts.Overscan = cfg.OverscanOrDefault(opts.Overscan)
	opts.ShowOverscan = cfg.ShowOverscanOrDefault(opts.ShowOverscan)
	opts.ShowStats = cfg.ShowStatsOrDefault(opts.ShowStats)

	if cmd.Flags().Changed("item-height") {
		opts.ItemHeight = flags.itemHeight
	}
	if cmd.Flags().Changed("overscan") {
		opts.Overscan = flags.overscan
	}
	if cmd.Flags().Changed("theme") {
		opts.Theme = flags.theme
	}
	return opts
}

// readItems picks the list source: a file argument, piped stdin, or
// generated rows. The bool reports whether stdin was consumed.
func readItems(args []string, stdin io.Reader, generate int) ([]items.Item, bool, error) {
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, false, fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		rows, err := items.FromReader(f)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return rows, false, nil
	}

	if (len(args) == 1 && args[0] == "-") || isPiped(stdin) {
		rows, err := items.FromReader(stdin)
		if err != nil {
			return nil, true, fmt.Errorf("failed to read stdin: %w", err)
		}
		return rows, true, nil
	}

	if generate < 0 {
		return nil, false, fmt.Errorf("--items must not be negative, got %d", generate)
	}
	return items.Generate(generate), false, nil
}

// isPiped reports whether r is a non-terminal file such as a pipe or redirect
func isPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

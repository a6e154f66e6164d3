package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/codexrays/internal/app"
	"github.com/five82/codexrays/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.3.0"

// options holds the raw flag values. Only flags the user actually passed are
// applied on top of the file and environment settings.
type options struct {
	configPath    string
	prefsPath     string
	file          string
	fromStart     bool
	maxItems      int
	linesPerItem  int
	linesExpanded int
	prettyPreview bool
	prettyMode    string
	jsonPretty    bool
	keepANSI      bool
	charBudget    int
	exportDir     string
	debugLog      string
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd(&options{}).ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrLogNotFound):
		fmt.Fprintf(os.Stderr, "codexrays: %v\n", err)
		return 2
	default:
		fmt.Fprintf(os.Stderr, "codexrays: %v\n", err)
		return 1
	}
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "codexrays",
		Short:         "Real-time streaming log viewer for Codex TUI logs",
		Long:          "codexrays tails the Codex TUI log, reassembles streamed response items and shows them live in the terminal.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *o, os.Getenv)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), cfg, app.Options{PrefsPath: o.prefsPath, Version: version})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.configPath, "config", "", "Config file path (default ~/.config/codexrays/config.toml)")
	flags.StringVar(&o.prefsPath, "prefs", "", "Preferences file path (default ~/.config/codexrays/prefs.toml)")
	flags.StringVarP(&o.file, config.FlagFile, "f", "", "Path to log file to follow (default ~/.codex/log/codex-tui.log)")
	flags.BoolVar(&o.fromStart, config.FlagFromStart, false, "Read from start instead of tailing from end")
	flags.IntVar(&o.maxItems, config.FlagMaxItems, 0, "Max distinct item streams to track (default 200)")
	flags.IntVarP(&o.linesPerItem, config.FlagLinesPerItem, "L", 0, "Maximum wrapped lines per entry in list view (default 5)")
	flags.IntVar(&o.linesExpanded, config.FlagLinesExpanded, 0, "Lines to show when an item is expanded with 'm' (default 12)")
	flags.BoolVar(&o.prettyPreview, config.FlagPrettyPreview, false, "Render emoji/parsed previews in list view (or set XRAYS_PRETTY=1)")
	flags.StringVar(&o.prettyMode, config.FlagPrettyMode, "", "Pretty preview style when enabled: summary or hybrid")
	flags.BoolVar(&o.jsonPretty, config.FlagJSONPretty, false, "In detail view, pretty-print JSON with simple colors")
	flags.BoolVar(&o.keepANSI, config.FlagKeepANSI, false, "Do not strip ANSI color codes from recent logs")
	flags.IntVar(&o.charBudget, config.FlagCharBudget, 0, "Characters kept per item (default 8192)")
	flags.StringVar(&o.exportDir, config.FlagExportDir, "", "Directory for exported items (default current directory)")
	flags.StringVar(&o.debugLog, config.FlagDebugLog, "", "Write debug logging to this file")

	return cmd
}

// resolveConfig layers defaults, the config file, the environment and the
// flags the user passed, in that order.
func resolveConfig(cmd *cobra.Command, o options, getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if err := cfg.ApplyEnv(getenv, flags.Changed); err != nil {
		return config.Config{}, err
	}

	if flags.Changed(config.FlagFile) {
		cfg.File = config.ExpandPath(o.file)
	}
	if flags.Changed(config.FlagFromStart) {
		cfg.FromStart = o.fromStart
	}
	if flags.Changed(config.FlagMaxItems) {
		cfg.MaxItems = o.maxItems
	}
	if flags.Changed(config.FlagLinesPerItem) {
		cfg.LinesPerItem = o.linesPerItem
	}
	if flags.Changed(config.FlagLinesExpanded) {
		cfg.LinesExpanded = o.linesExpanded
	}
	if flags.Changed(config.FlagPrettyPreview) {
		cfg.PrettyPreview = o.prettyPreview
	}
	if flags.Changed(config.FlagPrettyMode) {
		cfg.PrettyMode = strings.ToLower(strings.TrimSpace(o.prettyMode))
	}
	if flags.Changed(config.FlagJSONPretty) {
		cfg.JSONPretty = o.jsonPretty
	}
	if flags.Changed(config.FlagKeepANSI) {
		cfg.StripANSI = !o.keepANSI
	}
	if flags.Changed(config.FlagCharBudget) {
		cfg.CharBudget = o.charBudget
	}
	if flags.Changed(config.FlagExportDir) {
		cfg.ExportDir = config.ExpandPath(o.exportDir)
	}
	if flags.Changed(config.FlagDebugLog) {
		cfg.DebugLog = config.ExpandPath(o.debugLog)
	}

	cfg.Finalize()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

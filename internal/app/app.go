package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/codexrays/internal/config"
	"github.com/five82/codexrays/internal/export"
	"github.com/five82/codexrays/internal/ingest"
	"github.com/five82/codexrays/internal/logtail"
	"github.com/five82/codexrays/internal/prefs"
	"github.com/five82/codexrays/internal/state"
	"github.com/five82/codexrays/internal/ui"
	"github.com/five82/codexrays/internal/view"
)

// ErrLogNotFound is returned when the log file does not exist at startup.
var ErrLogNotFound = errors.New("log file not found")

// Options configure the viewer.
type Options struct {
	PrefsPath string // empty uses default ~/.config/codexrays/prefs.toml
	Version   string
}

// Run boots the viewer on cfg until the user quits or the context is
// cancelled. cfg must already be finalized and validated.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	if err := checkLogFile(cfg.File); err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	tailer := logtail.New(cfg.File, cfg.FromStart)
	if err := tailer.Open(); err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = tailer.Close() }()

	store := state.NewStore(state.Options{
		MaxItems:    cfg.MaxItems,
		CharBudget:  cfg.CharBudget,
		RecentLimit: cfg.RecentLimit,
	})
	v := view.New()
	pipeline := ingest.New(tailer, store, v, ingest.Options{StripANSI: cfg.StripANSI})

	log.Printf("watching %s (from start: %v)", tailer.Path(), tailer.FromStart())

	return ui.Run(ctx, ui.Options{
		Config:    cfg,
		Pipeline:  pipeline,
		Tailer:    tailer,
		View:      v,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Copier:    export.DefaultCopier(),
		Version:   opts.Version,
	})
}

func checkLogFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrLogNotFound, path)
		}
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("log file %s is a directory", path)
	}
	return nil
}

// setupLogging routes the standard logger to path, or discards it when path
// is empty. The terminal belongs to the UI while it runs.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "codexrays")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

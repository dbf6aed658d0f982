package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/forgepatch/internal/config"
	"github.com/roach88/forgepatch/internal/recordstore"
)

// loadSettings reads the settings file named by --config, or the defaults
// when there is none, and applies the --db override.
func loadSettings(opts *RootOptions) (*config.Settings, error) {
	var s *config.Settings
	if opts.Config == "" {
		def := config.Default()
		s = &def
	} else {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		s = loaded
	}
	if opts.Database != "" {
		s.Database = opts.Database
	}
	return s, nil
}

// openDatabase opens the record database. With mustExist, a missing file
// is an error instead of a new empty database.
func openDatabase(path string, mustExist bool) (*recordstore.SQLite, error) {
	if mustExist {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
	}
	slog.Debug("opening database", "path", path)
	return recordstore.Open(path)
}

func closeDatabase(db *recordstore.SQLite) {
	if err := db.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// signalContext is cancelled on SIGINT/SIGTERM or when the command's
// context ends.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, stopping after the current item", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vyrodovalexey/grocerylist/internal/blob"
	"github.com/vyrodovalexey/grocerylist/internal/catalog"
	"github.com/vyrodovalexey/grocerylist/internal/config"
	"github.com/vyrodovalexey/grocerylist/internal/store"
)

const defaultList = "default"

const defaultListTitle = "Grocery List"

// noStorage marks commands that never touch a grocery list.
const noStorage = "no-storage"

var errUnknownList = errors.New("unknown list")

// app holds the flags and the resources opened for one invocation.
type app struct {
	backend     string
	dbPath      string
	list        string
	presetsPath string
	verbose     bool

	logger  *zap.Logger
	blobs   blob.Store
	presets *catalog.Catalog
}

// execute runs one CLI invocation and always releases the storage it opened.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "grocery",
		Short: "Manage grocery lists from the terminal",
		Long: `grocery edits the grocery lists kept by the grocery list server.

Lists are addressed with --list: "default" for the main list or the slug
of a preset (see "grocery presets"), which is seeded on first use.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.backend, "backend", envOr(config.EnvStorageBackend, config.DefaultStorageBackend),
		"Storage backend: memory, bolt or sqlite")
	flags.StringVar(&a.dbPath, "db", envOr(config.EnvStoragePath, config.DefaultStoragePath),
		"Storage file path")
	flags.StringVarP(&a.list, "list", "l", defaultList, `List to operate on: "default" or a preset slug`)
	flags.StringVar(&a.presetsPath, "presets", os.Getenv(config.EnvPresetsPath),
		"Preset catalog YAML file (default: embedded catalog)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.itemsCmd(),
		a.addCmd(),
		a.quickAddCmd(),
		a.toggleCmd(),
		a.editCmd(),
		a.rmCmd(),
		a.seedCmd(),
		a.presetsCmd(),
		a.categorizeCmd(),
		a.categoriesCmd(),
		a.shareCmd(),
	)

	return root
}

// open builds the logger, storage and preset catalog.
func (a *app) open(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if a.presetsPath == "" {
		a.presets, err = catalog.Default()
	} else {
		a.presets, err = catalog.LoadFile(a.presetsPath)
	}
	if err != nil {
		return fmt.Errorf("loading presets: %w", err)
	}
	if skipped := a.presets.Skipped(); len(skipped) > 0 {
		a.logger.Warn("malformed presets skipped", zap.Strings("slugs", skipped))
	}

	if cmd.Annotations[noStorage] == "true" {
		return nil
	}

	a.blobs, err = blob.Open(a.backend, a.dbPath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.blobs == nil {
		return nil
	}
	err := a.blobs.Close()
	a.blobs = nil
	if err != nil {
		return fmt.Errorf("closing storage: %w", err)
	}
	return nil
}

// resolveList returns the ListStore selected by --list and its title.
// With seed set, an empty preset list is filled from its preset.
func (a *app) resolveList(ctx context.Context, seed bool) (*store.ListStore, string, error) {
	if a.list == defaultList {
		return store.NewListStore(catalog.DefaultStorageKey, a.blobs, a.logger), defaultListTitle, nil
	}

	preset, ok := a.presets.Get(a.list)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", errUnknownList, a.list)
	}

	ls := store.NewListStore(catalog.StorageKey(a.list), a.blobs, a.logger)
	if seed {
		ls.SeedOnce(ctx, preset.Items)
	}

	return ls, preset.Name, nil
}

// newLogger returns a console logger on stderr. Only warnings are shown
// unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	return cfg.Build()
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// Package cmd implements the hh command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/household"
	"github.com/etnz/household/config"
	"github.com/etnz/household/sqlite"
	"github.com/google/subcommands"
	"golang.org/x/text/language"
)

// registered lists the commands Register registers, for the completion.
var registered []subcommands.Command

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	register := func(cmd subcommands.Command, group string) {
		registered = append(registered, cmd)
		c.Register(cmd, group)
	}
	for _, k := range household.Kinds {
		register(&addCmd{kind: k}, "records")
		register(&updateCmd{kind: k}, "records")
		register(&deleteCmd{kind: k}, "records")
	}
	register(&settleCmd{}, "records")

	register(&listCmd{}, "reports")
	register(&summaryCmd{}, "reports")
	register(&queryCmd{}, "reports")
	register(&exportCmd{}, "reports")

	register(&serveCmd{}, "services")
	register(&assistCmd{}, "services")

	register(&fmtCmd{}, "maintenance")
	register(&topicCmd{}, "help")
}

// Registered reports whether name is a command Register registers.
func Registered(name string) bool {
	for _, c := range registered {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dbFile          = flag.String("db", "", "Path to the household database, JSONL unless it ends with .db or .sqlite. Overrides HH_DB_FILE.")
	defaultCurrency = flag.String("currency", "", "Currency of new records and empty totals. Overrides HH_CURRENCY.")
	lang            = flag.String("lang", "", "Language used to format amounts, e.g. en or fr-FR. Overrides HH_LANGUAGE.")
)

// settings returns the configuration, the global flags applied last.
func settings() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if *dbFile != "" {
		cfg.DBFile = *dbFile
	}
	if *defaultCurrency != "" {
		cfg.Currency = *defaultCurrency
	}
	if *lang != "" {
		cfg.Language = *lang
	}
	return cfg, cfg.Validate()
}

// mustSettings returns the configuration or reports the error on stderr.
func mustSettings() (config.Config, bool) {
	cfg, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return cfg, false
	}
	return cfg, true
}

// languageTag returns the configured language, English when invalid.
func languageTag(cfg config.Config) language.Tag {
	tag, err := cfg.Tag()
	if err != nil {
		return language.English
	}
	return tag
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// OpenStore loads the household database at path. A missing JSONL database
// is an empty store.
func OpenStore(ctx context.Context, path string) (*household.Store, error) {
	if isSQLite(path) {
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.Load(ctx)
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, database %q does not exist, starting with an empty one", path)
		return household.NewStore()
	}
	if err != nil {
		return nil, fmt.Errorf("could not open database %q: %w", path, err)
	}
	defer f.Close()

	s, err := household.DecodeStore(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode database %q: %w", path, err)
	}
	return s, nil
}

// SaveStore writes the snapshot to the household database at path.
func SaveStore(ctx context.Context, path string, s *household.Snapshot) error {
	if isSQLite(path) {
		db, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Save(ctx, s)
	}

	// Write a sibling file first so that a failure leaves the database intact.
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not create database %q: %w", path, err)
	}
	if err := household.EncodeStore(f, s); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not encode database %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// openDatabase loads the configured database, reporting errors on stderr.
func openDatabase(ctx context.Context) (*household.Store, config.Config, bool) {
	cfg, ok := mustSettings()
	if !ok {
		return nil, cfg, false
	}
	store, err := OpenStore(ctx, cfg.DBFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, cfg, false
	}
	return store, cfg, true
}

// saveDatabase saves the store into the configured database.
func saveDatabase(ctx context.Context, cfg config.Config, store *household.Store) subcommands.ExitStatus {
	if err := SaveStore(ctx, cfg.DBFile, store.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing database %q: %v\n", cfg.DBFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown prints markdown rendered for the terminal.
func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }

// renderMarkdown renders markdown for the terminal, falling back to the raw
// text when it cannot.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

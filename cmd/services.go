package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/etnz/household"
	"github.com/etnz/household/advisor"
	"github.com/etnz/household/metrics"
	"github.com/etnz/household/server"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// serveCmd serves the database over HTTP.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the database over a JSON HTTP API" }
func (*serveCmd) Usage() string {
	return `hh serve [-addr <host:port>]

  Serves the database over a JSON HTTP API, with Prometheus metrics on /metrics.
  Every change is saved to the database immediately.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address. Overrides HH_ADDR.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, cfg, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}
	addr := cfg.Addr
	if c.addr != "" {
		addr = c.addr
	}

	m := metrics.New()
	defer m.Attach(store)()
	defer store.Subscribe(autosave(ctx, cfg.DBFile))()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(store, m, languageTag(cfg), cfg.Currency).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("serving %s on http://%s", cfg.DBFile, addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Error shutting down: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// autosave returns a store observer saving every new snapshot to path.
// Observers may run concurrently, older snapshots are never written over
// newer ones.
func autosave(ctx context.Context, path string) func(*household.Snapshot) {
	var (
		mu    sync.Mutex
		saved uint64
	)
	return func(s *household.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if s.Version() <= saved {
			return
		}
		if err := SaveStore(context.WithoutCancel(ctx), path, s); err != nil {
			log.Printf("error saving database %q: %v", path, err)
			return
		}
		saved = s.Version()
	}
}

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `hh assist [question]

  Starts an interactive session with the AI assistant, asking the question first if any.
  The Gemini API key is read from GEMINI_API_KEY or GOOGLE_API_KEY.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, cfg, ok := openDatabase(ctx)
	if !ok {
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	opts := advisor.ToolOptions{Language: languageTag(cfg), Currency: cfg.Currency}
	bookkeeper := advisor.NewBookkeeper(cfg.GeminiModel, store, opts)
	researcher := advisor.NewResearcher(cfg.GeminiModel)
	a := advisor.New(cfg.GeminiModel, os.Stdout, os.Stdin, bookkeeper, researcher)
	a.Print = func(w io.Writer, md string) { fmt.Fprint(w, renderMarkdown(md)) }

	if err := a.Run(ctx, client, strings.Join(f.Args(), " ")); err != nil {
		fmt.Fprintln(os.Stderr, "Assistant failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

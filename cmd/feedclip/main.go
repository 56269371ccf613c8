package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/feedclip"
	"github.com/fwojciec/feedclip/bloom"
	"github.com/fwojciec/feedclip/gemini"
	feedclipgin "github.com/fwojciec/feedclip/gin"
	feedcliphttp "github.com/fwojciec/feedclip/http"
	"github.com/fwojciec/feedclip/process"
	"github.com/fwojciec/feedclip/rod"
	feedclipslog "github.com/fwojciec/feedclip/slog"
	"github.com/fwojciec/feedclip/sqlite"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// seenCapacity sizes the duplicate filter of the processing endpoint.
const seenCapacity = 100_000

// Main represents the program.
type Main struct {
	// Default database path. Set before calling Run().
	DBPath string

	// SQLite database used by the entry service.
	DB *sqlite.DB

	// Services for end-to-end testing. When set, they replace the
	// implementations Run would otherwise build.
	Fetcher    feedclip.Fetcher
	Sender     feedclip.Sender
	Entries    feedclip.EntryService
	Classifier feedclip.Classifier

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("feedclip"),
		kong.Description("Extract and file feed posts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{
			"endpoint":         feedcliphttp.DefaultEndpoint,
			"addr":             feedclipgin.DefaultAddr,
			"db_path":          m.DBPath,
			"model":            gemini.DefaultModel,
			"summary_language": gemini.DefaultSummaryLanguage,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'feedclip --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	defer m.Close()

	switch kongCtx.Command() {
	case "clip":
		if err := m.wireClip(deps, &cli.Clip); err != nil {
			return err
		}
	case "serve":
		if err := m.wireServe(deps, &cli.Serve); err != nil {
			return err
		}
	case "entries":
		if err := m.openEntries(deps, cli.Entries.DB); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FEEDCLIP_DB to use a different database path\n")
			return err
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) wireClip(deps *Dependencies, c *ClipCmd) error {
	if c.URL != "" && c.File == "" {
		fetcher := m.Fetcher
		if fetcher == nil {
			f, err := newFetcher(c)
			if err != nil {
				return err
			}
			m.closers = append(m.closers, f.Close)
			fetcher = f
		}
		deps.Fetcher = feedclipslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	if c.Send {
		sender := m.Sender
		if sender == nil {
			s, err := feedcliphttp.NewSender(c.Endpoint, feedcliphttp.WithTimeout(c.Timeout))
			if err != nil {
				return err
			}
			sender = s
		}
		deps.Sender = feedclipslog.NewLoggingSender(sender, deps.Logger)
	}
	return nil
}

func newFetcher(c *ClipCmd) (feedclip.Fetcher, error) {
	if !c.JS {
		return feedcliphttp.NewFetcher(feedcliphttp.WithTimeout(c.Timeout)), nil
	}

	opts := []rod.Option{rod.WithFetchTimeout(c.Timeout)}
	if c.UserDataDir != "" {
		opts = append(opts, rod.WithUserDataDir(c.UserDataDir))
	}
	f, err := rod.NewFetcher(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
	}
	return f, nil
}

func (m *Main) wireServe(deps *Dependencies, c *ServeCmd) error {
	seen := bloom.NewFilter(seenCapacity, 0.01)
	p := &process.Processor{
		Seen:    seen,
		Limiter: process.NewLimiter(c.RPM),
	}

	// The endpoint still answers when the knowledge base is unavailable.
	if err := m.openEntries(deps, c.DB); err != nil {
		deps.Logger.Warn("knowledge base unavailable", "path", c.DB, "err", err)
	} else {
		p.Entries = deps.Entries
	}

	classifier, err := m.classifier(deps, c)
	if err != nil {
		return err
	}
	if classifier != nil {
		p.Classifier = feedclipslog.NewLoggingClassifier(classifier, deps.Logger)
	}

	n, err := p.LoadSeen(deps.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored entries: %w", err)
	}
	deps.Logger.Debug("duplicate filter loaded", "entries", n, "estimated", seen.EstimatedCount())

	deps.Processor = feedclipslog.NewLoggingProcessor(p, deps.Logger)
	return nil
}

func (m *Main) classifier(deps *Dependencies, c *ServeCmd) (feedclip.Classifier, error) {
	if m.Classifier != nil {
		return m.Classifier, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		deps.Logger.Warn("GEMINI_API_KEY not set, records are filed without classification. Get a key at https://aistudio.google.com/apikey")
		return nil, nil
	}

	client, err := genai.NewClient(deps.Ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewClassifier(client,
		gemini.WithModel(c.Model),
		gemini.WithSummaryLanguage(c.SummaryLanguage),
	), nil
}

func (m *Main) openEntries(deps *Dependencies, path string) error {
	if m.Entries != nil {
		deps.Entries = m.Entries
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	deps.Entries = sqlite.NewEntryService(m.DB)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "feedclip.db"
	}
	return filepath.Join(home, ".feedclip", "feedclip.db")
}

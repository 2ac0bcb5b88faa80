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
	"github.com/fwojciec/toplist"
	"github.com/fwojciec/toplist/chart"
	"github.com/fwojciec/toplist/goquery"
	tlhttp "github.com/fwojciec/toplist/http"
	"github.com/fwojciec/toplist/rod"
	tlslog "github.com/fwojciec/toplist/slog"
	"github.com/fwojciec/toplist/sqlite"
)

// version is reported in the addon manifest.
var version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db or TOPLIST_DB override it.
	DBPath string

	// Optional YAML file supplying flag values. Missing files are ignored.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SnapshotService toplist.SnapshotService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("toplist"),
		kong.Description("Serve the IMDb Top Rated chart as a Stremio catalog addon."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(yamlLoader, m.ConfigPath),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'toplist --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.ChartURL = cli.ChartURL

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TOPLIST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.LockPath = m.DBPath + ".lock"
	m.SnapshotService = tlslog.NewLoggingSnapshotService(sqlite.NewSnapshotService(m.DB), deps.Logger)
	deps.Snapshots = m.SnapshotService

	if kongCtx.Command() != "history" {
		fetcher, err := newFetcher(cli)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to use --browser")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		logger := deps.Logger
		deps.Loader = &chart.Loader{
			Fetcher:     tlslog.NewLoggingFetcher(fetcher, logger),
			Extractor:   tlslog.NewLoggingChartExtractor(goquery.NewExtractor(), logger),
			Limiter:     chart.NewHostLimiter(upstreamRPS),
			RetryDelays: chart.DefaultRetryDelays(),
			Logf: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}
	}

	return kongCtx.Run(deps)
}

// upstreamRPS caps requests per second to the chart host.
const upstreamRPS = 1.0

func newFetcher(cli *CLI) (toplist.Fetcher, error) {
	if cli.Browser {
		return rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
	}
	return tlhttp.NewFetcher(tlhttp.WithTimeout(cli.Timeout)), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func defaultDBPath() string {
	if path := os.Getenv("TOPLIST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "toplist.db"
	}
	dir := filepath.Join(home, ".toplist")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "toplist.db")
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/cache"
	"github.com/fwojciec/apitrail/fs"
	"github.com/fwojciec/apitrail/goquery"
	apihttp "github.com/fwojciec/apitrail/http"
	"github.com/fwojciec/apitrail/rod"
	apislog "github.com/fwojciec/apitrail/slog"
	"github.com/fwojciec/apitrail/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// Application errors have already been reported by the command.
		if apitrail.ErrorCode(err) == apitrail.EINTERNAL {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache directory used when --cache-path is not set.
	CachePath string

	// Overrides for end-to-end testing. Nil fields are built from flags.
	Catalog *apitrail.Catalog
	Source  apitrail.DocumentSource
	Store   apitrail.DocumentStore

	db      *sqlite.DB
	fetcher apitrail.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CachePath: defaultCachePath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.fetcher != nil {
		err = m.fetcher.Close()
		m.fetcher = nil
	}
	if m.db != nil {
		if cerr := m.db.Close(); err == nil {
			err = cerr
		}
		m.db = nil
	}
	return err
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
		kong.Name("apitrail"),
		kong.Description("Track when CUDA Runtime and Driver API symbols were introduced and removed"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'apitrail --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Verbose = cli.Verbose
	deps.Logger = newLogger(stderr, cli.Verbose)

	deps.Catalog = m.Catalog
	if deps.Catalog == nil {
		deps.Catalog = apitrail.DefaultCatalog()
	}

	command := kongCtx.Command()
	if command == "versions" {
		return kongCtx.Run(deps)
	}

	cachePath := cli.CachePath
	if cachePath == "" {
		cachePath = m.CachePath
	}
	deps.CachePath = cachePath
	defer m.Close()

	deps.Store = m.Store
	if deps.Store == nil {
		store, err := m.openStore(cli.CacheBackend, cachePath)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set APITRAIL_CACHE to use a different cache directory\n")
			return fmt.Errorf("failed to open %s cache at %q: %w", cli.CacheBackend, cachePath, err)
		}
		deps.Store = store
	}

	if strings.HasPrefix(command, "cache") {
		return kongCtx.Run(deps)
	}

	source := m.Source
	if source == nil {
		source, err = m.newSource(cli, deps.Logger)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", apitrail.ErrorMessage(err))
			return err
		}
	}

	cached := cache.NewSource(apislog.NewLoggingSource(source, deps.Logger), deps.Store)
	cached.Bypass = cli.NoCache
	cached.Extractor = goquery.NewExtractor()
	deps.Source = cached
	deps.Extractor = apislog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger)

	return kongCtx.Run(deps)
}

// openStore opens the cache backend under dir.
func (m *Main) openStore(backend, dir string) (apitrail.DocumentStore, error) {
	switch backend {
	case "fs":
		return fs.NewDocumentStore(filepath.Join(dir, "docs")), nil
	default:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		m.db = sqlite.NewDB(filepath.Join(dir, "cache.db"))
		if err := m.db.Open(); err != nil {
			m.db = nil
			return nil, err
		}
		return sqlite.NewDocumentStore(m.db), nil
	}
}

// newSource builds the docs.nvidia.com document source.
func (m *Main) newSource(cli *CLI, logger *slog.Logger) (apitrail.DocumentSource, error) {
	var fetcher apitrail.Fetcher
	if cli.Render {
		f, err := rod.NewFetcher(rod.WithTimeout(cli.Timeout))
		if err != nil {
			return nil, apitrail.Errorf(apitrail.EINVALID, "failed to start browser (Chrome or Chromium must be installed): %v", err)
		}
		fetcher = f
	} else {
		fetcher = apihttp.NewFetcher(apihttp.WithTimeout(cli.Timeout))
	}
	m.fetcher = fetcher

	src := apihttp.NewDocumentSource(apislog.NewLoggingFetcher(fetcher, logger), goquery.NewLinkExtractor())
	src.Extractor = goquery.NewExtractor()
	src.RateLimiter = apihttp.NewDomainLimiter(requestsPerSecond)
	src.Logf = func(format string, args ...any) {
		logger.Warn(fmt.Sprintf(format, args...))
	}
	return src, nil
}

// requestsPerSecond limits requests to the documentation host.
const requestsPerSecond = 2.0

// newLogger returns a text logger on w when verbose, a silent one otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".apitrail"
	}
	return filepath.Join(home, ".apitrail")
}

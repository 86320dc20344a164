package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/apitrail"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Verbose   bool
	Logger    *slog.Logger
	Catalog   *apitrail.Catalog
	Source    apitrail.DocumentSource
	Extractor apitrail.SymbolExtractor
	Store     apitrail.DocumentStore
	CachePath string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	NoCache      bool          `help:"Bypass the document cache" env:"APITRAIL_NO_CACHE"`
	CacheBackend string        `enum:"sqlite,fs" default:"sqlite" env:"APITRAIL_CACHE_BACKEND" help:"Cache backend (sqlite, fs)"`
	CachePath    string        `type:"path" env:"APITRAIL_CACHE" help:"Cache directory (default ~/.apitrail)"`
	Render       bool          `help:"Render pages in headless Chrome instead of plain HTTP"`
	Timeout      time.Duration `default:"30s" help:"Timeout for a single page fetch"`
	Verbose      bool          `short:"v" help:"Log fetches and show every probed release"`

	Locate    LocateCmd    `cmd:"" help:"Find the releases where an API was introduced and removed"`
	Compare   CompareCmd   `cmd:"" help:"Show API changes between two releases"`
	Changelog ChangelogCmd `cmd:"" help:"List API additions and removals release by release"`
	Lifecycle LifecycleCmd `cmd:"" help:"List every API in a range with when it appeared and disappeared"`
	Versions  VersionsCmd  `cmd:"" help:"List known CUDA releases"`
	Cache     CacheCmd     `cmd:"" help:"Manage the document cache"`
}

// LocateCmd is the "locate" subcommand.
type LocateCmd struct {
	Symbol   string `arg:"" help:"API name, e.g. cudaMallocAsync or cuMemMap"`
	Family   string `short:"f" enum:"auto,runtime,driver" default:"auto" help:"API family (auto detects driver names by their cu prefix)"`
	FullScan bool   `help:"Check every release instead of stopping at the boundaries"`
	Format   string `enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Older  string `arg:"" help:"First release"`
	Newer  string `arg:"" help:"Second release"`
	Family string `short:"f" enum:"runtime,driver,both" default:"both" help:"API family (runtime, driver, both)"`
	Format string `enum:"text,markdown,json" default:"text" help:"Output format (text, markdown, json)"`
}

// RangeFlags select the releases and families of a range report.
type RangeFlags struct {
	Since       string `help:"First release of the range (default oldest)"`
	Until       string `help:"Last release of the range (default latest)"`
	Family      string `short:"f" enum:"runtime,driver,both" default:"both" help:"API family (runtime, driver, both)"`
	Format      string `enum:"text,markdown,json,csv" default:"text" help:"Output format (text, markdown, json, csv)"`
	Output      string `short:"o" type:"path" help:"Write the report to a file instead of stdout"`
	Concurrency int    `short:"c" default:"1" help:"Releases fetched at once"`
}

// ChangelogCmd is the "changelog" subcommand.
type ChangelogCmd struct {
	RangeFlags `embed:""`
}

// LifecycleCmd is the "lifecycle" subcommand.
type LifecycleCmd struct {
	RangeFlags `embed:""`
}

// VersionsCmd is the "versions" subcommand.
type VersionsCmd struct {
	Format string `enum:"text,json" default:"text" help:"Output format (text, json)"`
}

// CacheCmd groups cache maintenance subcommands.
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Remove every cached document"`
}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct{}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/track"
)

// Run executes the changelog command.
func (c *ChangelogCmd) Run(deps *Dependencies) error {
	families, err := apitrail.ParseFamilies(c.Family)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apitrail.ErrorMessage(err))
		return err
	}

	b := &track.ChangelogBuilder{
		Catalog:     deps.Catalog,
		Source:      deps.Source,
		Extractor:   deps.Extractor,
		Concurrency: c.Concurrency,
		Progress:    progress(deps),
	}
	cl, err := b.Build(deps.Ctx, families, c.Since, c.Until)
	if err != nil {
		reportRangeError(deps, err)
		return err
	}

	return c.write(deps, func(w io.Writer) error { return writeChangelog(w, cl, c.Format) })
}

// Run executes the lifecycle command.
func (c *LifecycleCmd) Run(deps *Dependencies) error {
	families, err := apitrail.ParseFamilies(c.Family)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apitrail.ErrorMessage(err))
		return err
	}

	b := &track.LifecycleBuilder{
		Catalog:     deps.Catalog,
		Source:      deps.Source,
		Extractor:   deps.Extractor,
		Concurrency: c.Concurrency,
		Progress:    progress(deps),
	}
	lc, err := b.Build(deps.Ctx, families, c.Since, c.Until)
	if err != nil {
		reportRangeError(deps, err)
		return err
	}

	return c.write(deps, func(w io.Writer) error { return writeLifecycle(w, lc, c.Format) })
}

// write sends a report to stdout or to the output file.
func (f *RangeFlags) write(deps *Dependencies, report func(io.Writer) error) error {
	if f.Output == "" {
		return report(deps.Stdout)
	}

	file, err := os.Create(f.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if err := report(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "Wrote %s\n", f.Output)
	return nil
}

func reportRangeError(deps *Dependencies, err error) {
	switch apitrail.ErrorCode(err) {
	case apitrail.ERANGE:
		fmt.Fprintf(deps.Stderr, "error: %s. Need at least 2 versions.\n", apitrail.ErrorMessage(err))
	case apitrail.ENOTFOUND:
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'apitrail versions' to list known releases.\n", apitrail.ErrorMessage(err))
	default:
		fmt.Fprintf(deps.Stderr, "error: %s\n", apitrail.ErrorMessage(err))
	}
}

// progress reports each fetched release on stderr when verbose.
func progress(deps *Dependencies) track.ReleaseFunc {
	if !deps.Verbose {
		return nil
	}
	return func(done, total int, release apitrail.Release, symbols *apitrail.SymbolSet) {
		fmt.Fprintf(deps.Stderr, "  [%d/%d] CUDA %s (%d APIs)\n", done, total, release, symbols.Len())
	}
}

package main

import (
	"fmt"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/track"
)

// Run executes the locate command.
func (c *LocateCmd) Run(deps *Dependencies) error {
	family := apitrail.DetectFamily(c.Symbol, apitrail.FamilyRuntime)
	if c.Family != "auto" {
		f, err := apitrail.ParseFamily(c.Family)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", apitrail.ErrorMessage(err))
			return err
		}
		family = f
	} else if family == apitrail.FamilyDriver {
		fmt.Fprintln(deps.Stderr, "(Auto-detected driver API from the 'cu' prefix)")
	}

	searcher := &track.Searcher{
		Catalog:   deps.Catalog,
		Source:    deps.Source,
		Extractor: deps.Extractor,
	}
	if deps.Verbose {
		searcher.Progress = func(obs apitrail.Observation) {
			fmt.Fprintf(deps.Stderr, "  CUDA %s: %s\n", obs.Release, presence(obs.Present))
		}
	}

	res, err := searcher.Locate(deps.Ctx, c.Symbol, family, c.FullScan)
	if res == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apitrail.ErrorMessage(err))
		return err
	}
	if err != nil {
		if c.Format == "json" {
			_ = writeJSON(deps.Stdout, res)
		}
		fmt.Fprintf(deps.Stderr, "error: search incomplete: %s\n", apitrail.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "(Checked %d of %d versions before the failure)\n", res.Probed, res.CatalogSize)
		return err
	}

	if err := writeBoundary(deps.Stdout, res, c.Format); err != nil {
		return err
	}

	if !res.Found() {
		if c.Family == "auto" && family == apitrail.FamilyRuntime {
			fmt.Fprintf(deps.Stderr, "Hint: try the driver API with 'apitrail locate %s --family driver'\n", c.Symbol)
		}
		return apitrail.Errorf(apitrail.ENOTFOUND, "%s not found in any version", c.Symbol)
	}
	return nil
}

func presence(present bool) string {
	if present {
		return "found"
	}
	return "not found"
}

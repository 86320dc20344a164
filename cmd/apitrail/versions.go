package main

import (
	"fmt"

	"github.com/fwojciec/apitrail"
)

// Run executes the versions command.
func (c *VersionsCmd) Run(deps *Dependencies) error {
	releases := deps.Catalog.Releases(apitrail.Descending)
	if c.Format == "json" {
		return writeJSON(deps.Stdout, releases)
	}
	for _, r := range releases {
		if r.Latest {
			fmt.Fprintf(deps.Stdout, "%s (latest)\n", r)
			continue
		}
		fmt.Fprintln(deps.Stdout, r)
	}
	return nil
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if err := deps.Store.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apitrail.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Cache cleared: %s\n", deps.CachePath)
	return nil
}

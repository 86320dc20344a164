package main

import (
	"fmt"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/track"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	families, err := apitrail.ParseFamilies(c.Family)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apitrail.ErrorMessage(err))
		return err
	}

	older, err := lookupRelease(deps.Catalog, c.Older)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'apitrail versions' to list known releases.\n", apitrail.ErrorMessage(err))
		return err
	}
	newer, err := lookupRelease(deps.Catalog, c.Newer)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s. Use 'apitrail versions' to list known releases.\n", apitrail.ErrorMessage(err))
		return err
	}

	cmp, err := track.Compare(deps.Ctx, deps.Source, deps.Extractor, families, older, newer)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apitrail.ErrorMessage(err))
		return err
	}

	return writeComparison(deps.Stdout, cmp, c.Format)
}

func lookupRelease(catalog *apitrail.Catalog, version string) (apitrail.Release, error) {
	r, ok := catalog.Lookup(version)
	if !ok {
		return apitrail.Release{}, apitrail.Errorf(apitrail.ENOTFOUND, "unknown CUDA release %q", version)
	}
	return r, nil
}

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/apitrail"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeBoundary renders the result of a locate search.
func writeBoundary(w io.Writer, res *apitrail.BoundaryResult, format string) error {
	if format == "json" {
		return writeJSON(w, res)
	}

	mode := "early stop"
	if res.FullScan {
		mode = "full scan"
	}
	fmt.Fprintf(w, "%s (%s API)\n", res.Symbol, res.Family)

	if !res.Found() {
		fmt.Fprintln(w, "  Status:     not found in any version")
		fmt.Fprintf(w, "  Checked:    %d of %d versions (%s)\n", res.Probed, res.CatalogSize, mode)
		return nil
	}

	if res.IntroducedAt != nil {
		suffix := ""
		if res.IntroducedAtOldest {
			suffix = " (oldest known version; may predate it)"
		}
		fmt.Fprintf(w, "  Introduced: CUDA %s%s\n", res.IntroducedAt, suffix)
	}
	switch res.Status {
	case apitrail.StatusPresent:
		fmt.Fprintln(w, "  Status:     present in latest")
	case apitrail.StatusRemoved:
		fmt.Fprintf(w, "  Status:     removed (last seen in CUDA %s, missing from CUDA %s)\n", res.RemovedAfter, res.FirstMissingIn)
	}
	if res.Reintroduced {
		present := res.PresentIn()
		names := make([]string, len(present))
		for i, r := range present {
			names[i] = r.String()
		}
		fmt.Fprintf(w, "  Note:       removed and re-added; present in %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(w, "  Checked:    %d of %d versions (%s)\n", res.Probed, res.CatalogSize, mode)
	return nil
}

// writeComparison renders the delta between two releases.
func writeComparison(w io.Writer, cmp *apitrail.Comparison, format string) error {
	switch format {
	case "json":
		return writeJSON(w, cmp)
	case "markdown":
		fmt.Fprintf(w, "# CUDA %s to %s (%s)\n\n", cmp.Older, cmp.Newer, apitrail.JoinFamilies(cmp.Families))
		fmt.Fprintf(w, "%d APIs in %s, %d APIs in %s.\n\n", cmp.OlderTotal, cmp.Older, cmp.NewerTotal, cmp.Newer)
		writeMarkdownDelta(w, cmp.Delta, "###")
		return nil
	}

	fmt.Fprintf(w, "CUDA %s -> %s (%s)\n", cmp.Older, cmp.Newer, apitrail.JoinFamilies(cmp.Families))
	fmt.Fprintf(w, "  APIs: %d -> %d\n", cmp.OlderTotal, cmp.NewerTotal)
	if cmp.Empty() {
		fmt.Fprintln(w, "  No changes")
		return nil
	}
	writeTextDelta(w, cmp.Delta, "  ")
	return nil
}

// writeChangelog renders a changelog in the requested format.
func writeChangelog(w io.Writer, cl *apitrail.Changelog, format string) error {
	switch format {
	case "json":
		return writeJSON(w, cl)
	case "csv":
		return writeChangelogCSV(w, cl)
	case "markdown":
		writeChangelogMarkdown(w, cl)
		return nil
	}

	fmt.Fprintf(w, "CUDA %s changelog: %s -> %s\n", apitrail.JoinFamilies(cl.Families), cl.Since, cl.Until)
	for _, e := range cl.Entries {
		fmt.Fprintf(w, "\nCUDA %s (from %s, %d APIs)\n", e.Release, e.Previous, e.Total)
		if e.Empty() {
			fmt.Fprintln(w, "  No changes")
			continue
		}
		writeTextDelta(w, e.Delta, "  ")
	}
	s := cl.Summary
	fmt.Fprintf(w, "\nSummary: %d added, %d removed, net %+d\n", s.TotalAdded, s.TotalRemoved, s.Net)
	return nil
}

func writeChangelogMarkdown(w io.Writer, cl *apitrail.Changelog) {
	fmt.Fprintf(w, "# CUDA %s API Changelog\n\n", apitrail.JoinFamilies(cl.Families))
	fmt.Fprintf(w, "Releases %s to %s.\n\n", cl.Since, cl.Until)
	fmt.Fprintln(w, "| Release | Added | Removed | Total |")
	fmt.Fprintln(w, "|---------|-------|---------|-------|")
	for _, e := range cl.Entries {
		fmt.Fprintf(w, "| %s | %d | %d | %d |\n", e.Release, len(e.Added), len(e.Removed), e.Total)
	}
	for _, e := range cl.Entries {
		if e.Empty() {
			continue
		}
		fmt.Fprintf(w, "\n## CUDA %s\n\n", e.Release)
		writeMarkdownDelta(w, e.Delta, "###")
	}
	s := cl.Summary
	fmt.Fprintln(w, "\n## Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Added: %d\n- Removed: %d\n- Net: %+d\n", s.TotalAdded, s.TotalRemoved, s.Net)
}

func writeChangelogCSV(w io.Writer, cl *apitrail.Changelog) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"release", "previous", "change", "api"})
	for _, e := range cl.Entries {
		for _, n := range e.Added {
			_ = cw.Write([]string{e.Release.String(), e.Previous.String(), "added", n})
		}
		for _, n := range e.Removed {
			_ = cw.Write([]string{e.Release.String(), e.Previous.String(), "removed", n})
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeLifecycle renders a lifecycle report in the requested format.
func writeLifecycle(w io.Writer, lc *apitrail.Lifecycle, format string) error {
	switch format {
	case "json":
		return writeJSON(w, lc)
	case "csv":
		return writeLifecycleCSV(w, lc)
	case "markdown":
		writeLifecycleMarkdown(w, lc)
		return nil
	}

	fmt.Fprintf(w, "CUDA %s lifecycle: %s -> %s\n\n", apitrail.JoinFamilies(lc.Families), lc.Since, lc.Until)
	for _, s := range lc.Symbols {
		fmt.Fprintf(w, "%-48s %-8s introduced %-8s removed %s\n", s.Name, s.Status, introduced(s), removed(s))
	}
	writeLifecycleSummary(w, lc.Summary, "")
	return nil
}

func writeLifecycleMarkdown(w io.Writer, lc *apitrail.Lifecycle) {
	fmt.Fprintf(w, "# CUDA %s API Lifecycle\n\n", apitrail.JoinFamilies(lc.Families))
	fmt.Fprintf(w, "Releases %s to %s.\n\n", lc.Since, lc.Until)
	fmt.Fprintln(w, "| API | Status | Introduced | Removed |")
	fmt.Fprintln(w, "|-----|--------|------------|---------|")
	for _, s := range lc.Symbols {
		fmt.Fprintf(w, "| `%s` | %s | %s | %s |\n", s.Name, s.Status, introduced(s), removed(s))
	}
	fmt.Fprintln(w, "\n## Summary")
	writeLifecycleSummary(w, lc.Summary, "- ")
}

func writeLifecycleSummary(w io.Writer, s apitrail.LifecycleSummary, bullet string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%sTotal: %d\n", bullet, s.Total)
	fmt.Fprintf(w, "%sPresent: %d\n", bullet, s.Present)
	fmt.Fprintf(w, "%sRemoved: %d\n", bullet, s.Removed)
	fmt.Fprintf(w, "%sIntroduced in range: %d\n", bullet, s.IntroducedInRange)
	fmt.Fprintf(w, "%sAlready present: %d\n", bullet, s.AlreadyPresent)
}

func writeLifecycleCSV(w io.Writer, lc *apitrail.Lifecycle) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"api", "status", "introduced", "removed", "present_in"})
	for _, s := range lc.Symbols {
		present := make([]string, len(s.PresentIn))
		for i, r := range s.PresentIn {
			present[i] = r.String()
		}
		_ = cw.Write([]string{s.Name, string(s.Status), optional(s.Introduced), optional(s.Removed), strings.Join(present, ";")})
	}
	cw.Flush()
	return cw.Error()
}

func introduced(s apitrail.SymbolLifecycle) string {
	if s.Introduced == nil {
		return "-"
	}
	return s.Introduced.String()
}

func removed(s apitrail.SymbolLifecycle) string {
	if s.Removed == nil {
		return "-"
	}
	return s.Removed.String()
}

func optional(r *apitrail.Release) string {
	if r == nil {
		return ""
	}
	return r.String()
}

func writeTextDelta(w io.Writer, d apitrail.Delta, indent string) {
	for _, n := range d.Added {
		fmt.Fprintf(w, "%s+ %s\n", indent, n)
	}
	for _, n := range d.Removed {
		fmt.Fprintf(w, "%s- %s\n", indent, n)
	}
}

func writeMarkdownDelta(w io.Writer, d apitrail.Delta, heading string) {
	if len(d.Added) > 0 {
		fmt.Fprintf(w, "%s Added (%d)\n\n", heading, len(d.Added))
		for _, n := range d.Added {
			fmt.Fprintf(w, "- `%s`\n", n)
		}
		fmt.Fprintln(w)
	}
	if len(d.Removed) > 0 {
		fmt.Fprintf(w, "%s Removed (%d)\n\n", heading, len(d.Removed))
		for _, n := range d.Removed {
			fmt.Fprintf(w, "- `%s`\n", n)
		}
		fmt.Fprintln(w)
	}
}

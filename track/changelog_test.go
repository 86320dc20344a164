package track_test

import (
	"context"
	"testing"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// changelogWorld documents four releases of both families.
func changelogWorld() *world {
	w := newWorld()
	w.set(apitrail.FamilyRuntime, "1.0", "cudaMalloc", "cudaFree", "cudaBindTexture")
	w.set(apitrail.FamilyRuntime, "2.0", "cudaMalloc", "cudaFree", "cudaBindTexture", "cudaGraphCreate")
	w.set(apitrail.FamilyRuntime, "3.0", "cudaMalloc", "cudaFree", "cudaGraphCreate")
	w.set(apitrail.FamilyRuntime, "4.0", "cudaMalloc", "cudaFree", "cudaGraphCreate", "cudaBindTexture")
	w.set(apitrail.FamilyDriver, "1.0", "cuInit", "cuCtxCreate")
	w.set(apitrail.FamilyDriver, "2.0", "cuInit", "cuCtxCreate")
	w.set(apitrail.FamilyDriver, "3.0", "cuInit", "cuCtxCreate", "cuMemMap")
	w.set(apitrail.FamilyDriver, "4.0", "cuInit", "cuMemMap")
	return w
}

func newChangelogBuilder(t *testing.T, w *world) *track.ChangelogBuilder {
	t.Helper()
	return &track.ChangelogBuilder{
		Catalog:   mustCatalog(t, "1.0", "2.0", "3.0", "4.0"),
		Source:    w.source(),
		Extractor: w.extractor(),
	}
}

func TestChangelogBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("diffs every adjacent pair", func(t *testing.T) {
		t.Parallel()

		w := changelogWorld()

		cl, err := newChangelogBuilder(t, w).Build(context.Background(), []apitrail.Family{apitrail.FamilyRuntime}, "", "")

		require.NoError(t, err)
		assert.Equal(t, "1.0", cl.Since.Version)
		assert.Equal(t, "4.0", cl.Until.Version)
		require.Len(t, cl.Entries, 3)

		assert.Equal(t, "2.0", cl.Entries[0].Release.Version)
		assert.Equal(t, "1.0", cl.Entries[0].Previous.Version)
		assert.Equal(t, []string{"cudaGraphCreate"}, cl.Entries[0].Added)
		assert.Empty(t, cl.Entries[0].Removed)
		assert.Equal(t, 4, cl.Entries[0].Total)

		assert.Equal(t, []string{"cudaBindTexture"}, cl.Entries[1].Removed)
		assert.Equal(t, []string{"cudaBindTexture"}, cl.Entries[2].Added)

		assert.Equal(t, apitrail.Summary{
			TotalAdded:   2,
			TotalRemoved: 1,
			Net:          1,
			NetNew:       []string{"cudaGraphCreate"},
			NetRemoved:   []string{},
		}, cl.Summary)
	})

	t.Run("summary equals the sum of entries", func(t *testing.T) {
		t.Parallel()

		cl, err := newChangelogBuilder(t, changelogWorld()).Build(context.Background(), nil, "", "")
		require.NoError(t, err)

		added, removed := 0, 0
		for _, e := range cl.Entries {
			added += len(e.Added)
			removed += len(e.Removed)
		}
		assert.Equal(t, added, cl.Summary.TotalAdded)
		assert.Equal(t, removed, cl.Summary.TotalRemoved)
		assert.Equal(t, added-removed, cl.Summary.Net)
	})

	t.Run("merges families and fetches each document once", func(t *testing.T) {
		t.Parallel()

		w := changelogWorld()

		cl, err := newChangelogBuilder(t, w).Build(context.Background(), []apitrail.Family{apitrail.FamilyRuntime, apitrail.FamilyDriver}, "2.0", "4.0")

		require.NoError(t, err)
		assert.Equal(t, []apitrail.Family{apitrail.FamilyRuntime, apitrail.FamilyDriver}, cl.Families)
		require.Len(t, cl.Entries, 2)
		assert.Equal(t, []string{"cuMemMap"}, cl.Entries[0].Added)
		assert.Equal(t, []string{"cudaBindTexture"}, cl.Entries[0].Removed)
		assert.Equal(t, []string{"cudaBindTexture"}, cl.Entries[1].Added)
		assert.Equal(t, []string{"cuCtxCreate"}, cl.Entries[1].Removed)
		assert.Equal(t, 6, w.fetchCount())
		assert.Equal(t, 1, w.maxFetchesPerKey())
	})

	t.Run("concurrent prefetch gives the same changelog", func(t *testing.T) {
		t.Parallel()

		sequential, err := newChangelogBuilder(t, changelogWorld()).Build(context.Background(), nil, "", "")
		require.NoError(t, err)

		w := changelogWorld()
		b := newChangelogBuilder(t, w)
		b.Concurrency = 4
		var done []int
		b.Progress = func(n, total int, _ apitrail.Release, _ *apitrail.SymbolSet) {
			assert.Equal(t, 4, total)
			done = append(done, n)
		}

		concurrent, err := b.Build(context.Background(), nil, "", "")

		require.NoError(t, err)
		assert.Equal(t, sequential, concurrent)
		assert.Equal(t, 8, w.fetchCount())
		assert.Equal(t, 1, w.maxFetchesPerKey())
		assert.ElementsMatch(t, []int{1, 2, 3, 4}, done)
	})

	t.Run("returns ERANGE for a single release", func(t *testing.T) {
		t.Parallel()

		w := changelogWorld()

		_, err := newChangelogBuilder(t, w).Build(context.Background(), nil, "4.0", "")

		assert.Equal(t, apitrail.ERANGE, apitrail.ErrorCode(err))
		assert.Equal(t, 0, w.fetchCount())
	})

	t.Run("returns ENOTFOUND for bounds past the catalog", func(t *testing.T) {
		t.Parallel()

		_, err := newChangelogBuilder(t, changelogWorld()).Build(context.Background(), nil, "9.0", "")

		assert.Equal(t, apitrail.ENOTFOUND, apitrail.ErrorCode(err))
	})

	t.Run("probe failure aborts the build", func(t *testing.T) {
		t.Parallel()

		w := changelogWorld()
		w.fetchErr[docKey("3.0", apitrail.FamilyDriver)] = apitrail.Errorf(apitrail.ENOTFOUND, "HTTP 404")

		cl, err := newChangelogBuilder(t, w).Build(context.Background(), nil, "", "")

		assert.Nil(t, cl)
		assert.Equal(t, apitrail.EPROBE, apitrail.ErrorCode(err))
	})
}

func TestCompare(t *testing.T) {
	t.Parallel()

	t.Run("diffs non-adjacent releases", func(t *testing.T) {
		t.Parallel()

		w := changelogWorld()

		cmp, err := track.Compare(context.Background(), w.source(), w.extractor(), []apitrail.Family{apitrail.FamilyDriver},
			apitrail.Release{Version: "1.0"}, apitrail.Release{Version: "4.0"})

		require.NoError(t, err)
		assert.Equal(t, "1.0", cmp.Older.Version)
		assert.Equal(t, "4.0", cmp.Newer.Version)
		assert.Equal(t, 2, cmp.OlderTotal)
		assert.Equal(t, 2, cmp.NewerTotal)
		assert.Equal(t, []string{"cuMemMap"}, cmp.Added)
		assert.Equal(t, []string{"cuCtxCreate"}, cmp.Removed)
		assert.Equal(t, 2, w.fetchCount())
	})

	t.Run("orders the releases", func(t *testing.T) {
		t.Parallel()

		w := changelogWorld()

		cmp, err := track.Compare(context.Background(), w.source(), w.extractor(), []apitrail.Family{apitrail.FamilyRuntime},
			apitrail.Release{Version: "3.0"}, apitrail.Release{Version: "2.0"})

		require.NoError(t, err)
		assert.Equal(t, "2.0", cmp.Older.Version)
		assert.Equal(t, []string{"cudaBindTexture"}, cmp.Removed)
		assert.Empty(t, cmp.Added)
	})
}

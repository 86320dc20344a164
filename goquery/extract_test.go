package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runtimeIndex renders a Doxygen-style module page listing the given
// runtime functions.
func runtimeIndex(names ...string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head><meta name="generator" content="Doxygen 1.8.20"><title>CUDA Runtime API</title></head>
<body><div class="contents">
`)
	for _, n := range names {
		fmt.Fprintf(&b, `<dl class="member"><dt class="description"><span class="member_name"><a href="group__CUDART__MEMORY.html#group__CUDART__MEMORY_1g%s">%s</a></span></dt></dl>
`, n, n)
	}
	b.WriteString("</div></body></html>")
	return b.String()
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts names from anchors", func(t *testing.T) {
		t.Parallel()

		doc := runtimeIndex("cudaMalloc", "cudaFree", "cudaMemcpy")
		e := goquery.NewExtractor(goquery.WithMinStructural(1))

		set, err := e.Extract(doc, apitrail.FamilyRuntime)

		require.NoError(t, err)
		assert.Equal(t, []string{"cudaFree", "cudaMalloc", "cudaMemcpy"}, set.Names())
	})

	t.Run("ignores anchors that are not exact symbol names", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body>
<a href="group__CUDART.html">Memory Management</a>
<a href="#x">cudaMalloc and friends</a>
<a href="#y">cudamalloc</a>
<a href="#z">cudaFree</a>
<a href="https://nvidia.com">cudaLaunch</a>
</body></html>`
		e := goquery.NewExtractor(goquery.WithMinStructural(1))

		set, err := e.Extract(doc, apitrail.FamilyRuntime)

		require.NoError(t, err)
		assert.Equal(t, []string{"cudaFree"}, set.Names())
	})

	t.Run("keeps families apart by prefix", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body>
<a href="#a">cudaMalloc</a>
<a href="#b">cuMemAlloc</a>
</body></html>`
		e := goquery.NewExtractor(goquery.WithMinStructural(1))

		runtime, err := e.Extract(doc, apitrail.FamilyRuntime)
		require.NoError(t, err)
		driver, err := e.Extract(doc, apitrail.FamilyDriver)
		require.NoError(t, err)

		assert.Equal(t, []string{"cudaMalloc"}, runtime.Names())
		assert.Equal(t, []string{"cuMemAlloc"}, driver.Names())
	})

	t.Run("merges regex matches when structure is suspiciously thin", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body>
<a href="#a">cudaMalloc</a>
<pre>cudaError_t cudaFree ( void* devPtr )</pre>
<code>"cudaMemcpy"</code>
</body></html>`
		e := goquery.NewExtractor()

		set, err := e.Extract(doc, apitrail.FamilyRuntime)

		require.NoError(t, err)
		assert.Equal(t, []string{"cudaFree", "cudaMalloc", "cudaMemcpy"}, set.Names())
	})

	t.Run("skips regex matching when structure is plausible", func(t *testing.T) {
		t.Parallel()

		doc := runtimeIndex("cudaMalloc", "cudaFree") + `<pre>cudaLaunchKernel(</pre>`
		e := goquery.NewExtractor(goquery.WithMinStructural(2))

		set, err := e.Extract(doc, apitrail.FamilyRuntime)

		require.NoError(t, err)
		assert.False(t, set.Has("cudaLaunchKernel"))
		assert.Equal(t, 2, set.Len())
	})

	t.Run("reads unstructured text blobs", func(t *testing.T) {
		t.Parallel()

		doc := "cuInit\ncuDeviceGet\n  cuCtxCreate  \nnot a symbol\n"
		e := goquery.NewExtractor()

		set, err := e.Extract(doc, apitrail.FamilyDriver)

		require.NoError(t, err)
		assert.Equal(t, []string{"cuCtxCreate", "cuDeviceGet", "cuInit"}, set.Names())
	})

	t.Run("fails when no strategy recognises a symbol", func(t *testing.T) {
		t.Parallel()

		doc := `<html><body><h1>Page moved</h1><p>See the new docs.</p></body></html>`
		e := goquery.NewExtractor()

		set, err := e.Extract(doc, apitrail.FamilyRuntime)

		require.Error(t, err)
		assert.Nil(t, set)
		assert.Equal(t, apitrail.EEXTRACT, apitrail.ErrorCode(err))
	})

	t.Run("fails on an empty document", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract("  \n", apitrail.FamilyRuntime)

		assert.Equal(t, apitrail.EEXTRACT, apitrail.ErrorCode(err))
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		doc := runtimeIndex("cudaMalloc", "cudaFree") + "<p>cudaStreamCreate(</p>"
		e := goquery.NewExtractor()

		first, err := e.Extract(doc, apitrail.FamilyRuntime)
		require.NoError(t, err)
		second, err := e.Extract(doc, apitrail.FamilyRuntime)
		require.NoError(t, err)

		assert.Equal(t, first.Names(), second.Names())
	})
}

func TestMatchPatterns(t *testing.T) {
	t.Parallel()

	text := `cudaError_t cudaMalloc(void** p); <td>cudaFree</td> "cudaMemcpy" cudaStream_t x; mycudaThing(`

	names := goquery.MatchPatterns(text, apitrail.FamilyRuntime)

	assert.ElementsMatch(t, []string{"cudaMalloc", "cudaFree", "cudaMemcpy"}, names)
}

package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/mock"
	apislog "github.com/fwojciec/apitrail/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexURL = "https://docs.nvidia.com/cuda/archive/12.4.0/cuda-runtime-api/index.html"

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs url and size of the page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fetcher := apislog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>cudaMalloc</html>", nil
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		html, err := fetcher.Fetch(context.Background(), indexURL)

		require.NoError(t, err)
		assert.Equal(t, "<html>cudaMalloc</html>", html)
		assert.Contains(t, buf.String(), "msg=fetch")
		assert.Contains(t, buf.String(), "url="+indexURL)
		assert.Contains(t, buf.String(), "bytes=23")
		assert.Contains(t, buf.String(), "duration=")
	})

	t.Run("passes the error through unchanged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		missing := apitrail.Errorf(apitrail.ENOTFOUND, "page not found: %s", indexURL)
		fetcher := apislog.NewLoggingFetcher(&mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", missing
			},
		}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := fetcher.Fetch(context.Background(), indexURL)

		assert.Same(t, missing, err)
		assert.Contains(t, buf.String(), "bytes=0")
		assert.Contains(t, buf.String(), "code=not_found")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := errors.New("browser already gone")
	fetcher := apislog.NewLoggingFetcher(&mock.Fetcher{
		CloseFn: func() error { return closed },
	}, slog.New(slog.DiscardHandler))

	assert.ErrorIs(t, fetcher.Close(), closed)
}

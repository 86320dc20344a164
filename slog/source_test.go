package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/apitrail"
	"github.com/fwojciec/apitrail/mock"
	apislog "github.com/fwojciec/apitrail/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSource_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs release, family and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentSource{
			FetchFn: func(ctx context.Context, release apitrail.Release, family apitrail.Family) (string, error) {
				return "cudaMalloc", nil
			},
		}

		src := apislog.NewLoggingSource(inner, logger)
		doc, err := src.Fetch(context.Background(), apitrail.Release{Version: "12.0"}, apitrail.FamilyRuntime)

		require.NoError(t, err)
		assert.Equal(t, "cudaMalloc", doc)
		output := buf.String()
		assert.Contains(t, output, "msg=document")
		assert.Contains(t, output, "release=12.0")
		assert.Contains(t, output, "family=runtime")
		assert.Contains(t, output, "bytes=10")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentSource{
			FetchFn: func(ctx context.Context, release apitrail.Release, family apitrail.Family) (string, error) {
				return "", apitrail.Errorf(apitrail.ENOTFOUND, "no docs")
			},
		}

		src := apislog.NewLoggingSource(inner, logger)
		_, err := src.Fetch(context.Background(), apitrail.Release{Version: "8.0"}, apitrail.FamilyDriver)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"apitrail error: code=not_found message=no docs\"")
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs symbol count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SymbolExtractor{
			ExtractFn: func(document string, family apitrail.Family) (*apitrail.SymbolSet, error) {
				return apitrail.NewSymbolSet("cudaMalloc", "cudaFree"), nil
			},
		}

		set, err := apislog.NewLoggingExtractor(inner, logger).Extract("doc", apitrail.FamilyRuntime)

		require.NoError(t, err)
		assert.Equal(t, 2, set.Len())
		assert.Contains(t, buf.String(), "symbols=2")
	})

	t.Run("logs zero symbols on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SymbolExtractor{
			ExtractFn: func(document string, family apitrail.Family) (*apitrail.SymbolSet, error) {
				return nil, apitrail.Errorf(apitrail.EEXTRACT, "no symbols")
			},
		}

		_, err := apislog.NewLoggingExtractor(inner, logger).Extract("doc", apitrail.FamilyDriver)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "symbols=0")
		assert.Contains(t, buf.String(), "err=")
	})
}

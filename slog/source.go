package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/apitrail"
)

// Ensure LoggingSource implements apitrail.DocumentSource.
var _ apitrail.DocumentSource = (*LoggingSource)(nil)

// LoggingSource wraps a DocumentSource with debug logging.
type LoggingSource struct {
	next   apitrail.DocumentSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next apitrail.DocumentSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Fetch delegates to the wrapped source and logs the result.
func (s *LoggingSource) Fetch(ctx context.Context, release apitrail.Release, family apitrail.Family) (doc string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("document",
			"release", release.Version,
			"family", string(family),
			"bytes", len(doc),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, release, family)
}

// Ensure LoggingExtractor implements apitrail.SymbolExtractor.
var _ apitrail.SymbolExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a SymbolExtractor with debug logging.
type LoggingExtractor struct {
	next   apitrail.SymbolExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next apitrail.SymbolExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the symbol count.
func (e *LoggingExtractor) Extract(document string, family apitrail.Family) (set *apitrail.SymbolSet, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"family", string(family),
			"symbols", set.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(document, family)
}

// Package logging provides structured logging for sync runs.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with request, batch, entity, and page metadata
//   - Synchronous writes straight to the configured io.Writer
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	// Create a logger
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	// Log structured data
//	logger.Info("batch upserted",
//	    "batch_id", "b-123",
//	    "entity", "product",
//	    "duration_ms", 1234,
//	)
//
//	// Create context-aware logger
//	ctx := logging.WithEntity(ctx, "product")
//	ctx = logging.WithMode(ctx, "export")
//	ctxLogger := logger.WithContext(ctx)
//	ctxLogger.Info("page fetched")  // Includes entity and mode automatically
//
// # Performance
//
// A message below the configured level returns before any formatting.
// Every other message is formatted by the slog handler and written to
// the writer synchronously, in the calling goroutine; nothing is queued
// or dropped, so LogBuffer.DroppedCount always reports 0.
package logging

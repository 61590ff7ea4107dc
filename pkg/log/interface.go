// Package log is the structured logging layer of gbdtkernel's drivers.
//
// Only the per-feature drivers (column and matrix binning, parameter
// loading) emit records. The kernels they call never log: they run once per
// candidate split and stay allocation free.
//
//	logger := log.GetLogger().With(log.ComponentKey, "binning", log.FeatureKey, 3)
//	logger.Debug("column binned", log.BinsKey, 255, log.SamplesKey, 10000)
//
// Records go to zerolog through NewZerologLogger. Programs that use log/slog
// directly call SetupLogger and attach errors with ErrAttr.
package log

import (
	"context"
	"log/slog"
)

// Logger takes a message followed by alternating key/value fields, in the
// calling convention of log/slog. When the field list has odd length and
// starts with an error, that error becomes the record's error:
//
//	logger.Error("binning failed", err, log.FeatureKey, 7)
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a child logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled lets callers skip building fields for a dropped level.
	Enabled(ctx context.Context, level Level) bool
}

// Level shares its numbering with slog.Level.
type Level int

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// String returns the upper-case name used in records, or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return slog.Level(l).String()
	}
	return "UNKNOWN"
}

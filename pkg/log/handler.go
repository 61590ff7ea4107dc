package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// ErrFmtHandler decorates a slog.Handler: a record that carries an error
// under ErrAttrKey also gets a StacktraceAttrKey attribute with the stack
// cockroachdb/errors recorded when the error was created.
type ErrFmtHandler struct {
	next slog.Handler
}

// WrapByErrFmtHandler returns next decorated with an ErrFmtHandler.
func WrapByErrFmtHandler(next slog.Handler) slog.Handler {
	return &ErrFmtHandler{next: next}
}

func (h *ErrFmtHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := recordError(r); err != nil {
		if trace := stackOf(err); trace != "" {
			r.AddAttrs(slog.String(StacktraceAttrKey, trace))
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return WrapByErrFmtHandler(h.next.WithAttrs(attrs))
}

func (h *ErrFmtHandler) WithGroup(name string) slog.Handler {
	return WrapByErrFmtHandler(h.next.WithGroup(name))
}

// recordError returns the first ErrAttrKey attribute of r, if it holds an error.
func recordError(r slog.Record) error {
	var found error
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != ErrAttrKey {
			return true
		}
		found, _ = a.Value.Any().(error)
		return false
	})
	return found
}

func stackOf(err error) string {
	if details := errors.GetSafeDetails(err).SafeDetails; len(details) > 0 {
		return details[0]
	}
	if errors.GetReportableStackTrace(err) == nil {
		return ""
	}
	return fmt.Sprintf("%+v", err)
}

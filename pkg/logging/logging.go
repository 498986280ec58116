// Package logging configures the process-wide structured logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"
)

const timeFormat = "2006-01-02 15:04 05.0000"

// Setup installs a tint handler writing to w as the default logger and
// returns ctx carrying that logger. Attributes added with slogctx.Append are
// included in every record logged with the returned context.
func Setup(ctx context.Context, w io.Writer, level slog.Level, color bool) context.Context {
	tintHandler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: timeFormat,
		NoColor:    !color,
	})

	ctxHandler := slogctx.NewHandler(tintHandler, nil)

	logger := slog.New(ctxHandler)
	slog.SetDefault(logger)

	return slogctx.NewCtx(ctx, logger)
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, errors.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

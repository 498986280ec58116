package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	slogctx "github.com/veqryn/slog-context"
)

func TestSetup(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	ctx := Setup(context.Background(), &buf, slog.LevelInfo, false)
	ctx = slogctx.Append(ctx, "file", "main.rs")

	slogctx.FromCtx(ctx).DebugContext(ctx, "hidden")
	slog.InfoContext(ctx, "parsed", "items", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "parsed")
	assert.Contains(t, out, "items=3")
	assert.Contains(t, out, "file=main.rs")
	assert.NotContains(t, out, "\x1b[", "colour disabled")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

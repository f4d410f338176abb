package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T, level slog.Level) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t, slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=dbg a=1",
		"level=INFO msg=inf b=2",
		"level=WARN msg=wrn c=3",
		"level=ERROR msg=err d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_ContextFields(t *testing.T) {
	log, buf := newTestLogger(t, slog.LevelInfo)

	ctx := ContextWith(context.Background(), "command", "users")
	ctx = ContextWith(ctx, "view", "users")
	log.With("component", "repl").Info(ctx, "command finished", "ok", true)

	assert.Contains(t, buf.String(), "msg=\"command finished\" component=repl command=users view=users ok=true")

	buf.Reset()
	log.Info(context.Background(), "plain")
	assert.NotContains(t, buf.String(), "command=")
}

func TestSlogLogger_DisabledLevelSkipsFields(t *testing.T) {
	log, buf := newTestLogger(t, slog.LevelWarn)

	log.Debug(ContextWith(context.Background(), "k", "v"), "hidden")
	log.Info(context.Background(), "hidden too")
	assert.Empty(t, buf.String())
}

func TestContextWith_NoArgsKeepsContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, ContextWith(ctx))
	assert.Nil(t, fieldsFrom(ctx))

	parent := ContextWith(ctx, "a", 1)
	child := ContextWith(parent, "b", 2)
	assert.Equal(t, []any{"a", 1}, fieldsFrom(parent), "parent is not modified")
	assert.Equal(t, []any{"a", 1, "b", 2}, fieldsFrom(child))
}

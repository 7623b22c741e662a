package log_test

import (
	"context"
	"testing"

	"repo-event-relay/pkg/log"
)

func TestInit(t *testing.T) {
	t.Run("console with unknown level", func(t *testing.T) {
		l := log.Init(log.ZapConfig{Level: "verbose", Mode: "debug", Encoding: "console", ColorEnabled: true})
		if l == nil {
			t.Fatal("expected logger")
		}
		l.Infof(context.Background(), "hello %s", "world")
	})

	t.Run("json production with request id", func(t *testing.T) {
		l := log.Init(log.ZapConfig{Level: "debug", Mode: log.ModeProduction, Encoding: log.EncodingJSON})
		ctx := context.WithValue(context.Background(), log.RequestIDKey, "req-1")
		l.Debug(ctx, "debug line")
		l.Warnf(ctx, "warn %d", 1)
	})

	t.Run("nop", func(t *testing.T) {
		l := log.NewNop()
		l.Error(context.Background(), "dropped")
	})
}

package main

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type syncRecorder struct {
	events *[]string
}

func (s syncRecorder) Write(p []byte) (int, error) {
	*s.events = append(*s.events, "write")
	return len(p), nil
}

func (s syncRecorder) Sync() error {
	*s.events = append(*s.events, "sync")
	return nil
}

func TestExit_SyncsLoggerBeforeExit(t *testing.T) {
	var events []string

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(syncRecorder{events: &events}),
		zap.DebugLevel,
	)
	zcore := zap.New(core)

	ctx, stop := context.WithCancel(context.Background())

	origExit := osExit
	t.Cleanup(func() { osExit = origExit })

	var code int
	osExit = func(c int) {
		code = c
		events = append(events, "exit")
	}

	zcore.Error("server crashed")
	exit(zcore, stop, 1)

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if ctx.Err() == nil {
		t.Error("expected signal context to be stopped")
	}
	if len(events) < 3 || events[len(events)-2] != "sync" || events[len(events)-1] != "exit" {
		t.Errorf("expected write, sync, exit order, got %v", events)
	}
}

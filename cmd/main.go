package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/recognizer/internal/config"
	"github.com/Vovarama1992/recognizer/internal/delivery"
	"github.com/Vovarama1992/recognizer/internal/domain"
	"github.com/Vovarama1992/recognizer/internal/infra"
	"github.com/Vovarama1992/recognizer/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {

	// ENV
	cfg := config.Load()

	// LOGGER
	zcore, err := newZap(cfg)
	if err != nil {
		panic("cannot build logger: " + err.Error())
	}
	defer zcore.Sync()
	zl := logger.NewZapLogger(zcore.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SPEECH CLIENT (once; nil stays nil for the life of the process)
	var stt ports.STTService
	google := infra.Bootstrap(ctx, cfg, zl)
	if google != nil {
		stt = google
	}

	// METRICS
	reg := prometheus.NewRegistry()
	metrics := infra.NewMetrics(reg)

	// HANDLERS
	recognition := domain.NewRecognitionService(stt)
	hPage := delivery.NewPageHandler(cfg.IndexFile, zl)
	hRecognize := delivery.NewRecognizeHandler(recognition, metrics, zl, cfg.MaxUploadMemory)

	// ROUTER
	r := delivery.NewRouter(hPage, hRecognize, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "server started",
			Fields:  map[string]any{"addr": srv.Addr, "speechReady": recognition.Ready()},
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if google != nil {
			err = multierr.Append(err, google.Close())
		}
		return err
	})

	if err := g.Wait(); err != nil {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
		exit(zcore, stop, 1)
	}

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server stopped",
	})
}

var osExit = os.Exit

// exit flushes buffered log entries first; deferred calls do not run past os.Exit.
func exit(zcore *zap.Logger, stop context.CancelFunc, code int) {
	stop()
	_ = zcore.Sync()
	osExit(code)
}

func newZap(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

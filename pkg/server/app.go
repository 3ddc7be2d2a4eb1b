package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	domrepo "MarketLens/internal/domain/repository"
	"MarketLens/pkg/config"
	xhttp "MarketLens/pkg/http"
	pkgkafka "MarketLens/pkg/kafka"
	applogger "MarketLens/pkg/logger"
)

// App encapsulates the entire application lifecycle: the scoring HTTP API
// and, when enabled, the Kafka article pipeline.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	httpHandler xhttp.Handler
	httpServer  *xhttp.Server
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	publisher   domrepo.Publisher
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, handler xhttp.Handler) *App {
	return &App{cfg: cfg, logger: logger, httpHandler: handler}
}

// SetKafka attaches the article consumer and match publisher.
func (a *App) SetKafka(consumer *pkgkafka.Consumer, kh pkgkafka.MessageHandler, publisher domrepo.Publisher) {
	a.consumer = consumer
	a.kh = kh
	a.publisher = publisher
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.logger.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.logger.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("scoring api started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.logger.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}

	// flush any buffered aggregated logs
	a.logger.RemoveCollector()

	log.Println("shutdown complete")
	return nil
}

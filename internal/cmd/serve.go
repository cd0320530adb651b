package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/venusai/venus-services/internal/config"
	"github.com/venusai/venus-services/internal/logger"
	"go.uber.org/zap"
)

// buildLogger selects the colored development logger in debug mode,
// the rotated production logger otherwise.
func buildLogger(mode string, cfg config.LoggingConfig) (*zap.Logger, error) {
	if mode == "debug" {
		return logger.NewDevelopment()
	}
	return logger.New(cfg)
}

// serveHTTP runs the handler until SIGINT/SIGTERM, then drains
// in-flight requests before returning.
func serveHTTP(log *zap.Logger, addr string, handler http.Handler, requestTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		// Responses can take as long as one full upstream call
		WriteTimeout: requestTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("Server started", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}

// maskAPIKey keeps only a short prefix for log output.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:8] + "..."
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cxf-converter/internal/api"
	"cxf-converter/internal/config"
	"cxf-converter/internal/observability"
	"cxf-converter/internal/service"
	"cxf-converter/internal/storage"
	"cxf-converter/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := observability.NewStdLogger(nil, cfg.Debug)

	store, err := storage.NewStore(cfg.DataPath, cfg.HistoryLimit)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	if cfg.ResendAPIKey == "" {
		logger.Warn("RESEND_API_KEY not set, result emails are disabled")
	}
	conversionSvc := service.NewConversionService(cfg, store, hub, logger)
	deliverySvc := service.NewDeliveryService(service.NewMailClient(cfg), store, hub, logger)
	swatchSvc := service.NewSwatchService(cfg.SwatchSize)

	router := api.NewRouter(cfg, logger, hub, conversionSvc, deliverySvc, swatchSvc)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", observability.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", observability.Error("err", err))
	}
	cancel()
}

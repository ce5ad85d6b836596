package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpx "storefront-order-system/services/order-notifier/internal/http"
	"storefront-order-system/services/order-notifier/internal/http/handlers"
	"storefront-order-system/services/order-notifier/internal/mail"
	"storefront-order-system/services/order-notifier/internal/notifier"
	"storefront-order-system/shared/pkg/config"
	"storefront-order-system/shared/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New("order-notifier", cfg.Common.LogLevel)

	if cfg.Mail.APIKey == "" || cfg.Mail.From == "" || cfg.Mail.To == "" {
		log.Warn().Msg("mail configuration incomplete, orders will fail until it is set")
	}

	renderer, err := notifier.NewRenderer(cfg.Mail.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("renderer")
	}
	n := notifier.New(
		mail.NewSendGrid(cfg.Mail.APIKey, cfg.Mail.APIHost),
		renderer,
		notifier.ConfigFromEnv(cfg.Mail),
		log,
	)

	submit := &handlers.SubmitOrderHandler{
		Notifier:     n,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		Log:          log,
	}

	router := httpx.NewRouter(&httpx.Handlers{
		Health:      handlers.Health,
		SubmitOrder: submit.ServeHTTP,
	}, httpx.Options{Log: log, AllowedOrigins: cfg.HTTP.CORSAllowedOrigins})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("format", renderer.Format()).Msg("http started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutdown...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}

package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"storefront-order-system/services/order-notifier/internal/lambda"
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
	log := logger.New("order-notifier-lambda", cfg.Common.LogLevel)

	renderer, err := notifier.NewRenderer(cfg.Mail.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("renderer")
	}

	adapter := &lambda.Adapter{
		Notifier: notifier.New(
			mail.NewSendGrid(cfg.Mail.APIKey, cfg.Mail.APIHost),
			renderer,
			notifier.ConfigFromEnv(cfg.Mail),
			log,
		),
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		Log:            log,
	}
	awslambda.Start(adapter.Handle)
}

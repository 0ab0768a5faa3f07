// Command relay runs the stateless notification relay: POST /api/notify turns
// an application event into an email to the employer.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/anurag-po/CODSOFT/internal/api"
	"github.com/anurag-po/CODSOFT/internal/core/service"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/config"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/mail"
	"github.com/anurag-po/CODSOFT/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "relay",
	})

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		TLS:      cfg.SMTP.TLS,
	})
	if !mailer.Configured() {
		log.Warn().Msg("SMTP_HOST not set, every notification will fail")
	}
	notifier := service.NewNotifyService(mailer, cfg.SMTP.Sender(), logger.Component("notify"))

	e := api.NewRelayRouter(notifier, nil, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("relay listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("relay server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), api.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("relay shutdown")
	}
}

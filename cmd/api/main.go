// Command api serves the job board REST API, the public storage endpoint and,
// in single-process deployments, the notification relay.
//
//	@title						Job Board API
//	@version					1.0
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/anurag-po/CODSOFT/internal/api"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
	"github.com/anurag-po/CODSOFT/internal/core/service"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/config"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/db/mongo"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/db/postgres"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/db/redis"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/document"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/http/handlers"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/mail"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/notify"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/queue"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/storage/gridfs"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/storage/s3"
	"github.com/anurag-po/CODSOFT/pkg/logger"
)

// stores groups the repositories of whichever backend is configured.
type stores struct {
	users        ports.AuthRepository
	profiles     ports.ProfileRepository
	jobs         ports.JobRepository
	applications ports.ApplicationRepository
	files        ports.FileStorage
	checks       map[string]handlers.Check
	close        func(context.Context)
}

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
		Service: "api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	st.checks["redis"] = redis.Pinger(rdb)
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	sessions := redis.NewSessionStore(rdb)

	// Notifications go to a remote relay when one is configured, otherwise
	// they are mailed from this process.
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		TLS:      cfg.SMTP.TLS,
	})
	relay := service.NewNotifyService(mailer, cfg.SMTP.Sender(), logger.Component("notify"))
	var notifier ports.Notifier = relay
	if cfg.Notify.RelayURL != "" {
		notifier = notify.NewRelayClient(cfg.Notify.RelayURL, &http.Client{Timeout: cfg.Notify.SendTimeout})
		log.Info().Str("relay_url", cfg.Notify.RelayURL).Msg("notifications via remote relay")
	} else if !mailer.Configured() {
		log.Warn().Msg("SMTP_HOST not set, application emails will fail")
	}

	dispatcher := queue.NewDispatcher(queue.Options{
		Workers:     cfg.Notify.Workers,
		Buffer:      cfg.Notify.Buffer,
		SendTimeout: cfg.Notify.SendTimeout,
	}, notifier, redis.NewDedupChecker(rdb), logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	authSvc := service.NewAuthService(st.users, st.profiles, sessions,
		cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger.Component("auth"))
	jobSvc := service.NewJobService(st.jobs, st.applications, st.profiles, logger.Component("jobs"))
	profileSvc := service.NewProfileService(st.profiles, st.files,
		cfg.PublicBaseURL, cfg.Storage.MaxAvatarBytes, logger.Component("profiles"))
	dashboardSvc := service.NewDashboardService(st.profiles, st.jobs, st.applications, logger.Component("dashboard"))
	applicationSvc := service.NewApplicationService(service.ApplicationServiceDeps{
		Jobs:          st.jobs,
		Applications:  st.applications,
		Profiles:      st.profiles,
		Storage:       st.files,
		Validator:     document.NewPDFValidator(),
		Queue:         dispatcher,
		PublicBaseURL: cfg.PublicBaseURL,
		MaxResume:     cfg.Storage.MaxResumeBytes,
	}, logger.Component("applications"))

	e := api.NewRouter(api.Deps{
		Auth:           authSvc,
		Jobs:           jobSvc,
		Applications:   applicationSvc,
		Dashboard:      dashboardSvc,
		Profiles:       profileSvc,
		Storage:        st.files,
		Sessions:       sessions,
		Relay:          relay,
		JWTSecret:      cfg.Auth.JWTSecret,
		CORSOrigins:    api.SplitOrigins(cfg.CORSOrigins),
		MaxResumeBytes: cfg.Storage.MaxResumeBytes,
		MaxAvatarBytes: cfg.Storage.MaxAvatarBytes,
		HealthChecks:   st.checks,
		Log:            log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Str("storage", cfg.Storage.Driver).Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), api.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	var (
		st  *stores
		err error
	)
	switch cfg.StoreDriver {
	case config.StorePostgres:
		st, err = openPostgres(ctx, cfg, log)
	default:
		st, err = openMongo(ctx, cfg, log)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Storage.Driver == config.StorageS3 {
		files, err := s3.New(ctx, s3.Config{
			Region:   cfg.Storage.S3Region,
			Bucket:   cfg.Storage.S3Bucket,
			Endpoint: cfg.Storage.S3Endpoint,
		})
		if err != nil {
			st.close(context.Background())
			return nil, err
		}
		st.files = files
		log.Info().Str("bucket", cfg.Storage.S3Bucket).Msg("s3 storage ready")
	}
	return st, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	closeFn := func(ctx context.Context) { disconnectMongo(ctx, client, log) }
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		closeFn(context.Background())
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	return &stores{
		users:        mongo.NewUserRepository(db),
		profiles:     mongo.NewProfileRepository(db),
		jobs:         mongo.NewJobRepository(db),
		applications: mongo.NewApplicationRepository(db),
		files:        gridfs.New(db),
		checks:       map[string]handlers.Check{"mongo": mongo.Pinger(client)},
		close:        closeFn,
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	db, err := postgres.Connect(ctx, cfg.Postgres.DSN, postgres.DefaultOptions())
	if err != nil {
		return nil, err
	}
	closeFn := func(context.Context) { closeDB(db, log) }
	if err := postgres.Migrate(ctx, db); err != nil {
		closeFn(context.Background())
		return nil, err
	}
	log.Info().Msg("postgres connected")

	return &stores{
		users:        postgres.NewUserRepository(db),
		profiles:     postgres.NewProfileRepository(db),
		jobs:         postgres.NewJobRepository(db),
		applications: postgres.NewApplicationRepository(db),
		checks:       map[string]handlers.Check{"postgres": postgres.Pinger(db)},
		close:        closeFn,
	}, nil
}

func disconnectMongo(ctx context.Context, client *mongodriver.Client, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect")
	}
}

func closeDB(db *sql.DB, log zerolog.Logger) {
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("postgres close")
	}
}

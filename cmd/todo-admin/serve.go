package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xgustaf/todo-admin/internal/auth"
	"github.com/xgustaf/todo-admin/internal/events"
	"github.com/xgustaf/todo-admin/internal/flash"
	"github.com/xgustaf/todo-admin/internal/metrics"
	"github.com/xgustaf/todo-admin/internal/repository"
	"github.com/xgustaf/todo-admin/internal/server"
	"github.com/xgustaf/todo-admin/internal/service"
	"github.com/xgustaf/todo-admin/internal/view"
)

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run the schema auto-migration before serving")
	return cmd
}

func serve(migrate bool) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	dbService, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	if migrate {
		log.Warn("running database auto-migration before serving")
		if err := dbService.Migrate(); err != nil {
			return err
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	flashes := flash.NewRedisStore(rdb)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := flashes.Ping(pingCtx); err != nil {
		log.WithError(err).WithField("addr", cfg.Redis.Addr).Warn("redis unreachable, flash messages will be lost")
	}
	cancel()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.WithFields(logrus.Fields{"brokers": cfg.Kafka.Brokers, "topic": cfg.Kafka.Topic}).Info("publishing todo events")
	}

	views, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	gormDB := dbService.GetDB()
	todoRepo := repository.NewGormTodoRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)
	todoService := service.NewTodoService(todoRepo, publisher, log)

	apiServer := server.NewHTTPServer(cfg.Port, server.New(server.Deps{
		Todos:        todoService,
		DB:           dbService,
		Auth:         auth.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.Issuer, userRepo),
		Flashes:      flashes,
		Views:        views,
		Metrics:      metrics.New(),
		Log:          log,
		CookieSecure: cfg.CookieSecure,
	}))

	done := make(chan struct{})
	go gracefulShutdown(apiServer, log, done, dbService, rdb, publisher)

	log.WithField("addr", apiServer.Addr).Info("starting server")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}

	<-done
	log.Info("graceful shutdown complete")
	return nil
}

type closer interface {
	Close() error
}

func gracefulShutdown(apiServer *http.Server, log *logrus.Entry, done chan<- struct{}, resources ...closer) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server has 5 seconds to finish the requests it is handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	for _, r := range resources {
		if err := r.Close(); err != nil {
			log.WithError(err).Warn("error closing resource")
		}
	}

	close(done)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"moviecatalog/actor"
	"moviecatalog/dynamodb"
	"moviecatalog/genre"
	"moviecatalog/httpserver"
	"moviecatalog/memory"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"
	"moviecatalog/postgres"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Movie Catalog API
// @version 1.0
// @description Genres and movies with actor references.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := sentry.Init(cfg.SentryDSN, cfg.AppEnv); err != nil {
		log.Fatalw("cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		fatal(log, "cannot open stores", err)
	}
	log.Infow("stores ready", "db_driver", cfg.DB.Driver, "actor_store", cfg.ActorStore)

	if cfg.Auth.JWTSecret == "" {
		sentry.Warning("AUTH_JWT_SECRET is empty, write routes are disabled")
	}

	actors := actor.NewUsecase(repos.actors)
	server := httpserver.Default(cfg,
		httpserver.WithLogger(log),
		httpserver.WithGenreService(genre.NewUsecase(repos.genres)),
		httpserver.WithMovieService(movie.NewUsecase(repos.movies, actors)),
		httpserver.WithPing(repos.ping),
	)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "server stopped with error", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		sentry.Info("movie catalog shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("graceful shutdown failed", zap.Error(err))
			sentry.Error(err)
		}
	}
}

// fatal reports err to sentry before the logger exits the process.
func fatal(log *zap.SugaredLogger, msg string, err error) {
	sentry.Fatal(fmt.Errorf("%s: %w", msg, err))
	log.Fatalw(msg, "error", err)
}

type repositories struct {
	genres genre.Repository
	actors actor.Repository
	movies movie.Repository
	ping   func(ctx context.Context) error
}

type localStore interface {
	genre.Repository
	actor.Repository
	actor.Replica
	movie.Repository
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	var (
		local localStore
		ping  func(ctx context.Context) error
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		local = memory.NewStore()
	default:
		db, err := postgres.NewConnection(postgres.Options{
			DBName:   cfg.DB.Name,
			DBUser:   cfg.DB.User,
			Password: cfg.DB.Pass,
			Host:     cfg.DB.Host,
			Port:     strconv.Itoa(cfg.DB.Port),
			SSLMode:  cfg.DB.EnableSSL,
		})
		if err != nil {
			return repositories{}, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return repositories{}, err
		}
		ping = sqlDB.PingContext
		local = postgres.NewStore(db)
	}

	repos := repositories{genres: local, actors: local, movies: local, ping: ping}
	if cfg.ActorStore == config.DriverDynamoDB {
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			return repositories{}, err
		}
		source := dynamodb.NewActorRepository(client, cfg.DynamoDB.ActorsTable)
		repos.actors = actor.NewReplicatingRepository(source, local)
	}
	return repos, nil
}

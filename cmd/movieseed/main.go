package main

import (
	"context"
	"flag"
	"fmt"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/postgres"
	"os"
	"strconv"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

func main() {
	var (
		csvPath string
		zipURL  string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

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

	ctx := context.Background()
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		log.Fatalw("cannot open postgres connection", "error", err)
	}

	if csvPath == "" {
		log.Infow("downloading dataset", "url", zipURL)
	}
	dataset, err := openDataset(ctx, csvPath, zipURL)
	if err != nil {
		log.Fatalw("cannot open dataset", "error", err)
	}
	defer dataset.Close()

	stats, err := importMovies(ctx, db, dataset, limit)
	if err != nil {
		log.Fatalw("import failed", "error", err)
	}

	log.Infow("import completed", "movies", stats.Movies, "genres", stats.Genres, "links", stats.Links)
}

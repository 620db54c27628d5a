package httpserver

import (
	"context"
	"moviecatalog/genre"
	"moviecatalog/movie"

	"go.uber.org/zap"
)

type Options func(s *Server)

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) {
		s.Logger = l
	}
}

func WithGenreService(svc genre.Service) Options {
	return func(s *Server) {
		s.GenreService = svc
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) {
		s.MovieService = svc
	}
}

// WithRateLimit sets the per client request rate. Zero disables the limiter.
func WithRateLimit(perSecond float64) Options {
	return func(s *Server) {
		s.RateLimit = perSecond
	}
}

func WithPing(ping func(ctx context.Context) error) Options {
	return func(s *Server) {
		s.Ping = ping
	}
}

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"moviecatalog/actor"
	"moviecatalog/errs"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	catalogjwt "moviecatalog/pkg/jwt"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"
	"net/http"
	"strings"

	sentryecho "github.com/getsentry/sentry-go/echo"
	gojwt "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultRateLimit = 20

var errWritesDisabled = errs.Errorf(errs.EUNAUTHORIZED, "write access is not configured")

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// RateLimit is the number of requests per second allowed per client.
	// Zero disables rate limiting.
	RateLimit float64

	Config *config.Config
	Logger *zap.SugaredLogger

	GenreService genre.Service
	MovieService movie.Service

	// Ping reports whether the backing store is reachable.
	Ping func(ctx context.Context) error

	metrics *metrics
}

func Default(cfg *config.Config, options ...Options) *Server {
	if cfg == nil {
		cfg = config.Empty
	}

	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		RateLimit:    defaultRateLimit,
		Config:       cfg,
		Logger:       logger.NOOPLogger,
		metrics:      newMetrics(),
	}
	if cfg.Port != 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	for _, fn := range options {
		fn(&s)
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.handleHTTPError
	s.Router.Validator = NewValidator()
	s.RegisterGlobalMiddlewares()
	api := s.Router.Group("/api")

	// PUBLIC
	public := api.Group("")
	s.RegisterPublicRoutes(public)

	// PRIVATE
	private := api.Group("")
	private.Use(s.editorAuth()...)
	s.RegisterPrivateRoutes(private)
	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.Router.GET("/swagger/*", echoSwagger.WrapHandler)
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(s.metrics.middleware())
	if s.RateLimit > 0 {
		s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.RateLimit))))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) RegisterPublicRoutes(g *echo.Group) {
	s.RegisterGenreRoutes(g)
	s.RegisterPublicMovieRoutes(g)
}

func (s *Server) RegisterPrivateRoutes(g *echo.Group) {
	s.RegisterPrivateMovieRoutes(g)
}

// editorAuth guards the private group. Without a signing secret every
// request is refused, since an empty HMAC key would accept forged tokens.
func (s *Server) editorAuth() []echo.MiddlewareFunc {
	secret := s.Config.Auth.JWTSecret
	if secret == "" {
		s.Logger.Warn("AUTH_JWT_SECRET is empty, write routes are disabled")
		return []echo.MiddlewareFunc{denyAll}
	}

	return []echo.MiddlewareFunc{
		echojwt.WithConfig(echojwt.Config{
			SigningKey:    []byte(secret),
			SigningMethod: "HS256",
			NewClaimsFunc: func(echo.Context) gojwt.Claims {
				return new(catalogjwt.Claims)
			},
		}),
		requireScope(catalogjwt.ScopeEditor),
	}
}

func denyAll(echo.HandlerFunc) echo.HandlerFunc {
	return func(echo.Context) error {
		return errWritesDisabled
	}
}

// requireScope rejects tokens that were not issued for scope.
func requireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*gojwt.Token)
			if !ok {
				return echo.ErrUnauthorized
			}
			claims, ok := token.Claims.(*catalogjwt.Claims)
			if !ok || claims.Scope != scope {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient scope")
			}
			return next(c)
		}
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleHTTPError maps application errors to HTTP status codes and writes the
// error envelope. Server side failures are logged and reported to sentry.
func (s *Server) handleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message, info := resolveError(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Errorw(
			err.Error(),
			zap.String("request_id", s.requestID(c)),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
		)
		sentry.WithContext(c).Error(err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = writeError(c, status, message, info, err)
	}
	if err != nil {
		s.Logger.Errorw("write error response", zap.Error(err))
	}
}

func resolveError(err error) (status int, message, info string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message), ""
	}

	var missing *actor.MissingError
	if errors.As(err, &missing) {
		info = actor.JoinIDs(missing.IDs)
	}

	kind, ok := errorKinds[errs.ErrorCode(err)]
	if !ok {
		return http.StatusInternalServerError, internalErrorMessage, ""
	}
	return kind.status, errs.ErrorMessage(err), info
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

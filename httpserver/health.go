package httpserver

import (
	"context"
	"moviecatalog/pkg/sentry"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const pingTimeout = 2 * time.Second

type healthStatus struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Reports whether the server is alive and its store answers
// @Tags health
// @Success 200 {object} APIResponse{result=healthStatus}
// @Failure 503 {object} APIResponse
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	if s.Ping == nil {
		return writeSuccess(c, http.StatusOK, healthStatus{Status: successMessage, Store: "unchecked"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		s.Logger.Warnw("store ping failed", "error", err, "request_id", s.requestID(c))
		sentry.WithContext(c).Warningf("store ping failed: %v", err)
		return writeError(c, http.StatusServiceUnavailable, "store unavailable", "", nil)
	}
	return writeSuccess(c, http.StatusOK, healthStatus{Status: successMessage, Store: "up"})
}

package httpserver_test

import (
	"moviecatalog/genre"
	"moviecatalog/httpserver"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMetricsEndpoint(t *testing.T) {
	// Arrange
	svc := new(MockGenreService)
	svc.On("ListGenres", mock.Anything).Return([]genre.Genre{}, nil)
	server := httpserver.Default(testConfig(), httpserver.WithGenreService(svc))
	serve(server, httptest.NewRequest(http.MethodGet, "/api/genres", nil))
	serve(server, httptest.NewRequest(http.MethodGet, "/api/movies/1", nil))

	// Act
	rec := serve(server, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `moviecatalog_http_requests_total{method="GET",route="/api/genres",status="200"} 1`)
	assert.Contains(t, body, `moviecatalog_http_requests_total{method="GET",route="/api/movies/:id",status="501"} 1`)
	assert.Contains(t, body, "moviecatalog_http_request_duration_seconds_bucket")
}

func TestMetricsAreIsolatedPerServer(t *testing.T) {
	first := httpserver.Default(testConfig())
	second := httpserver.Default(testConfig())
	serve(first, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	rec := serve(second, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.NotContains(t, rec.Body.String(), `route="/healthcheck"`)
}

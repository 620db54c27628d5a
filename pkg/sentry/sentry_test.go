package sentry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSentry_Builder(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(nil, nil)
	err := errors.New("store unavailable")
	extras := map[string]interface{}{"movie_id": 42}
	tags := map[string]string{"route": "/api/movies/:id"}
	values := map[string]sentrygo.Context{"request": {"method": "GET"}}

	s := new(Sentry)
	result := s.WithContext(ctx).
		WithError(err).
		WithMessage("delete failed").
		WithLevel(sentrygo.LevelWarning).
		WithExtras(extras).
		WithTags(tags).
		WithContextValues(values)

	assert.Same(t, s, result, "builder methods should return the same instance")
	assert.Equal(t, ctx, s.context)
	assert.Equal(t, err, s.error)
	assert.Equal(t, "delete failed", s.message)
	assert.Equal(t, sentrygo.LevelWarning, s.level)
	assert.Equal(t, extras, s.extras)
	assert.Equal(t, tags, s.tags)
	assert.Equal(t, values, s.contextValues)
}

func TestSentry_PackageHelpers(t *testing.T) {
	ctx := echo.New().NewContext(nil, nil)

	assert.Equal(t, ctx, WithContext(ctx).context)
	assert.Equal(t, map[string]string{"env": "test"}, WithTags(map[string]string{"env": "test"}).tags)
	assert.Equal(t, map[string]interface{}{"k": "v"}, WithExtras(map[string]interface{}{"k": "v"}).extras)
	assert.Len(t, WithContextValues(map[string]sentrygo.Context{"c": {}}).contextValues, 1)
}

func TestSentry_Disabled(t *testing.T) {
	tests := []struct {
		name   string
		appEnv string
		dsn    string
	}{
		{name: "local environment", appEnv: "local", dsn: "https://public@sentry.example.com/1"},
		{name: "missing dsn", appEnv: "production", dsn: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.appEnv)
			t.Setenv("SENTRY_DSN", tt.dsn)

			assert.False(t, enabled())
			assert.NotPanics(t, func() {
				Info("catalog started")
				Warning("slow query")
				Error(errors.New("boom"))
				Errorf("movie %d: %s", 1, "boom")
			})
		})
	}
}

func TestSentry_Fatal(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	original := FlushTime
	FlushTime = 0
	defer func() { FlushTime = original }()

	assert.NotPanics(t, func() {
		Fatal(errors.New("fatal error"))
	})
}

func TestSentry_SendsWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")
	assert.NoError(t, Init("https://public@sentry.example.com/1", "production"))
	defer sentrygo.Flush(0)

	req := httptest.NewRequest(http.MethodDelete, "/api/movies/1", nil)
	ctx := echo.New().NewContext(req, httptest.NewRecorder())

	assert.True(t, enabled())
	assert.NotPanics(t, func() {
		WithContext(ctx).
			WithTags(map[string]string{"env": "test"}).
			Error(errors.New("delete failed"))
		new(Sentry).Infof("imported %d movies", 10)
	})
}

func TestSentry_GetHub(t *testing.T) {
	t.Run("falls back to the current hub", func(t *testing.T) {
		assert.Equal(t, sentrygo.CurrentHub(), new(Sentry).getHub())
	})

	t.Run("uses the hub attached to the echo context", func(t *testing.T) {
		ctx := echo.New().NewContext(nil, nil)
		hub := sentrygo.CurrentHub().Clone()
		ctx.Set("sentry", hub)

		assert.Same(t, hub, WithContext(ctx).getHub())
	})
}

func TestInit_EmptyDSN(t *testing.T) {
	assert.NoError(t, Init("", "local"))
}

// nolint: funlen
package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviecatalog/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":          "test",
			"PORT":             "9090",
			"SENTRY_DSN":       "https://test@sentry.io/123",
			"ALLOW_ORIGINS":    "*",
			"DB_DRIVER":        "postgres",
			"DB_NAME":          "catalog",
			"DB_HOST":          "localhost",
			"DB_PORT":          "5432",
			"DB_USER":          "testuser",
			"DB_PASS":          "testpass",
			"ENABLE_SSL":       "true",
			"ACTOR_STORE":      "dynamodb",
			"DDB_REGION":       "eu-west-1",
			"DDB_ENDPOINT":     "http://localhost:8000",
			"DDB_ACTORS_TABLE": "catalog-actors",
			"AUTH_JWT_SECRET":  "secret",
			"AUTH_TOKEN_TTL":   "90m",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, "postgres", cfg.DB.Driver)
		assert.Equal(t, "catalog", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "testuser", cfg.DB.User)
		assert.Equal(t, "testpass", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, "dynamodb", cfg.ActorStore)
		assert.Equal(t, "eu-west-1", cfg.DynamoDB.Region)
		assert.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
		assert.Equal(t, "catalog-actors", cfg.DynamoDB.ActorsTable)
		assert.Equal(t, "secret", cfg.Auth.JWTSecret)
		assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	})

	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
		assert.Equal(t, config.DriverPostgres, cfg.ActorStore)
		assert.Equal(t, "actors", cfg.DynamoDB.ActorsTable)
		assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	})

	t.Run("memory driver keeps actors in memory", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "memory")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, config.DriverMemory, cfg.ActorStore)
	})

	invalid := map[string][2]string{
		"handles invalid port number":   {"PORT", "invalid"},
		"handles invalid boolean value": {"ENABLE_SSL", "not-a-boolean"},
		"handles invalid DB port":       {"DB_PORT", "not-a-number"},
		"rejects unknown db driver":     {"DB_DRIVER", "mysql"},
		"rejects unknown actor store":   {"ACTOR_STORE", "redis"},
	}
	for name, kv := range invalid {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])

			cfg, err := config.LoadConfig()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "load config error")
		})
	}
}

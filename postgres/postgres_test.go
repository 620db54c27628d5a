package postgres_test

import (
	"context"
	"moviecatalog/postgres"
	"testing"
	"time"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const (
	testDBUser = "catalog"
	testDBPass = "catalog-secret"
)

func TestOptions_DSN(t *testing.T) {
	tests := []struct {
		name     string
		opts     postgres.Options
		expected string
	}{
		{
			name:     "ssl disabled",
			opts:     postgres.Options{DBName: "catalog", DBUser: "app", Password: "pw", Host: "localhost", Port: "5432"},
			expected: "postgres://app:pw@localhost:5432/catalog?sslmode=disable",
		},
		{
			name:     "ssl required",
			opts:     postgres.Options{DBName: "catalog", DBUser: "app", Password: "pw", Host: "db", Port: "6432", SSLMode: true},
			expected: "postgres://app:pw@db:6432/catalog?sslmode=require",
		},
		{
			name:     "escapes credentials",
			opts:     postgres.Options{DBName: "catalog", DBUser: "app", Password: "p@ss word", Host: "db", Port: "5432"},
			expected: "postgres://app:p%40ss%20word@db:5432/catalog?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.opts.DSN())
		})
	}
}

func TestNewConnection_Unreachable(t *testing.T) {
	_, err := postgres.NewConnection(postgres.Options{
		DBName:   "catalog",
		DBUser:   "nobody",
		Password: "nothing",
		Host:     "catalog-db.invalid",
		Port:     "5432",
	})

	assert.ErrorContains(t, err, "open postgres catalog-db.invalid/catalog")
}

func TestNewConnection_Container(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	db := newTestDatabase(t, "connection_test")

	var user string
	require.NoError(t, db.Raw("SELECT current_user").Scan(&user).Error)
	assert.Equal(t, testDBUser, user)

	var tables []string
	require.NoError(t, db.Raw(
		"SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name LIKE 'movie%' ORDER BY table_name",
	).Scan(&tables).Error)
	assert.Equal(t, []string{"movie_actors", "movie_genres", "movies"}, tables)
}

// newTestDatabase starts a disposable postgres container, connects to it and
// applies the catalog migrations.
func newTestDatabase(t testing.TB, dbName string) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		pgcontainer.WithDatabase(dbName),
		pgcontainer.WithUsername(testDBUser),
		pgcontainer.WithPassword(testDBPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(ctx))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   dbName,
		DBUser:   testDBUser,
		Password: testDBPass,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	_, err = migrate.Exec(sqlDB, "postgres", &migrate.FileMigrationSource{Dir: "../migrations"}, migrate.Up)
	require.NoError(t, err)

	return db
}

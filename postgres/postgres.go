// Package postgres stores the catalog in PostgreSQL through GORM.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLSTATE foreign_key_violation
const foreignKeyViolation = "23503"

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

type Options struct {
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
}

// DSN renders the options as a postgres:// URL understood by both pgx and lib/pq.
func (o Options) DSN() string {
	sslmode := "disable"
	if o.SSLMode {
		sslmode = "require"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(o.DBUser, o.Password),
		Host:     fmt.Sprintf("%s:%s", o.Host, o.Port),
		Path:     "/" + o.DBName,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	return u.String()
}

// NewConnection opens a pooled connection and verifies it with a ping.
func NewConnection(opts Options) (*gorm.DB, error) {
	db, err := open(postgres.Open(opts.DSN()))
	if err != nil {
		return nil, fmt.Errorf("open postgres %s/%s: %w", opts.Host, opts.DBName, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}

// NewConnectionFromDB wraps an already opened *sql.DB.
func NewConnectionFromDB(sqlDB *sql.DB) (*gorm.DB, error) {
	return open(postgres.New(postgres.Config{Conn: sqlDB}))
}

func open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

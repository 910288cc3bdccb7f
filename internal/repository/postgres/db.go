package postgres

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/johanesPao/pri-retail-daily-sales/internal/config"
)

// ConnectionError marks a failure to reach or authenticate with the
// relational source.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError marks an execution fault at the relational source.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// DB wraps the sqlx connection to the reporting source.
type DB struct {
	*sqlx.DB
}

// Open connects to the source and verifies the connection. A report run
// opens one connection and closes it when the run ends.
func Open(cfg *config.DatabaseConfig) (*DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", connStr)
	if err != nil {
		log.Error().Err(err).Str("host", cfg.Host).Str("dbname", cfg.DBName).Msg("postgres: connection failed")
		return nil, &ConnectionError{Err: err}
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{DB: db}, nil
}

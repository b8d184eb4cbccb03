package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/nar-resolver/internal/config"
)

// Connection holds the database connection to the register.
type Connection struct {
	DB *sql.DB
}

// NewConnection opens a connection using PG* environment variables.
func NewConnection() (*Connection, error) {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnv("PGPORT", "5432")
	user := config.GetEnv("PGUSER", "user")
	password := config.GetEnv("PGPASSWORD", "password")
	dbname := config.GetEnv("PGDATABASE", "nar")
	sslmode := config.GetEnv("PGSSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	maxConns := config.GetEnvInt("PGMAXCONNS", 20)
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)

	return &Connection{DB: db}, nil
}

// Close closes the database connection.
func (c *Connection) Close() error {
	return c.DB.Close()
}

// TableName returns the register table to query, optionally schema-qualified.
func TableName() string {
	return config.GetEnv("NAR_TABLE", "nar_addresses")
}

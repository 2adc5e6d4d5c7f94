package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"                         // PostgreSQL driver
	_ "github.com/trinodb/trino-go-client/trino" // Trino driver
	"go.uber.org/zap"
)

const (
	TypeTrino    = "trino"
	TypePostgres = "postgres"
)

// Config holds configuration for the registry store connection
type Config struct {
	Type            string        `koanf:"type"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Catalog         string        `koanf:"catalog"`
	Schema          string        `koanf:"schema"`
	TableName       string        `koanf:"table_name"`
	SSLMode         string        `koanf:"ssl_mode"`
	SchemaFile      string        `koanf:"schema_file"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// MigratedTable is the table created by the embedded Postgres migrations.
const MigratedTable = "swift_banks"

// QualifiedTable returns the table name as the engine expects it in queries.
// For Trino, Catalog and Schema qualify TableName; for Postgres the table is
// owned by the migrations and Catalog names the database.
func (c Config) QualifiedTable() string {
	if c.Type != TypeTrino {
		return MigratedTable
	}
	table := c.TableName
	if table == "" {
		table = MigratedTable
	}
	return fmt.Sprintf("%s.%s.%s", c.Catalog, c.Schema, table)
}

// DSN builds the driver connection string for the configured engine.
func (c Config) DSN() (string, error) {
	userinfo := url.User(c.User)
	if c.Password != "" {
		userinfo = url.UserPassword(c.User, c.Password)
	}
	switch c.Type {
	case TypeTrino:
		u := url.URL{
			Scheme:   "http",
			User:     userinfo,
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			RawQuery: url.Values{"catalog": {c.Catalog}, "schema": {c.Schema}}.Encode(),
		}
		return u.String(), nil
	case TypePostgres:
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     userinfo,
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			Path:     "/" + c.Catalog,
			RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", c.Type)
	}
}

// Database is a pooled connection handle. It is created once at startup and
// passed explicitly to the repository.
type Database struct {
	*sql.DB
	Config Config
}

// New opens the pool, verifies it and prepares the schema.
func New(ctx context.Context, config Config, logger *zap.Logger) (*Database, error) {
	dsn, err := config.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(config.Type, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", config.Type, err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", config.Type, err)
	}

	logger.Info("connected to registry store",
		zap.String("type", config.Type),
		zap.String("host", config.Host),
		zap.Int("port", config.Port),
		zap.String("table", config.QualifiedTable()),
	)

	database := &Database{DB: db, Config: config}
	if err := database.Prepare(ctx, logger); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// Prepare brings the schema up to date: embedded migrations for Postgres,
// the schema file for Trino.
func (db *Database) Prepare(ctx context.Context, logger *zap.Logger) error {
	switch db.Config.Type {
	case TypePostgres:
		if err := Migrate(db.DB); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("migrations applied")
	case TypeTrino:
		if db.Config.SchemaFile == "" {
			return nil
		}
		if err := db.ExecuteSchema(ctx, db.Config.SchemaFile); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
		logger.Info("schema executed", zap.String("file", db.Config.SchemaFile))
	}
	return nil
}

// ExecuteSchema loads and executes a semicolon separated SQL file
func (db *Database) ExecuteSchema(ctx context.Context, filePath string) error {
	schemaSQL, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	// Trino does not support multi-statement execution
	for _, query := range strings.Split(string(schemaSQL), ";") {
		query = stripComments(query)
		if query == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s, error: %w", query, err)
		}
	}
	return nil
}

func stripComments(query string) string {
	lines := strings.Split(query, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

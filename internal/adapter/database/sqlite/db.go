package sqlite

import (
	"database/sql"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"todoapi/pkg/config"
)

type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

// NewDB opens the sqlite database, runs pending migrations, and wraps the
// connection with otel tracing and zerolog query logging.
func NewDB(cfg config.DatabaseConfig) (*DB, error) {
	migrationDB, err := sql.Open("sqlite3", cfg.Path)

	if err != nil {
		return nil, err
	}

	if err := RunMigrations(migrationDB, cfg.MigrationsPath); err != nil {
		migrationDB.Close()
		return nil, err
	}

	migrationDB.Close()

	sqlDB, err := otelsql.Open("sqlite3", cfg.Path,
		otelsql.WithDBSystem("sqlite"),
		otelsql.WithDBName("todoapi"),
	)

	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	loggedDB := sqldblogger.OpenDriver(cfg.Path, sqlDB.Driver(), zerologadapter.New(logger))

	return NewWithDB(loggedDB), nil
}

// NewWithDB wraps an already-open connection; tests use it with ":memory:".
func NewWithDB(sqlDB *sql.DB) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}
}

func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})

	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"sqlite3",
		driver,
	)

	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

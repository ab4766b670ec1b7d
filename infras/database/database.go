package database

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
	"todolist/config"
	"todolist/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	sqliteMaxOpenConnection   = 1
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Connection holds the read and write pools. With SQLite both point at the
// same pool.
type Connection struct {
	Driver string
	Read   *sqlx.DB
	Write  *sqlx.DB
}

func New(config *config.Config) *Connection {
	conn, err := Open(config)
	if err != nil {
		log.Fatal().Err(err).Str("driver", config.DB.Driver).Msg("Failed to connect to database")
	}

	return conn
}

// Open connects using the driver selected by DB_DRIVER.
func Open(config *config.Config) (*Connection, error) {
	switch config.DB.Driver {
	case DriverPostgres:
		return NewPostgres(config)
	case DriverSQLite:
		return NewSQLite(config.DB.SQLite.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, config.DB.Driver)
	}
}

func NewPostgres(config *config.Config) (*Connection, error) {
	read, err := CreatePostgresConnection("read", PostgresDSN(config, false), config.DB.MaxRetry, config.DB.RetryWaitTime)
	if err != nil {
		return nil, err
	}

	write, err := CreatePostgresConnection("write", PostgresDSN(config, true), config.DB.MaxRetry, config.DB.RetryWaitTime)
	if err != nil {
		_ = read.Close()

		return nil, err
	}

	return &Connection{Driver: DriverPostgres, Read: read, Write: write}, nil
}

// PostgresDSN builds the URL for the read or write node. DB_POSTGRES_PREFIX
// is prepended to the database name.
func PostgresDSN(config *config.Config, write bool) string {
	node := config.DB.Postgres.Read
	if write {
		node = config.DB.Postgres.Write
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		node.Username,
		node.Password,
		net.JoinHostPort(node.Host, node.Port),
		config.DB.Postgres.Prefix+node.Name,
		node.SSLMode,
	)
}

// CreatePostgresConnection connects, retrying up to maxRetry times.
func CreatePostgresConnection(name, dsn string, maxRetry, waitTime int) (*sqlx.DB, error) {
	var err error

	for retry := range max(maxRetry, 1) {
		var sqlDB *sqlx.DB

		sqlDB, err = sqlx.Connect(DriverPostgres, dsn)
		if err == nil {
			log.Info().Str("name", name).Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to postgres (%s): %w", name, err)
}

// SQLiteDSN enables foreign keys and stores timestamps in a sortable text
// form.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

func NewSQLite(path string) (*Connection, error) {
	db, err := sqlx.Connect(DriverSQLite, SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite (%s): %w", path, err)
	}

	// SQLite serialises writers; one connection also keeps ":memory:" alive.
	db.SetMaxOpenConns(sqliteMaxOpenConnection)

	log.Info().Str("path", path).Msg("Connected to sqlite database")

	return &Connection{Driver: DriverSQLite, Read: db, Write: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping write database: %w", err)
	}

	if c.Read != c.Write {
		if err := c.Read.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping read database: %w", err)
		}
	}

	return nil
}

func (c *Connection) Close() error {
	var errs []error

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	return errors.Join(errs...)
}

// IsUniqueViolation reports whether err is a unique or primary key
// constraint failure on either driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()

		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}

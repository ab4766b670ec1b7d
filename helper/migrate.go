package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"todolist/config"
	"todolist/infras/database"
	"todolist/migrations"

	"github.com/golang-migrate/migrate/v4"
	migrateDatabase "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

// getInstance builds a migrator on top of an open connection. The returned
// migrator must not be closed: closing it closes conn as well.
func getInstance(conn *database.Connection, table string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, conn.Driver)
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations (%s): %w", conn.Driver, err)
	}

	var driver migrateDatabase.Driver

	switch conn.Driver {
	case database.DriverPostgres:
		driver, err = postgres.WithInstance(conn.Write.DB, &postgres.Config{MigrationsTable: table})
	case database.DriverSQLite:
		driver, err = sqlite.WithInstance(conn.Write.DB, &sqlite.Config{MigrationsTable: table})
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, conn.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("error creating migrate driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", src, conn.Driver, driver)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Apply runs action against an already open connection.
func Apply(conn *database.Connection, table, action string) error {
	mig, err := getInstance(conn, table)
	if err != nil {
		return err
	}

	switch action {
	case ActionUp:
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations completed successfully")

		return nil
	case ActionDown:
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations rolled back successfully")

		return nil
	case ActionStepUp:
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations completed successfully")

		return nil
	case ActionDrop:
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Str("driver", conn.Driver).Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// Runner opens its own connection from config, applies action and closes it.
func Runner(config *config.Config, action string) error {
	conn, err := database.Open(config)
	if err != nil {
		return fmt.Errorf("error connecting for migrations: %w", err)
	}

	defer conn.Close()

	return Apply(conn, config.DB.MigrationTable, action)
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}

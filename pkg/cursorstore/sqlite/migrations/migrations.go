package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed *.sql
var files embed.FS

// Migrate brings the cursor schema in db up to the newest embedded version.
func Migrate(db *sql.DB, log *zap.SugaredLogger) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("wrap cursor database: %w", err)
	}

	source, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("read embedded cursor schema: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("prepare cursor schema migration: %w", err)
	}

	err = migrator.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate cursor schema: %w", err)
	}

	version, dirty, verr := migrator.Version()
	if verr != nil {
		return fmt.Errorf("read cursor schema version: %w", verr)
	}
	if dirty {
		return fmt.Errorf("cursor schema version %d is dirty", version)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Debugw("cursor schema up to date", "version", version)
	} else {
		log.Infow("migrated cursor schema", "version", version)
	}

	return nil
}

package store

import (
	"context"
	"fmt"

	"github.com/amekhanov/taskvault/internal/config"
	"github.com/amekhanov/taskvault/internal/logger"
)

// Storages bundles every repository the application needs, all backed by
// the same database connection.
type Storages struct {
	Users UserRepository
	Tasks TaskRepository
	Notes NoteRepository

	db *DB
}

// NewStorages connects to the configured database, applies pending schema
// migrations, and constructs all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case "sqlite3":
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	case "pgx":
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		Users: NewUserRepository(db, log),
		Tasks: NewTaskRepository(db, log),
		Notes: NewNoteRepository(db, log),
		db:    db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	return s.db.Close()
}

package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)
	// Migrate creates the schema when the database is new.
	Migrate(ctx context.Context) error

	// ParseRecord model related methods.
	CreateParseRecord(ctx context.Context, create *ParseRecord) (*ParseRecord, error)
	ListParseRecords(ctx context.Context, find *FindParseRecord) ([]*ParseRecord, error)
}

package persistant

import (
	"context"
	"fmt"

	"github.com/aniladanir/campaign-manager/internal/persistant/postgresql"
	"github.com/aniladanir/campaign-manager/internal/persistant/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// Open connects to the database selected by driver and migrates models.
func Open(ctx context.Context, driver, dsn string, models []any) (*gorm.DB, error) {
	switch driver {
	case DriverPostgres:
		return postgresql.Initialize(ctx, dsn, models)
	case DriverSqlite:
		return sqlite.Initialize(ctx, dsn, models)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Close closes the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDb, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDb.Close()
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 5
	connectInterval = 2 * time.Second

	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// Initialize opens a postgres session, sizes its pool and migrates models.
// The database may still be starting, so connecting is retried until
// connectAttempts is reached or ctx is done.
func Initialize(ctx context.Context, connStr string, models []any) (*gorm.DB, error) {
	db, err := connect(ctx, connStr)
	if err != nil {
		return nil, err
	}

	sqlDb, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDb.SetMaxOpenConns(maxOpenConns)
	sqlDb.SetMaxIdleConns(maxIdleConns)
	sqlDb.SetConnMaxLifetime(connMaxLifetime)

	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		_ = sqlDb.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

func connect(ctx context.Context, connStr string) (*gorm.DB, error) {
	retryTicker := time.NewTicker(connectInterval)
	defer retryTicker.Stop()

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var err error
	for attempt := range connectAttempts {
		var db *gorm.DB
		if db, err = gorm.Open(postgres.Open(connStr), cfg); err == nil {
			return db, nil
		}
		if attempt == connectAttempts-1 {
			break
		}
		select {
		case <-retryTicker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("connect to postgres after %d attempts: %w", connectAttempts, err)
}

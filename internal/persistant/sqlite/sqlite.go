package sqlite

import (
	"context"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens an embedded sqlite database and auto migrates the given
// models. dsn is a file path or a sqlite URI such as
// "file:campaigns?mode=memory&cache=shared".
func Initialize(ctx context.Context, dsn string, models []any) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// a single writer avoids "database is locked" under concurrent saves
	if sqlDb, err := db.DB(); err == nil {
		sqlDb.SetMaxOpenConns(1)
	}

	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return nil, err
	}

	return db, nil
}

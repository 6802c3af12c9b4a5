package database

import (
	"sync"
	"time"

	"emperror.dev/errors"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lunarweave/modctl/config"
	"github.com/lunarweave/modctl/internal/models"
)

var (
	o  sync.Once
	db *gorm.DB
)

// Initialize configures the local SQLite database for this daemon instance.
// This database is used to track module enablement state and the persisted
// values of module settings.
func Initialize() error {
	var err error
	o.Do(func() {
		db, err = gorm.Open(sqlite.Open(config.Get().DatabasePath()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			err = errors.Wrap(err, "database: could not open database file")
			return
		}
		if sql, serr := db.DB(); serr == nil {
			sql.SetMaxOpenConns(1)
			sql.SetConnMaxLifetime(time.Hour)
		}
		err = db.AutoMigrate(&models.ModuleState{}, &models.SettingValue{})
	})
	return err
}

// Instance returns the gorm database instance that was configured when the
// application was booted.
func Instance() *gorm.DB {
	if db == nil {
		panic("database: attempt to access instance before initialized")
	}
	return db
}

package infra

import (
	"fmt"

	"github.com/Eljyoussef/POINTAGE-APP/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for all tables. TranslateError is enabled so unique-index
// violations surface as gorm.ErrDuplicatedKey instead of raw pg errors —
// the repositories rely on that for conflict detection.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates/updates the schema from the models. The unique index
// on area_maps.user_id is part of the schema, not just application logic:
// it is what makes one-position-per-agent hold under concurrent writers.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() needs pgcrypto on Postgres < 13; harmless elsewhere.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.Admin{},
		&model.User{},
		&model.AreaMap{},
		&model.DailyReport{},
	)
}

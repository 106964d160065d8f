package database

import (
	"fmt"
	"os"

	"github.com/polito-WA1-2025-exam/labs-strictmode-sub000/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Connect opens the production Postgres connection from environment
// variables: DATABASE_URL wins, otherwise the DB_* pieces are assembled.
func Connect() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return gorm.Open(postgres.Open(databaseURL), cfg)
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	return gorm.Open(postgres.Open(dsn), cfg)
}

// Migrate creates or updates every table, then the partial unique index that
// guards the one-live-cart-entry-per-establishment-per-day rule at the
// storage level. Partial indexes are not expressible as gorm tags, hence the
// raw DDL; the syntax is valid on both Postgres and SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Establishment{},
		&models.Bag{},
		&models.BagItem{},
		&models.CartEntry{},
		&models.RemovedItem{},
		&models.Reservation{},
	); err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_live_cart_slot
		 ON cart_entries (user_id, establishment_id, pickup_day)
		 WHERE consumed_at IS NULL`,
	).Error
}

// LockForUpdate adds a FOR UPDATE clause on dialects that support row locks.
// SQLite has a single writer and rejects the clause, so it is skipped there;
// the partial unique index still holds on every dialect.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

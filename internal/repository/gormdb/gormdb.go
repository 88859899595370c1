// Package gormdb implements the repository interfaces on GORM.
//
// Production uses the Postgres driver; tests open an in-memory SQLite
// database through the same code path (see gormdb_test.go). Either way the
// store's unique constraint on users.github_id is the final backstop against
// two concurrent first logins racing to create the same account — GORM's
// TranslateError turns the driver-specific duplicate-key error into
// gorm.ErrDuplicatedKey so Upsert can recover from the race.
package gormdb

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jaehyukc/growlog/internal/model"
	"github.com/jaehyukc/growlog/internal/repository"
)

// DB wraps the GORM handle and hands out the repository views over it.
// The two repositories share one connection pool; the split exists because
// both interfaces name a Delete with different shapes.
type DB struct {
	conn *gorm.DB
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*DB, error) {
	return New(postgres.Open(dsn))
}

// New opens the given dialector and runs AutoMigrate for both tables.
// Split out from Open so tests can pass an in-memory SQLite dialector.
func New(dialector gorm.Dialector) (*DB, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		// Map driver errors (duplicate key, FK violation) onto GORM's
		// portable sentinels.
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gormdb: opening database: %w", err)
	}

	if err := conn.AutoMigrate(&model.User{}, &model.Note{}); err != nil {
		return nil, fmt.Errorf("gormdb: migrating schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Users returns the account repository backed by this database.
func (db *DB) Users() repository.UserRepository {
	return &userRepo{conn: db.conn}
}

// Notes returns the note repository backed by this database.
func (db *DB) Notes() repository.NoteRepository {
	return &noteRepo{conn: db.conn}
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.conn.DB()
	if err != nil {
		return fmt.Errorf("gormdb: getting sql.DB: %w", err)
	}
	return sqlDB.Close()
}

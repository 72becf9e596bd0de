// Package gormkv implements the persistent slot store on a relational
// database through GORM. SQLite is used on the device; Postgres serves
// fleet deployments that keep routes server side.
package gormkv

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store keeps each slot as one row of kv_entries.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the kv_entries table.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&EntryDTO{})
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var dto EntryDTO
	if err := s.db.WithContext(ctx).First(&dto, "slot = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return dto.Value, true, nil
}

// Put upserts the slot in a single statement.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	dto := EntryDTO{Slot: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&dto).Error
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

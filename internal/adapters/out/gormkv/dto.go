package gormkv

import (
	"time"
)

// EntryDTO is one persisted slot.
type EntryDTO struct {
	Slot      string `gorm:"primaryKey;size:128"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming.
func (EntryDTO) TableName() string {
	return "kv_entries"
}

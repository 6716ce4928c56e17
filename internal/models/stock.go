package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxStockNameLen is the longest accepted stock name (ticker or label).
const MaxStockNameLen = 180

// Stock represents one tracked ticker (or free-form label) belonging to
// a single user. Every read, update, and delete is scoped on
// (name, user_id); the store itself does not enforce uniqueness across
// that pair.
//
// Price is a timestamp, not a monetary amount: it records when the
// entry was first tracked. The column name is kept for wire
// compatibility with existing clients.
//
// The wire shape is {id, name, price, created_at, updated, user}, so
// this model carries its own columns instead of embedding Base.
type Stock struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:180;index:idx_stocks_name_user" json:"name"`
	Price     time.Time      `json:"price"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    *uint          `gorm:"index:idx_stocks_name_user" json:"user"`
}

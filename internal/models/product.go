package models

import "time"

// Product represents a catalog entry. ExternalID is the sequential id shown to
// clients; StoreID is the database key and doubles as the insertion order.
type Product struct {
	StoreID     uint      `json:"-" gorm:"primaryKey;column:store_id"`
	ExternalID  int       `json:"id" gorm:"column:id;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null" validate:"required"`
	Description string    `json:"description" gorm:"not null" validate:"required"`
	Image       string    `json:"image" gorm:"not null" validate:"required"`
	Category    string    `json:"category" gorm:"index;not null" validate:"required"`
	NewPrice    *float64  `json:"new_price,omitempty" validate:"omitempty,gte=0"`
	OldPrice    *float64  `json:"old_price,omitempty" validate:"omitempty,gte=0"`
	Date        time.Time `json:"date" gorm:"autoCreateTime"`
	Available   bool      `json:"available" gorm:"not null"`
}

// Sequence is a named monotonic counter.
type Sequence struct {
	Name  string `gorm:"primaryKey;type:varchar(64)"`
	Value int    `gorm:"not null"`
}

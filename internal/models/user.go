package models

import "time"

// User represents a storefront customer.
type User struct {
	ID       string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name     string     `json:"name" gorm:"type:varchar(100)"`
	Email    string     `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password string     `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Cart     []CartItem `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Date     time.Time  `json:"date" gorm:"autoCreateTime"`
}

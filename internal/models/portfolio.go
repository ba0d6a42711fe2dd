package models

import "time"

// Portfolio is the join fact linking a user to a stock they hold. It has no
// identity of its own: the composite primary key (user_id, stock_id) is also
// the storage-level uniqueness guarantee, so two concurrent adds of the same
// stock for one user cannot both commit.
type Portfolio struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	StockID   uint      `gorm:"primaryKey" json:"stock_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Stock Stock `gorm:"foreignKey:StockID" json:"stock,omitempty"`
}

package models

import "time"

// Order represents an order owned by a single user
type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`             // nullable
	UserID      uint      `gorm:"not null;index" json:"user_id"`            // owner, immutable after creation
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	IsApproved  bool      `gorm:"not null;default:false" json:"is_approved"` // flipped only by an admin approval
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

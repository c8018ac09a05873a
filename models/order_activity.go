package models

import "time"

// OrderActivity is the append-only audit record written when an order is created
type OrderActivity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	Order        Order     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	UserID       uint      `gorm:"not null;index" json:"user_id"` // actor
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ActivityTime time.Time `gorm:"not null;autoCreateTime;index" json:"activity_time"`
}

// TableName specifies the table name for the OrderActivity model
func (OrderActivity) TableName() string {
	return "order_activity"
}

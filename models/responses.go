package models

import "time"

// UserResponse is the public shape of a user
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// OrderResponse is the public shape of an order
type OrderResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	UserID      uint      `json:"user_id"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderActivityWithDetails is an activity entry with its order and actor embedded by value
type OrderActivityWithDetails struct {
	ID           uint          `json:"id"`
	OrderID      uint          `json:"order_id"`
	UserID       uint          `json:"user_id"`
	ActivityTime time.Time     `json:"activity_time"`
	Order        OrderResponse `json:"order"`
	User         UserResponse  `json:"user"`
}

// ToResponse converts a User into its public shape
func (u User) ToResponse() UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}

// ToResponse converts an Order into its public shape
func (o Order) ToResponse() OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		UserID:      o.UserID,
		IsApproved:  o.IsApproved,
		CreatedAt:   o.CreatedAt,
	}
}

// ToResponse converts an activity with preloaded Order and User
func (a OrderActivity) ToResponse() OrderActivityWithDetails {
	return OrderActivityWithDetails{
		ID:           a.ID,
		OrderID:      a.OrderID,
		UserID:       a.UserID,
		ActivityTime: a.ActivityTime,
		Order:        a.Order.ToResponse(),
		User:         a.User.ToResponse(),
	}
}

// OrderResponses converts a slice of orders
func OrderResponses(orders []Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ToResponse())
	}
	return out
}

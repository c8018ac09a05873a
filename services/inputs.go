package services

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/kendall-kelly/order-tracking-api/models"
)

// RegisterInput carries the fields needed to create an account
type RegisterInput struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// Validate will run validation rules
func (r RegisterInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.RuneLength(6, 255)),
		validation.Field(&r.Role, validation.Required, validation.In(models.RoleAdmin, models.RoleUser)),
	)
}

// CreateOrderInput carries the fields a user supplies for a new order
type CreateOrderInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Validate will run validation rules
func (r CreateOrderInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 150)),
	)
}

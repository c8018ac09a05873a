package models

// Role is the access level of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the enumerated roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a registered account (regular user or administrator)
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     Role   `gorm:"size:10;not null;check:check_user_role,role IN ('admin', 'user')" json:"role"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin returns true if the user holds the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

package models

import "gorm.io/gorm"

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleShop     Role = "shop"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleShop, RoleAdmin:
		return true
	}
	return false
}

// User represents a marketplace account: customer, shop or admin.
// Latitude/Longitude are the account's stored coordinates; for shops they
// are the pickup location used by the browse distance filter.
type User struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string  `json:"name" validate:"required,min=2,max=100"`
	Email      string  `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string  `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=6"`
	Role       Role    `json:"role" gorm:"type:varchar(16)" validate:"required,oneof=customer shop admin"`
	Latitude   float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude  float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Approved   bool    `json:"approved"` // shops only; set by admin review
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

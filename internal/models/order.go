package models

import "time"

// OrderStatus is the lifecycle state of a purchase.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPickedUp  OrderStatus = "picked_up"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order records a customer's purchase of one unit of a bag. The pickup code
// is generated at purchase time and must be presented to confirm pickup; it
// is only ever serialized back to the purchasing customer.
type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID string      `json:"customer_id" gorm:"index;type:varchar(36)"`
	BagID      string      `json:"bag_id" gorm:"index;type:varchar(36)"`
	PickupCode string      `json:"pickup_code,omitempty" gorm:"type:varchar(16)"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(16)"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

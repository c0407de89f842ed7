package models

import "time"

// Review is a customer's rating of a shop. Reviews are immutable once
// submitted.
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID string    `json:"customer_id" gorm:"index;type:varchar(36)"`
	ShopID     string    `json:"shop_id" gorm:"index;type:varchar(36)"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    string    `json:"comment" validate:"max=500"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import "gorm.io/gorm"

// BagStatus is the listing state of a surprise bag.
type BagStatus string

const (
	BagStatusAvailable BagStatus = "available"
	BagStatusSold      BagStatus = "sold"
)

// Bag is a shop-listed unit of surplus food. Quantity is decremented on
// purchase; status flips to sold when a purchase drains the last unit and
// back to available when a cancellation restores one.
type Bag struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ShopID      string    `json:"shop_id" gorm:"index;type:varchar(36)"`
	Shop        *User     `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	Description string    `json:"description" validate:"required,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	PickupStart string    `json:"pickup_start" validate:"required"`
	PickupEnd   string    `json:"pickup_end" validate:"required"`
	Category    string    `json:"category" validate:"required,max=100"`
	Status      BagStatus `json:"status"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// BrowseResult is a bag augmented with the great-circle distance from the
// caller's coordinates, when those were supplied.
type BrowseResult struct {
	Bag
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

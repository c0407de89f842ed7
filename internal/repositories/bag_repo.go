package repositories

import "surplussaver/internal/models"

// BagRepository defines the interface for bag data access.
type BagRepository interface {
	Create(bag *models.Bag) error
	GetByID(id string) (*models.Bag, error)
	// GetByIDForShop returns the bag only when it is owned by shopID.
	GetByIDForShop(bagID, shopID string) (*models.Bag, error)
	Update(bag *models.Bag) error
	Delete(id string) error
	ListByShop(shopID string) ([]models.Bag, error)
	// ListAvailable returns available bags, newest first, with the owning
	// shop preloaded for distance computation. An empty category means no
	// category filter.
	ListAvailable(category string) ([]models.Bag, error)
	DeleteByShop(shopID string) error
	CountByStatus(status models.BagStatus) (int64, error)
}

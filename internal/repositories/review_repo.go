package repositories

import "surplussaver/internal/models"

// ReviewRepository defines the interface for review data access. Reviews are
// append-only; there is no update or delete.
type ReviewRepository interface {
	Create(review *models.Review) error
	ListByShop(shopID string) ([]models.Review, error)
}

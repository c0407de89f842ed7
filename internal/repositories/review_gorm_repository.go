package repositories

import (
	"fmt"

	"surplussaver/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// Create stores a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListByShop returns a shop's reviews, newest first.
func (r *GORMReviewRepository) ListByShop(shopID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("shop_id = ?", shopID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews for shop %s: %w", shopID, err)
	}
	return reviews, nil
}

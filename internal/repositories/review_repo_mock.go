package repositories

import (
	"sync"
	"time"

	"surplussaver/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews []models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{}
}

// Create stores a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()
	r.reviews = append(r.reviews, *review)
	return nil
}

// ListByShop returns a shop's reviews in insertion order.
func (r *MockReviewRepository) ListByShop(shopID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []models.Review
	for _, rev := range r.reviews {
		if rev.ShopID == shopID {
			reviews = append(reviews, rev)
		}
	}
	return reviews, nil
}

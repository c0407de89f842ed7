package repositories

import (
	"fmt"
	"sync"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"

	"github.com/google/uuid"
)

// MockBagRepository is an in-memory implementation of BagRepository.
type MockBagRepository struct {
	bags  map[string]models.Bag
	order []string // insertion order, for deterministic listings
	mu    sync.RWMutex

	// Optional user source used to fill Bag.Shop in ListAvailable, mirroring
	// the GORM implementation's preload.
	users UserRepository
}

// NewMockBagRepository creates a new instance of MockBagRepository. The user
// repository may be nil when shop preloading is not needed.
func NewMockBagRepository(users UserRepository) *MockBagRepository {
	return &MockBagRepository{
		bags:  make(map[string]models.Bag),
		users: users,
	}
}

// Create adds a new bag.
func (r *MockBagRepository) Create(bag *models.Bag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bag.ID == "" {
		bag.ID = uuid.New().String()
	}
	r.bags[bag.ID] = *bag
	r.order = append(r.order, bag.ID)
	return nil
}

// GetByID returns a bag by its ID.
func (r *MockBagRepository) GetByID(id string) (*models.Bag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bag, ok := r.bags[id]
	if !ok {
		return nil, fmt.Errorf("%w: bag %s", apperrors.ErrNotFound, id)
	}
	return &bag, nil
}

// GetByIDForShop returns a bag only when it is owned by shopID.
func (r *MockBagRepository) GetByIDForShop(bagID, shopID string) (*models.Bag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bag, ok := r.bags[bagID]
	if !ok || bag.ShopID != shopID {
		return nil, fmt.Errorf("%w: bag %s for shop %s", apperrors.ErrNotFound, bagID, shopID)
	}
	return &bag, nil
}

// Update modifies an existing bag.
func (r *MockBagRepository) Update(bag *models.Bag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bags[bag.ID]; !ok {
		return fmt.Errorf("%w: bag %s", apperrors.ErrNotFound, bag.ID)
	}
	r.bags[bag.ID] = *bag
	return nil
}

// Delete removes a bag by its ID.
func (r *MockBagRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bags[id]; !ok {
		return fmt.Errorf("%w: bag %s", apperrors.ErrNotFound, id)
	}
	delete(r.bags, id)
	return nil
}

// ListByShop returns all bags owned by a shop in insertion order.
func (r *MockBagRepository) ListByShop(shopID string) ([]models.Bag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bags []models.Bag
	for _, id := range r.order {
		if bag, ok := r.bags[id]; ok && bag.ShopID == shopID {
			bags = append(bags, bag)
		}
	}
	return bags, nil
}

// ListAvailable returns available bags in insertion order, optionally
// filtered by category, with Shop filled from the user source when present.
func (r *MockBagRepository) ListAvailable(category string) ([]models.Bag, error) {
	r.mu.RLock()
	bags := make([]models.Bag, 0, len(r.bags))
	for _, id := range r.order {
		bag, ok := r.bags[id]
		if !ok || bag.Status != models.BagStatusAvailable {
			continue
		}
		if category != "" && bag.Category != category {
			continue
		}
		bags = append(bags, bag)
	}
	r.mu.RUnlock()

	if r.users != nil {
		for i := range bags {
			if shop, err := r.users.GetByID(bags[i].ShopID); err == nil {
				bags[i].Shop = shop
			}
		}
	}
	return bags, nil
}

// DeleteByShop removes all bags owned by a shop.
func (r *MockBagRepository) DeleteByShop(shopID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := r.order[:0]
	for _, id := range r.order {
		if bag, ok := r.bags[id]; ok && bag.ShopID == shopID {
			delete(r.bags, id)
			continue
		}
		remaining = append(remaining, id)
	}
	r.order = remaining
	return nil
}

// CountByStatus returns the number of bags in the given status.
func (r *MockBagRepository) CountByStatus(status models.BagStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, bag := range r.bags {
		if bag.Status == status {
			count++
		}
	}
	return count, nil
}

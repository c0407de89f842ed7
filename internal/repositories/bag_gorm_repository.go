package repositories

import (
	"errors"
	"fmt"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBagRepository is a GORM implementation of BagRepository.
type GORMBagRepository struct {
	db *gorm.DB
}

// NewGORMBagRepository creates a new instance of GORMBagRepository.
func NewGORMBagRepository(db *gorm.DB) *GORMBagRepository {
	return &GORMBagRepository{
		db: db,
	}
}

// Create creates a new bag in the database.
func (r *GORMBagRepository) Create(bag *models.Bag) error {
	if bag.ID == "" {
		bag.ID = uuid.New().String()
	}
	if err := r.db.Create(bag).Error; err != nil {
		return fmt.Errorf("failed to create bag: %w", err)
	}
	return nil
}

// GetByID retrieves a single bag by its ID.
func (r *GORMBagRepository) GetByID(id string) (*models.Bag, error) {
	var bag models.Bag
	if err := r.db.First(&bag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bag %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get bag by ID %s: %w", id, err)
	}
	return &bag, nil
}

// GetByIDForShop retrieves a bag only when it belongs to the given shop.
func (r *GORMBagRepository) GetByIDForShop(bagID, shopID string) (*models.Bag, error) {
	var bag models.Bag
	if err := r.db.First(&bag, "id = ? AND shop_id = ?", bagID, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bag %s for shop %s", apperrors.ErrNotFound, bagID, shopID)
		}
		return nil, fmt.Errorf("failed to get bag %s for shop %s: %w", bagID, shopID, err)
	}
	return &bag, nil
}

// Update updates an existing bag in the database.
func (r *GORMBagRepository) Update(bag *models.Bag) error {
	res := r.db.Save(bag) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update bag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: bag %s", apperrors.ErrNotFound, bag.ID)
	}
	return nil
}

// Delete deletes a bag by its ID from the database.
func (r *GORMBagRepository) Delete(id string) error {
	res := r.db.Delete(&models.Bag{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete bag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: bag %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// ListByShop returns every bag listed by a shop, newest first.
func (r *GORMBagRepository) ListByShop(shopID string) ([]models.Bag, error) {
	var bags []models.Bag
	if err := r.db.Where("shop_id = ?", shopID).Order("created_at DESC").Find(&bags).Error; err != nil {
		return nil, fmt.Errorf("failed to list bags for shop %s: %w", shopID, err)
	}
	return bags, nil
}

// ListAvailable returns available bags with the owning shop preloaded.
func (r *GORMBagRepository) ListAvailable(category string) ([]models.Bag, error) {
	query := r.db.Preload("Shop").Where("status = ?", models.BagStatusAvailable)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var bags []models.Bag
	if err := query.Order("created_at DESC").Find(&bags).Error; err != nil {
		return nil, fmt.Errorf("failed to list available bags: %w", err)
	}
	return bags, nil
}

// DeleteByShop removes all bags owned by a shop, soft-deleted ones
// included, so the shop row itself can be deleted afterwards.
func (r *GORMBagRepository) DeleteByShop(shopID string) error {
	if err := r.db.Unscoped().Delete(&models.Bag{}, "shop_id = ?", shopID).Error; err != nil {
		return fmt.Errorf("failed to delete bags for shop %s: %w", shopID, err)
	}
	return nil
}

// CountByStatus returns the number of bags in the given status.
func (r *GORMBagRepository) CountByStatus(status models.BagStatus) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Bag{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bags by status %s: %w", status, err)
	}
	return count, nil
}

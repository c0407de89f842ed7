package repositories

import (
	"errors"
	"fmt"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Purchase runs the buy as a single transaction. The decrement is a guarded
// UPDATE (quantity > 0 AND status = available) so two concurrent purchases
// of the last unit cannot both succeed; the loser's UPDATE matches zero
// rows and the purchase fails with ErrNotAvailable.
func (r *GORMOrderRepository) Purchase(customerID, bagID, pickupCode string) (*models.Order, error) {
	order := &models.Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		BagID:      bagID,
		PickupCode: pickupCode,
		Status:     models.OrderStatusPending,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Bag{}).
			Where("id = ? AND status = ? AND quantity > 0", bagID, models.BagStatusAvailable).
			Update("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement bag %s: %w", bagID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: bag %s", apperrors.ErrNotAvailable, bagID)
		}

		// The last unit just went; flip the bag to sold.
		res = tx.Model(&models.Bag{}).
			Where("id = ? AND quantity = 0", bagID).
			Update("status", models.BagStatusSold)
		if res.Error != nil {
			return fmt.Errorf("failed to mark bag %s sold: %w", bagID, res.Error)
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CancelPending cancels a pending order and restores the bag. The status
// update is guarded on status = pending, so cancelling twice fails the
// second time with ErrNotFound.
func (r *GORMOrderRepository) CancelPending(customerID, orderID string) (*models.Order, error) {
	var order models.Order

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ? AND customer_id = ?", orderID, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %s for customer %s", apperrors.ErrNotFound, orderID, customerID)
			}
			return fmt.Errorf("failed to get order %s: %w", orderID, err)
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
			Update("status", models.OrderStatusCancelled)
		if res.Error != nil {
			return fmt.Errorf("failed to cancel order %s: %w", orderID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: pending order %s", apperrors.ErrNotFound, orderID)
		}
		order.Status = models.OrderStatusCancelled

		// Restore the unit. A restored bag always has quantity >= 1, so it
		// is available regardless of whether it had sold out.
		res = tx.Model(&models.Bag{}).
			Where("id = ?", order.BagID).
			Updates(map[string]interface{}{
				"quantity": gorm.Expr("quantity + 1"),
				"status":   models.BagStatusAvailable,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to restore bag %s: %w", order.BagID, res.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// PendingByBagForCustomer returns the customer's pending order for a bag.
func (r *GORMOrderRepository) PendingByBagForCustomer(bagID, customerID string) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "bag_id = ? AND customer_id = ? AND status = ?",
		bagID, customerID, models.OrderStatusPending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pending order for bag %s and customer %s", apperrors.ErrNotFound, bagID, customerID)
		}
		return nil, fmt.Errorf("failed to get pending order for bag %s: %w", bagID, err)
	}
	return &order, nil
}

// PendingByBagWithCode returns the pending order for a bag with the given
// pickup code.
func (r *GORMOrderRepository) PendingByBagWithCode(bagID, code string) (*models.Order, error) {
	var order models.Order
	err := r.db.First(&order, "bag_id = ? AND pickup_code = ? AND status = ?",
		bagID, code, models.OrderStatusPending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: pending order for bag %s with that code", apperrors.ErrNotFound, bagID)
		}
		return nil, fmt.Errorf("failed to get pending order for bag %s: %w", bagID, err)
	}
	return &order, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (r *GORMOrderRepository) ListByCustomer(customerID string, status models.OrderStatus) ([]models.Order, error) {
	query := r.db.Where("customer_id = ?", customerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for customer %s: %w", customerID, err)
	}
	return orders, nil
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// CountByStatus returns the number of orders in the given status.
func (r *GORMOrderRepository) CountByStatus(status models.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders by status %s: %w", status, err)
	}
	return count, nil
}

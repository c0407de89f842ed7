package repositories

import "surplussaver/internal/models"

// OrderRepository defines the interface for order data access. Purchase and
// CancelPending are the two operations that mutate a bag's quantity; both
// must be atomic so concurrent purchases can never drive quantity negative.
type OrderRepository interface {
	// Purchase atomically decrements the bag's quantity by one, marks the
	// bag sold when the last unit goes, and creates a pending order carrying
	// the given pickup code. Returns apperrors.ErrNotAvailable when the bag
	// is missing, not available, or out of stock.
	Purchase(customerID, bagID, pickupCode string) (*models.Order, error)

	// CancelPending atomically cancels a pending order owned by customerID,
	// restores one unit to the bag and reverts a sold bag to available.
	// Returns apperrors.ErrNotFound unless a matching pending order exists.
	CancelPending(customerID, orderID string) (*models.Order, error)

	GetByID(id string) (*models.Order, error)
	// PendingByBagForCustomer returns the customer's own pending order for a
	// bag. A bag with quantity above one can carry several pending orders at
	// once, so lookups are always scoped to the caller.
	PendingByBagForCustomer(bagID, customerID string) (*models.Order, error)
	// PendingByBagWithCode returns the pending order for a bag carrying the
	// given pickup code.
	PendingByBagWithCode(bagID, code string) (*models.Order, error)
	// ListByCustomer returns a customer's orders, optionally filtered by
	// status (empty status means all).
	ListByCustomer(customerID string, status models.OrderStatus) ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error
	CountByStatus(status models.OrderStatus) (int64, error)
}

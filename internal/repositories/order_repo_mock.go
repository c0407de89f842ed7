package repositories

import (
	"fmt"
	"sync"
	"time"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It mutates bag quantities through the given bag repository; its own mutex
// serializes Purchase and CancelPending, standing in for the transactional
// isolation the GORM implementation gets from the database.
type MockOrderRepository struct {
	orders map[string]models.Order
	bags   BagRepository
	mu     sync.Mutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(bags BagRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		bags:   bags,
	}
}

// Purchase decrements the bag and records a pending order.
func (r *MockOrderRepository) Purchase(customerID, bagID, pickupCode string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bag, err := r.bags.GetByID(bagID)
	if err != nil {
		return nil, fmt.Errorf("%w: bag %s", apperrors.ErrNotAvailable, bagID)
	}
	if bag.Status != models.BagStatusAvailable || bag.Quantity <= 0 {
		return nil, fmt.Errorf("%w: bag %s", apperrors.ErrNotAvailable, bagID)
	}

	bag.Quantity--
	if bag.Quantity == 0 {
		bag.Status = models.BagStatusSold
	}
	if err := r.bags.Update(bag); err != nil {
		return nil, err
	}

	order := models.Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		BagID:      bagID,
		PickupCode: pickupCode,
		Status:     models.OrderStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	r.orders[order.ID] = order
	return &order, nil
}

// CancelPending cancels a pending order and restores the bag.
func (r *MockOrderRepository) CancelPending(customerID, orderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok || order.CustomerID != customerID {
		return nil, fmt.Errorf("%w: order %s for customer %s", apperrors.ErrNotFound, orderID, customerID)
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("%w: pending order %s", apperrors.ErrNotFound, orderID)
	}

	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	r.orders[orderID] = order

	if bag, err := r.bags.GetByID(order.BagID); err == nil {
		bag.Quantity++
		bag.Status = models.BagStatusAvailable
		if err := r.bags.Update(bag); err != nil {
			return nil, err
		}
	}
	return &order, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	return &order, nil
}

// PendingByBagForCustomer returns the customer's pending order for a bag.
func (r *MockOrderRepository) PendingByBagForCustomer(bagID, customerID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.BagID == bagID && order.CustomerID == customerID && order.Status == models.OrderStatusPending {
			o := order
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: pending order for bag %s and customer %s", apperrors.ErrNotFound, bagID, customerID)
}

// PendingByBagWithCode returns the pending order for a bag with the given
// pickup code.
func (r *MockOrderRepository) PendingByBagWithCode(bagID, code string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.BagID == bagID && order.PickupCode == code && order.Status == models.OrderStatusPending {
			o := order
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: pending order for bag %s with that code", apperrors.ErrNotFound, bagID)
}

// ListByCustomer returns a customer's orders, optionally filtered by status.
func (r *MockOrderRepository) ListByCustomer(customerID string, status models.OrderStatus) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.CustomerID != customerID {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// CountByStatus returns the number of orders in the given status.
func (r *MockOrderRepository) CountByStatus(status models.OrderStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, order := range r.orders {
		if order.Status == status {
			count++
		}
	}
	return count, nil
}

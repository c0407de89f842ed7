package services

import (
	"fmt"
	"log"
	"strings"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"
	"surplussaver/internal/repositories"

	"github.com/google/uuid"
)

// Notifier is the best-effort notification sink. Enqueue failures are logged
// and never surfaced to the caller; there is no delivery acknowledgment.
type Notifier interface {
	PublishNotification(userID, message string) error
}

// OrderService handles business logic related to orders: purchase, pickup
// confirmation and cancellation.
type OrderService struct {
	orderRepo repositories.OrderRepository
	bagRepo   repositories.BagRepository
	notifier  Notifier // may be nil when no broker is configured
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, bagRepo repositories.BagRepository, notifier Notifier) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		bagRepo:   bagRepo,
		notifier:  notifier,
	}
}

// Purchase buys one unit of a bag for the customer. The quantity decrement,
// sold transition and order creation happen atomically in the repository.
// The generated pickup code is returned on the order and must be presented
// at pickup.
func (s *OrderService) Purchase(customerID, bagID string) (*models.Order, error) {
	order, err := s.orderRepo.Purchase(customerID, bagID, newPickupCode())
	if err != nil {
		return nil, err
	}

	if bag, err := s.bagRepo.GetByID(bagID); err == nil {
		s.notify(bag.ShopID, fmt.Sprintf("Bag %s was purchased (order %s)", bagID, order.ID))
	}
	return order, nil
}

// ConfirmPickup marks a pending order for a bag as picked up. A bag can
// carry several pending orders at once, so the lookup is scoped to the
// caller: a customer confirms their own pending order and must present its
// code; a shop resolves the order by the presented code and must own the
// bag.
func (s *OrderService) ConfirmPickup(callerID string, callerRole models.Role, bagID, code string) (*models.Order, error) {
	var order *models.Order

	switch callerRole {
	case models.RoleCustomer:
		o, err := s.orderRepo.PendingByBagForCustomer(bagID, callerID)
		if err != nil {
			return nil, err
		}
		if o.PickupCode != code {
			return nil, fmt.Errorf("%w: invalid pickup code for order %s", apperrors.ErrForbidden, o.ID)
		}
		order = o
	case models.RoleShop:
		bag, err := s.bagRepo.GetByID(bagID)
		if err != nil {
			return nil, err
		}
		if bag.ShopID != callerID {
			return nil, fmt.Errorf("%w: bag %s does not belong to shop %s", apperrors.ErrForbidden, bagID, callerID)
		}
		o, err := s.orderRepo.PendingByBagWithCode(bagID, code)
		if err != nil {
			return nil, err
		}
		order = o
	default:
		return nil, fmt.Errorf("%w: role %s cannot confirm pickups", apperrors.ErrForbidden, callerRole)
	}

	if err := s.orderRepo.UpdateStatus(order.ID, models.OrderStatusPickedUp); err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusPickedUp

	s.notify(order.CustomerID, fmt.Sprintf("Pickup confirmed for order %s", order.ID))
	return order, nil
}

// CancelOrder cancels the customer's pending order, restoring one unit to
// the bag and reverting a sold bag to available.
func (s *OrderService) CancelOrder(customerID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.CancelPending(customerID, orderID)
	if err != nil {
		return nil, err
	}

	if bag, err := s.bagRepo.GetByID(order.BagID); err == nil {
		s.notify(bag.ShopID, fmt.Sprintf("Order %s for bag %s was cancelled", order.ID, order.BagID))
	}
	return order, nil
}

// ListOrders returns the customer's orders, optionally filtered by status.
func (s *OrderService) ListOrders(customerID, status string) ([]models.Order, error) {
	orderStatus := models.OrderStatus(status)
	switch orderStatus {
	case "", models.OrderStatusPending, models.OrderStatusPickedUp, models.OrderStatusCancelled:
	default:
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, status)
	}
	return s.orderRepo.ListByCustomer(customerID, orderStatus)
}

func (s *OrderService) notify(userID, message string) {
	if s.notifier == nil {
		log.Println("Notifier is not initialized. Skipping notification.")
		return
	}
	if err := s.notifier.PublishNotification(userID, message); err != nil {
		log.Printf("Warning: Failed to publish notification for user %s: %v", userID, err)
	}
}

// newPickupCode generates the short code a customer presents at pickup.
func newPickupCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

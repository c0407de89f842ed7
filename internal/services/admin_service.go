package services

import (
	"fmt"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"
	"surplussaver/internal/repositories"
)

// Statistics is the admin overview of the marketplace.
type Statistics struct {
	Customers       int64 `json:"customers"`
	Shops           int64 `json:"shops"`
	Admins          int64 `json:"admins"`
	PendingShops    int64 `json:"pending_shops"`
	AvailableBags   int64 `json:"available_bags"`
	SoldBags        int64 `json:"sold_bags"`
	PendingOrders   int64 `json:"pending_orders"`
	PickedUpOrders  int64 `json:"picked_up_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`
}

// AdminService handles administration: admin creation, shop approval, user
// management and statistics.
type AdminService struct {
	userRepo  repositories.UserRepository
	bagRepo   repositories.BagRepository
	orderRepo repositories.OrderRepository
	auth      *AuthService
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repositories.UserRepository, bagRepo repositories.BagRepository, orderRepo repositories.OrderRepository, auth *AuthService) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		bagRepo:   bagRepo,
		orderRepo: orderRepo,
		auth:      auth,
	}
}

// CreateAdmin registers a new admin account.
func (s *AdminService) CreateAdmin(user *models.User) error {
	user.Role = models.RoleAdmin
	return s.auth.RegisterUser(user)
}

// ApproveShop flips the approval flag on a shop account.
func (s *AdminService) ApproveShop(shopID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(shopID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleShop {
		return nil, fmt.Errorf("%w: shop %s", apperrors.ErrNotFound, shopID)
	}
	if user.Approved {
		return nil, fmt.Errorf("%w: shop %s is already approved", apperrors.ErrConflict, shopID)
	}

	user.Approved = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every account.
func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// DeleteUser removes an account. Deleting a shop also removes its bags so
// dead listings cannot be browsed or bought; orders and reviews are kept as
// historical records.
func (s *AdminService) DeleteUser(id string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleShop {
		if err := s.bagRepo.DeleteByShop(id); err != nil {
			return err
		}
	}
	return s.userRepo.Delete(id)
}

// GetStatistics collects the marketplace counters.
func (s *AdminService) GetStatistics() (*Statistics, error) {
	stats := &Statistics{}
	var err error

	if stats.Customers, err = s.userRepo.CountByRole(models.RoleCustomer); err != nil {
		return nil, err
	}
	if stats.Shops, err = s.userRepo.CountByRole(models.RoleShop); err != nil {
		return nil, err
	}
	if stats.Admins, err = s.userRepo.CountByRole(models.RoleAdmin); err != nil {
		return nil, err
	}
	if stats.PendingShops, err = s.userRepo.CountPendingShops(); err != nil {
		return nil, err
	}
	if stats.AvailableBags, err = s.bagRepo.CountByStatus(models.BagStatusAvailable); err != nil {
		return nil, err
	}
	if stats.SoldBags, err = s.bagRepo.CountByStatus(models.BagStatusSold); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.orderRepo.CountByStatus(models.OrderStatusPending); err != nil {
		return nil, err
	}
	if stats.PickedUpOrders, err = s.orderRepo.CountByStatus(models.OrderStatusPickedUp); err != nil {
		return nil, err
	}
	if stats.CancelledOrders, err = s.orderRepo.CountByStatus(models.OrderStatusCancelled); err != nil {
		return nil, err
	}

	return stats, nil
}

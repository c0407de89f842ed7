package repositories

import "surplussaver/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	CountByRole(role models.Role) (int64, error)
	CountPendingShops() (int64, error)
}

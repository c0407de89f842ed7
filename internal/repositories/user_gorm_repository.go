package repositories

import (
	"errors"
	"fmt"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email %s is already registered", apperrors.ErrConflict, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user with email %s", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetAll retrieves every user record.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// Update saves all fields of an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, user.ID)
	}
	return nil
}

// Delete removes a user by ID. The row is deleted for real rather than
// soft-deleted, so the email becomes free for re-registration.
func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Unscoped().Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// CountByRole returns the number of users carrying the given role.
func (r *GORMUserRepository) CountByRole(role models.Role) (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users by role %s: %w", role, err)
	}
	return count, nil
}

// CountPendingShops returns the number of shop accounts awaiting approval.
func (r *GORMUserRepository) CountPendingShops() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("role = ? AND approved = ?", models.RoleShop, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pending shops: %w", err)
	}
	return count, nil
}

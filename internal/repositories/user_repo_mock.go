package repositories

import (
	"fmt"
	"sync"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%w: user with email %s", apperrors.ErrNotFound, email)
}

// GetByID returns a user by its ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}
	return &user, nil
}

// GetAll returns all users.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, u)
	}
	return userList, nil
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by its ID.
func (r *MockUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}
	delete(r.users, id)
	return nil
}

// CountByRole returns the number of users with the given role.
func (r *MockUserRepository) CountByRole(role models.Role) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// CountPendingShops returns the number of unapproved shop accounts.
func (r *MockUserRepository) CountPendingShops() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, u := range r.users {
		if u.Role == models.RoleShop && !u.Approved {
			count++
		}
	}
	return count, nil
}

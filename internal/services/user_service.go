package services

import (
	"fmt"

	"surplussaver/internal/models"
	"surplussaver/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// ProfileUpdate carries the self-service profile fields. Nil pointers leave
// the corresponding field unchanged.
type ProfileUpdate struct {
	Name      *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Password  *string  `json:"password" validate:"omitempty,min=6"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// UserService handles business logic for user profiles.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetProfile retrieves a user by ID.
func (s *UserService) GetProfile(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpdateProfile applies a partial update to the caller's own record. A new
// password is re-hashed before storage.
func (s *UserService) UpdateProfile(id string, upd ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}
	if upd.Latitude != nil {
		user.Latitude = *upd.Latitude
	}
	if upd.Longitude != nil {
		user.Longitude = *upd.Longitude
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

package services

import (
	"fmt"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"
	"surplussaver/internal/repositories"
)

// ReviewService handles review submission and listing. Reviews are immutable
// after submission.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, userRepo repositories.UserRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

// Submit records a customer's review of a shop.
func (s *ReviewService) Submit(customerID, shopID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", apperrors.ErrValidation)
	}

	shop, err := s.userRepo.GetByID(shopID)
	if err != nil {
		return nil, err
	}
	if shop.Role != models.RoleShop {
		return nil, fmt.Errorf("%w: shop %s", apperrors.ErrNotFound, shopID)
	}

	review := &models.Review{
		CustomerID: customerID,
		ShopID:     shopID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByShop returns a shop's reviews.
func (s *ReviewService) ListByShop(shopID string) ([]models.Review, error) {
	return s.reviewRepo.ListByShop(shopID)
}

package handlers

import (
	"log"

	"surplussaver/internal/middleware"
	"surplussaver/internal/models"
	"surplussaver/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for shop reviews.
type ReviewHandler struct {
	reviewService *services.ReviewService
	validate      *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validate:      validator.New(),
	}
}

// RegisterPublicRoutes registers the public review reading route.
func (h *ReviewHandler) RegisterPublicRoutes(public fiber.Router) {
	public.Get("/shops/:id/reviews", h.HandleListShopReviews)
}

// RegisterProtectedRoutes registers review submission on an authenticated
// router.
func (h *ReviewHandler) RegisterProtectedRoutes(protected fiber.Router) {
	protected.Post("/customers/:id/reviews/:shopId",
		middleware.RequireRoles(models.RoleCustomer),
		middleware.RequireOwner("id"),
		h.HandleSubmit)
}

// ReviewRequest is the request body for submitting a review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=500"`
}

// HandleSubmit records a customer's review of a shop.
func (h *ReviewHandler) HandleSubmit(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	review, err := h.reviewService.Submit(c.Params("id"), c.Params("shopId"), req.Rating, req.Comment)
	if err != nil {
		log.Printf("Error submitting review for shop %s: %v", c.Params("shopId"), err)
		return respondError(c, "Could not submit review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleListShopReviews lists a shop's reviews (public read).
func (h *ReviewHandler) HandleListShopReviews(c *fiber.Ctx) error {
	reviews, err := h.reviewService.ListByShop(c.Params("id"))
	if err != nil {
		log.Printf("Error listing reviews: %v", err)
		return respondError(c, "Could not retrieve reviews", err)
	}
	return c.JSON(reviews)
}

package handlers

import (
	"log"

	"surplussaver/internal/middleware"
	"surplussaver/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the caller's own profile.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the profile routes on an authenticated router.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users/me", h.HandleGetProfile)
	router.Patch("/users/me", h.HandleUpdateProfile)
}

// HandleGetProfile returns the authenticated caller's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(middleware.CallerID(c))
	if err != nil {
		return respondError(c, "Could not retrieve profile", err)
	}

	user.Password = ""
	return c.JSON(user)
}

// HandleUpdateProfile applies a partial update to the caller's profile.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var upd services.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(upd); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.userService.UpdateProfile(middleware.CallerID(c), upd)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return respondError(c, "Could not update profile", err)
	}

	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

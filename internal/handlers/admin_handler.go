package handlers

import (
	"log"

	"surplussaver/internal/middleware"
	"surplussaver/internal/models"
	"surplussaver/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles HTTP requests for administration.
type AdminHandler struct {
	adminService *services.AdminService
	validate     *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the admin routes on an authenticated router.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	superadmin := router.Group("/superadmin", middleware.RequireRoles(models.RoleAdmin))
	superadmin.Post("/admins", h.HandleCreateAdmin)
	superadmin.Patch("/shops/:id/approve", h.HandleApproveShop)

	admin := router.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
	admin.Get("/users", h.HandleListUsers)
	admin.Delete("/users/:id", h.HandleDeleteUser)
	admin.Get("/statistics", h.HandleStatistics)
}

// HandleCreateAdmin registers a new admin account.
func (h *AdminHandler) HandleCreateAdmin(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user.Role = models.RoleAdmin
	if err := h.validate.Struct(user); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.adminService.CreateAdmin(&user); err != nil {
		log.Printf("Error creating admin: %v", err)
		return respondError(c, "Could not create admin", err)
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin created successfully",
		"user":    user,
	})
}

// HandleApproveShop approves a shop account.
func (h *AdminHandler) HandleApproveShop(c *fiber.Ctx) error {
	user, err := h.adminService.ApproveShop(c.Params("id"))
	if err != nil {
		log.Printf("Error approving shop %s: %v", c.Params("id"), err)
		return respondError(c, "Could not approve shop", err)
	}

	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Shop approved",
		"user":    user,
	})
}

// HandleListUsers lists every account.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, "Could not retrieve users", err)
	}

	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// HandleDeleteUser removes an account.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.adminService.DeleteUser(c.Params("id")); err != nil {
		log.Printf("Error deleting user %s: %v", c.Params("id"), err)
		return respondError(c, "Could not delete user", err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}

// HandleStatistics returns the marketplace counters.
func (h *AdminHandler) HandleStatistics(c *fiber.Ctx) error {
	stats, err := h.adminService.GetStatistics()
	if err != nil {
		log.Printf("Error collecting statistics: %v", err)
		return respondError(c, "Could not collect statistics", err)
	}
	return c.JSON(stats)
}

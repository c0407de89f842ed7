package handlers

import (
	"log"

	"surplussaver/internal/middleware"
	"surplussaver/internal/models"
	"surplussaver/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for purchases, orders and pickups.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes on an authenticated router.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	customerOwner := []fiber.Handler{
		middleware.RequireRoles(models.RoleCustomer),
		middleware.RequireOwner("id"),
	}
	router.Post("/customers/:id/buy/:bagId", append(customerOwner, h.HandleBuy)...)
	router.Get("/customers/:id/orders", append(customerOwner, h.HandleListOrders)...)
	router.Post("/customers/:id/orders/:orderId/cancel", append(customerOwner, h.HandleCancel)...)

	router.Post("/bags/:id/pickup",
		middleware.RequireRoles(models.RoleCustomer, models.RoleShop),
		h.HandlePickup)
}

// HandleBuy purchases one unit of a bag for the authenticated customer. The
// response carries the pickup code the customer must present.
func (h *OrderHandler) HandleBuy(c *fiber.Ctx) error {
	order, err := h.orderService.Purchase(c.Params("id"), c.Params("bagId"))
	if err != nil {
		log.Printf("Error purchasing bag %s: %v", c.Params("bagId"), err)
		return respondError(c, "Could not purchase bag", err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders lists the customer's orders with an optional ?status=
// filter.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListOrders(c.Params("id"), c.Query("status"))
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleCancel cancels the customer's pending order.
func (h *OrderHandler) HandleCancel(c *fiber.Ctx) error {
	order, err := h.orderService.CancelOrder(c.Params("id"), c.Params("orderId"))
	if err != nil {
		log.Printf("Error cancelling order %s: %v", c.Params("orderId"), err)
		return respondError(c, "Could not cancel order", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// PickupRequest is the request body for pickup confirmation.
type PickupRequest struct {
	Code string `json:"code" validate:"required"`
}

// HandlePickup confirms the pickup of a bag's pending order.
func (h *OrderHandler) HandlePickup(c *fiber.Ctx) error {
	var req PickupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order, err := h.orderService.ConfirmPickup(
		middleware.CallerID(c), middleware.CallerRole(c), c.Params("id"), req.Code)
	if err != nil {
		log.Printf("Error confirming pickup for bag %s: %v", c.Params("id"), err)
		return respondError(c, "Could not confirm pickup", err)
	}
	return c.JSON(fiber.Map{
		"message": "Pickup confirmed",
		"order":   order,
	})
}

package handlers

import (
	"log"
	"strconv"

	"surplussaver/internal/middleware"
	"surplussaver/internal/models"
	"surplussaver/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BagHandler handles HTTP requests for bag management and browsing.
type BagHandler struct {
	bagService *services.BagService
	validate   *validator.Validate
}

// NewBagHandler creates a new BagHandler.
func NewBagHandler(bagService *services.BagService) *BagHandler {
	return &BagHandler{
		bagService: bagService,
		validate:   validator.New(),
	}
}

// RegisterPublicRoutes registers the browse/read routes. These must be
// registered before the authenticated group so the auth middleware does not
// shadow them.
func (h *BagHandler) RegisterPublicRoutes(public fiber.Router) {
	public.Get("/bags", h.HandleBrowse)
	public.Get("/shops/:id/bags", h.HandleListShopBags)
}

// RegisterProtectedRoutes registers the shop mutation routes on an
// authenticated router.
func (h *BagHandler) RegisterProtectedRoutes(protected fiber.Router) {
	shopOnly := []fiber.Handler{
		middleware.RequireRoles(models.RoleShop),
		middleware.RequireOwner("id"),
	}
	protected.Post("/shops/:id/bags", append(shopOnly, h.HandleCreateBag)...)
	protected.Patch("/shops/:id/bags/:bagId", append(shopOnly, h.HandleUpdateBag)...)
	protected.Delete("/shops/:id/bags/:bagId", append(shopOnly, h.HandleDeleteBag)...)
}

// BagRequest is the request body for creating or replacing a bag.
type BagRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	PickupStart string  `json:"pickup_start" validate:"required"`
	PickupEnd   string  `json:"pickup_end" validate:"required"`
	Category    string  `json:"category" validate:"required,max=100"`
}

func (r *BagRequest) toModel() *models.Bag {
	return &models.Bag{
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		PickupStart: r.PickupStart,
		PickupEnd:   r.PickupEnd,
		Category:    r.Category,
	}
}

// HandleBrowse lists available bags with optional category/radius filters
// and price/distance sorting.
func (h *BagHandler) HandleBrowse(c *fiber.Ctx) error {
	params := services.BrowseParams{
		Category: c.Query("category"),
		SortBy:   c.Query("sortBy"),
	}

	var err error
	if params.Latitude, err = queryFloat(c, "lat"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid lat parameter"})
	}
	if params.Longitude, err = queryFloat(c, "lon"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid lon parameter"})
	}
	if params.RadiusKm, err = queryFloat(c, "radius"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid radius parameter"})
	}

	results, err := h.bagService.Browse(params)
	if err != nil {
		log.Printf("Error browsing bags: %v", err)
		return respondError(c, "Could not retrieve bags", err)
	}
	return c.JSON(results)
}

// HandleListShopBags lists every bag of one shop (public read).
func (h *BagHandler) HandleListShopBags(c *fiber.Ctx) error {
	bags, err := h.bagService.ListByShop(c.Params("id"))
	if err != nil {
		log.Printf("Error listing shop bags: %v", err)
		return respondError(c, "Could not retrieve bags", err)
	}
	return c.JSON(bags)
}

// HandleCreateBag lists a new bag for the authenticated shop.
func (h *BagHandler) HandleCreateBag(c *fiber.Ctx) error {
	var req BagRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing bag request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	bag := req.toModel()
	if err := h.bagService.CreateBag(c.Params("id"), bag); err != nil {
		log.Printf("Error creating bag: %v", err)
		return respondError(c, "Could not create bag", err)
	}
	return c.Status(fiber.StatusCreated).JSON(bag)
}

// HandleUpdateBag replaces the mutable fields of an existing bag.
func (h *BagHandler) HandleUpdateBag(c *fiber.Ctx) error {
	var req BagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	bag, err := h.bagService.UpdateBag(c.Params("id"), c.Params("bagId"), req.toModel())
	if err != nil {
		log.Printf("Error updating bag %s: %v", c.Params("bagId"), err)
		return respondError(c, "Could not update bag", err)
	}
	return c.JSON(bag)
}

// HandleDeleteBag removes an available bag.
func (h *BagHandler) HandleDeleteBag(c *fiber.Ctx) error {
	if err := h.bagService.DeleteBag(c.Params("id"), c.Params("bagId")); err != nil {
		log.Printf("Error deleting bag %s: %v", c.Params("bagId"), err)
		return respondError(c, "Could not delete bag", err)
	}
	return c.JSON(fiber.Map{
		"message": "Bag deleted successfully",
	})
}

// queryFloat parses an optional float query parameter, nil when absent.
func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

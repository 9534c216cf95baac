package handlers

import (
	"errors"
	"fmt"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the signed-in user's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes behind the given auth middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/addtocart", auth, h.HandleAddToCart)
	router.Post("/removefromcart", auth, h.HandleRemoveFromCart)
	router.Post("/getcart", auth, h.HandleGetCart)
}

// CartItemRequest identifies the slot to change.
type CartItemRequest struct {
	ItemID *int `json:"itemId" validate:"required"`
}

// HandleAddToCart increments a slot.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.AddItem(middleware.UserID(c), *req.ItemID); err != nil {
		return cartError(c, err)
	}
	return c.SendString("Added")
}

// HandleRemoveFromCart decrements a slot.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.RemoveItem(middleware.UserID(c), *req.ItemID); err != nil {
		return cartError(c, err)
	}
	return c.SendString("Removed")
}

// HandleGetCart returns the whole cart keyed by slot.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(middleware.UserID(c))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(cart)
}

func cartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSlotOutOfRange):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  err.Error(),
		})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"errors":  "User not found",
		})
	}
	return fmt.Errorf("cart: %w", err)
}

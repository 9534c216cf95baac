package handlers

import (
	"fmt"
	"log"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes. The admin routes are public.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/allproducts", h.HandleGetAll)
	router.Get("/newcollections", h.HandleNewCollections)
	router.Get("/cpu", h.HandleCPU)
	router.Post("/relatedproducts", h.HandleRelated)
	router.Post("/addproduct", h.HandleAddProduct)
	router.Post("/removeproduct", h.HandleRemoveProduct)
}

// HandleGetAll retrieves all products.
func (h *ProductHandler) HandleGetAll(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	return c.JSON(nonNil(products))
}

// HandleNewCollections retrieves the latest products.
func (h *ProductHandler) HandleNewCollections(c *fiber.Ctx) error {
	products, err := h.service.GetNewCollection()
	if err != nil {
		return fmt.Errorf("list new collection: %w", err)
	}
	return c.JSON(nonNil(products))
}

// HandleCPU retrieves the first products of the "cpu" category.
func (h *ProductHandler) HandleCPU(c *fiber.Ctx) error {
	products, err := h.service.GetByCategory("cpu")
	if err != nil {
		return fmt.Errorf("list cpu products: %w", err)
	}
	return c.JSON(nonNil(products))
}

// HandleRelated retrieves the first products of the requested category.
func (h *ProductHandler) HandleRelated(c *fiber.Ctx) error {
	var req struct {
		Category string `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	products, err := h.service.GetByCategory(req.Category)
	if err != nil {
		return fmt.Errorf("list related products: %w", err)
	}
	return c.JSON(nonNil(products))
}

// AddProductRequest represents the admin request body for a new product.
type AddProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	NewPrice    *float64 `json:"new_price" validate:"omitempty,gte=0"`
	OldPrice    *float64 `json:"old_price" validate:"omitempty,gte=0"`
}

// HandleAddProduct creates a product.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var req AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		NewPrice:    req.NewPrice,
		OldPrice:    req.OldPrice,
	}
	if err := h.service.CreateProduct(product); err != nil {
		return fmt.Errorf("add product %s: %w", req.Name, err)
	}
	log.Printf("Product %d (%s) added", product.ExternalID, product.Name)

	return c.JSON(fiber.Map{
		"success": true,
		"name":    req.Name,
	})
}

// RemoveProductRequest represents the admin request body for removal.
type RemoveProductRequest struct {
	ID   *int   `json:"id" validate:"required"`
	Name string `json:"name"`
}

// HandleRemoveProduct deletes a product by its external id. Removing an
// unknown id still succeeds.
func (h *ProductHandler) HandleRemoveProduct(c *fiber.Ctx) error {
	var req RemoveProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	removed, err := h.service.RemoveProduct(*req.ID)
	if err != nil {
		return fmt.Errorf("remove product %d: %w", *req.ID, err)
	}
	if removed {
		log.Printf("Product %d removed", *req.ID)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"name":    req.Name,
	})
}

// nonNil keeps empty listings serialized as [] rather than null.
func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}

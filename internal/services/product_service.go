package services

import (
	"log"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// Listing sizes used by the storefront pages.
const (
	NewestLimit  = 8
	RelatedLimit = 4
)

// Catalog event names.
const (
	EventProductAdded   = "product.added"
	EventProductRemoved = "product.removed"
)

// EventPublisher receives catalog change notifications.
type EventPublisher interface {
	PublishCatalogEvent(event string, payload map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetNewCollection retrieves the most recently added products.
func (s *ProductService) GetNewCollection() ([]models.Product, error) {
	return s.repo.GetLatest(NewestLimit)
}

// GetByCategory retrieves the first products of a category.
func (s *ProductService) GetByCategory(category string) ([]models.Product, error) {
	return s.repo.GetByCategory(category, RelatedLimit)
}

// CreateProduct stores a new, available product and assigns its id.
func (s *ProductService) CreateProduct(product *models.Product) error {
	product.Available = true
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.publish(EventProductAdded, map[string]interface{}{
		"id":       product.ExternalID,
		"name":     product.Name,
		"category": product.Category,
	})
	return nil
}

// RemoveProduct deletes the product with the given external id, if any.
func (s *ProductService) RemoveProduct(id int) (bool, error) {
	removed, err := s.repo.DeleteByExternalID(id)
	if err != nil {
		return false, err
	}
	if removed {
		s.publish(EventProductRemoved, map[string]interface{}{"id": id})
	}
	return removed, nil
}

func (s *ProductService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCatalogEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}

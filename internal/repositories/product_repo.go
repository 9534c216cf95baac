package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access. Listing
// methods return products in insertion order.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetLatest(n int) ([]models.Product, error)
	GetByCategory(category string, limit int) ([]models.Product, error)
	Create(product *models.Product) error
	DeleteByExternalID(id int) (bool, error)
}

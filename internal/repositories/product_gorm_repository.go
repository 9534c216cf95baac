package repositories

import (
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const productSequence = "products"

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("store_id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetLatest returns the n most recently inserted products, oldest first.
func (r *GORMProductRepository) GetLatest(n int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("store_id desc").Limit(n).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get latest products: %w", err)
	}
	for i, j := 0, len(products)-1; i < j; i, j = i+1, j-1 {
		products[i], products[j] = products[j], products[i]
	}
	return products, nil
}

// GetByCategory returns up to limit products whose category matches exactly.
func (r *GORMProductRepository) GetByCategory(category string, limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category = ?", category).Order("store_id").Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products in category %s: %w", category, err)
	}
	return products, nil
}

// Create assigns the next external id and inserts the product in the same
// transaction.
func (r *GORMProductRepository) Create(product *models.Product) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		id, err := nextSequenceValue(tx, productSequence)
		if err != nil {
			return err
		}
		product.ExternalID = id
		return tx.Create(product).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("product with ID %d: %w", product.ExternalID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// DeleteByExternalID deletes at most one product. It reports whether a row
// was removed; a missing product is not an error.
func (r *GORMProductRepository) DeleteByExternalID(id int) (bool, error) {
	res := r.db.Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// nextSequenceValue increments the named counter and returns its new value.
// The products counter is seeded from the highest existing product id the
// first time it is used.
func nextSequenceValue(tx *gorm.DB, name string) (int, error) {
	bump := func() (int64, error) {
		res := tx.Model(&models.Sequence{}).Where("name = ?", name).
			UpdateColumn("value", gorm.Expr("value + ?", 1))
		return res.RowsAffected, res.Error
	}

	n, err := bump()
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	if n == 0 {
		var maxID int
		if err := tx.Model(&models.Product{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return 0, fmt.Errorf("failed to seed sequence %s: %w", name, err)
		}
		seed := models.Sequence{Name: name, Value: maxID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return 0, fmt.Errorf("failed to seed sequence %s: %w", name, err)
		}
		if _, err := bump(); err != nil {
			return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
		}
	}

	var seq models.Sequence
	if err := tx.First(&seq, "name = ?", name).Error; err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}
	return seq.Value, nil
}

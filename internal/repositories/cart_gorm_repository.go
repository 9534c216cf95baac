package repositories

import (
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Increment adds one to the slot.
func (r *GORMCartRepository) Increment(userID string, slot int) error {
	res := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND slot = ?", userID, slot).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("failed to increment cart slot %d: %w", slot, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart slot %d for user %s: %w", slot, userID, ErrNotFound)
	}
	return nil
}

// Decrement subtracts one from the slot unless it is already zero. A slot at
// zero is left untouched and is not an error.
func (r *GORMCartRepository) Decrement(userID string, slot int) error {
	res := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND slot = ? AND quantity > 0", userID, slot).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", 1))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement cart slot %d: %w", slot, res.Error)
	}
	return nil
}

// GetItems returns every slot row of the user's cart ordered by slot.
func (r *GORMCartRepository) GetItems(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("slot").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return items, nil
}

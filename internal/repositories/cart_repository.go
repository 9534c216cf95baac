package repositories

import "storefront/internal/models"

// CartRepository defines per-slot cart updates. Increment and Decrement are
// single UPDATE statements, so concurrent calls on one user never lose counts.
type CartRepository interface {
	Increment(userID string, slot int) error
	Decrement(userID string, slot int) error
	GetItems(userID string) ([]models.CartItem, error)
}

package models

// CartItem is one slot of a user's cart. Every user owns exactly one row per
// slot, created together with the user.
type CartItem struct {
	UserID   string `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	Slot     int    `json:"slot" gorm:"primaryKey;autoIncrement:false"`
	Quantity int    `json:"quantity" gorm:"not null;default:0"`
}

// CartState maps a slot to its item count. It marshals to a JSON object keyed
// by the slot number, e.g. {"0":0,"1":2}.
type CartState map[int]int

// NewCartItems returns the zeroed slot rows for a fresh cart.
func NewCartItems(slots int) []CartItem {
	items := make([]CartItem, slots)
	for i := range items {
		items[i].Slot = i
	}
	return items
}

package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService maintains the fixed-size per-user cart.
type CartService struct {
	userRepo repositories.UserRepository
	cartRepo repositories.CartRepository
	slots    int
}

// NewCartService creates a new CartService for carts of the given size.
func NewCartService(userRepo repositories.UserRepository, cartRepo repositories.CartRepository, slots int) *CartService {
	return &CartService{
		userRepo: userRepo,
		cartRepo: cartRepo,
		slots:    slots,
	}
}

// AddItem increments a slot by one.
func (s *CartService) AddItem(userID string, slot int) error {
	if err := s.check(userID, slot); err != nil {
		return err
	}
	return s.cartRepo.Increment(userID, slot)
}

// RemoveItem decrements a slot by one, never below zero.
func (s *CartService) RemoveItem(userID string, slot int) error {
	if err := s.check(userID, slot); err != nil {
		return err
	}
	return s.cartRepo.Decrement(userID, slot)
}

// GetCart returns every slot of the user's cart, zero counts included.
func (s *CartService) GetCart(userID string) (models.CartState, error) {
	if err := s.ensureUser(userID); err != nil {
		return nil, err
	}
	items, err := s.cartRepo.GetItems(userID)
	if err != nil {
		return nil, err
	}

	cart := make(models.CartState, s.slots)
	for i := 0; i < s.slots; i++ {
		cart[i] = 0
	}
	for _, item := range items {
		cart[item.Slot] = item.Quantity
	}
	return cart, nil
}

func (s *CartService) check(userID string, slot int) error {
	if slot < 0 || slot >= s.slots {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrSlotOutOfRange, slot, s.slots)
	}
	return s.ensureUser(userID)
}

func (s *CartService) ensureUser(userID string) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	return nil
}

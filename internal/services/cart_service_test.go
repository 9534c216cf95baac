package services_test

import (
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartService_AddAndRemove(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	service := services.NewCartService(users, carts, 300)

	users.On("GetByID", "u1").Return(&models.User{ID: "u1"}, nil)
	carts.On("Increment", "u1", 5).Return(nil).Once()
	carts.On("Decrement", "u1", 5).Return(nil).Once()

	assert.NoError(t, service.AddItem("u1", 5))
	assert.NoError(t, service.RemoveItem("u1", 5))
	carts.AssertExpectations(t)
}

func TestCartService_SlotBounds(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	service := services.NewCartService(users, carts, 300)

	users.On("GetByID", "u1").Return(&models.User{ID: "u1"}, nil)
	carts.On("Increment", "u1", mock.Anything).Return(nil)

	assert.NoError(t, service.AddItem("u1", 0))
	assert.NoError(t, service.AddItem("u1", 299))
	assert.ErrorIs(t, service.AddItem("u1", 300), services.ErrSlotOutOfRange)
	assert.ErrorIs(t, service.AddItem("u1", -1), services.ErrSlotOutOfRange)
	assert.ErrorIs(t, service.RemoveItem("u1", 1000), services.ErrSlotOutOfRange)
	carts.AssertNumberOfCalls(t, "Increment", 2)
	carts.AssertNotCalled(t, "Decrement", mock.Anything, mock.Anything)
}

func TestCartService_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	service := services.NewCartService(users, carts, 300)

	users.On("GetByID", "ghost").Return(nil, repositories.ErrNotFound)

	assert.ErrorIs(t, service.AddItem("ghost", 1), services.ErrUserNotFound)
	assert.ErrorIs(t, service.RemoveItem("ghost", 1), services.ErrUserNotFound)
	_, err := service.GetCart("ghost")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	carts.AssertExpectations(t)
}

func TestCartService_GetCartFillsEverySlot(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	service := services.NewCartService(users, carts, 300)

	users.On("GetByID", "u1").Return(&models.User{ID: "u1"}, nil)
	carts.On("GetItems", "u1").Return([]models.CartItem{{UserID: "u1", Slot: 5, Quantity: 2}}, nil).Once()

	cart, err := service.GetCart("u1")
	assert.NoError(t, err)
	assert.Len(t, cart, 300)
	assert.Equal(t, 2, cart[5])
	assert.Equal(t, 0, cart[0])
	assert.Equal(t, 0, cart[299])
}

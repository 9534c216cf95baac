package repositories_test

import (
	"sync"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMCartRepository_IncrementDecrement(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	carts := repositories.NewGORMCartRepository(db)

	user := &models.User{Email: "a@x.com", Cart: models.NewCartItems(300)}
	require.NoError(t, users.Create(user))

	items, err := carts.GetItems(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 300)
	for _, item := range items {
		assert.Zero(t, item.Quantity)
	}

	require.NoError(t, carts.Increment(user.ID, 5))
	require.NoError(t, carts.Increment(user.ID, 5))
	require.NoError(t, carts.Decrement(user.ID, 5))

	items, err = carts.GetItems(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, items[5].Quantity)
	assert.Equal(t, 0, items[4].Quantity)
}

func TestGORMCartRepository_DecrementFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	carts := repositories.NewGORMCartRepository(db)

	user := &models.User{Email: "a@x.com", Cart: models.NewCartItems(10)}
	require.NoError(t, users.Create(user))

	require.NoError(t, carts.Decrement(user.ID, 2))
	require.NoError(t, carts.Decrement(user.ID, 2))

	items, err := carts.GetItems(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, items[2].Quantity)
}

func TestGORMCartRepository_IncrementUnknownUser(t *testing.T) {
	carts := repositories.NewGORMCartRepository(newTestDB(t))

	err := carts.Increment("ghost", 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMCartRepository_ConcurrentIncrementsAreNotLost(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	carts := repositories.NewGORMCartRepository(db)

	user := &models.User{Email: "a@x.com", Cart: models.NewCartItems(10)}
	require.NoError(t, users.Create(user))

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- carts.Increment(user.ID, 7)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := carts.GetItems(user.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, items[7].Quantity)
}

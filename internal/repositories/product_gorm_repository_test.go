package repositories_test

import (
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(name, category string) *models.Product {
	return &models.Product{
		Name:        name,
		Description: name + " description",
		Image:       "/image/" + name + ".png",
		Category:    category,
		Available:   true,
	}
}

func TestGORMProductRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	first := newProduct("ryzen", "cpu")
	require.NoError(t, repo.Create(first))
	assert.Equal(t, 1, first.ExternalID)

	second := newProduct("rtx", "gpu")
	require.NoError(t, repo.Create(second))
	assert.Equal(t, 2, second.ExternalID)
}

func TestGORMProductRepository_SequenceSeedsFromExistingProducts(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{ExternalID: 41, Name: "legacy", Description: "d", Image: "i", Category: "cpu"}).Error)

	repo := repositories.NewGORMProductRepository(db)
	p := newProduct("fresh", "cpu")
	require.NoError(t, repo.Create(p))
	assert.Equal(t, 42, p.ExternalID)
}

func TestGORMProductRepository_Listing(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	for i := 1; i <= 10; i++ {
		category := "gpu"
		if i%2 == 0 {
			category = "cpu"
		}
		require.NoError(t, repo.Create(newProduct(fmt.Sprintf("p%d", i), category)))
	}

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.Equal(t, 1, all[0].ExternalID)
	assert.Equal(t, 10, all[9].ExternalID)

	latest, err := repo.GetLatest(8)
	require.NoError(t, err)
	require.Len(t, latest, 8)
	assert.Equal(t, 3, latest[0].ExternalID)
	assert.Equal(t, 10, latest[7].ExternalID)

	cpus, err := repo.GetByCategory("cpu", 4)
	require.NoError(t, err)
	require.Len(t, cpus, 4)
	assert.Equal(t, []int{2, 4, 6, 8}, []int{cpus[0].ExternalID, cpus[1].ExternalID, cpus[2].ExternalID, cpus[3].ExternalID})

	none, err := repo.GetByCategory("CPU", 4)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGORMProductRepository_DeleteByExternalID(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	require.NoError(t, repo.Create(newProduct("a", "cpu")))
	require.NoError(t, repo.Create(newProduct("b", "cpu")))

	removed, err := repo.DeleteByExternalID(1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.DeleteByExternalID(1)
	require.NoError(t, err)
	assert.False(t, removed)

	all, err := repo.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].ExternalID)
}

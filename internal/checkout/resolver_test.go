package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshcart-backend/internal/models"
)

func TestNearestStoreFallsBackToCentral(t *testing.T) {
	repo := fixtureRepo()
	svc := NewService(repo, nil)

	// no address at all
	view, err := svc.NearestStore(1, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), view.ID)
	assert.Equal(t, models.StoreTypeCentral, view.Type)

	// address id that does not belong to the user
	missing := uint(404)
	view, err = svc.NearestStore(1, &missing)
	require.NoError(t, err)
	assert.Equal(t, uint(1), view.ID)
}

func TestNearestStoreNoCentralConfigured(t *testing.T) {
	repo := fixtureRepo()
	repo.stores = repo.stores[1:] // drop the central store
	svc := NewService(repo, nil)

	_, err := svc.NearestStore(1, nil)
	assert.ErrorIs(t, err, ErrNoCentralStore)
}

func TestNearestStorePicksMinimumDistance(t *testing.T) {
	repo := fixtureRepo()
	svc := NewService(repo, nil)

	// the fixture address sits on top of the origin store in Bandung
	addr := uint(5)
	view, err := svc.NearestStore(1, &addr)
	require.NoError(t, err)
	assert.Equal(t, uint(10), view.ID)

	// move the address next to the central store instead
	repo.addresses[0].Latitude = -6.21
	repo.addresses[0].Longitude = 106.81
	view, err = svc.NearestStore(1, &addr)
	require.NoError(t, err)
	assert.Equal(t, uint(1), view.ID)
}

func TestNearestStoreTieBreaksOnLowestID(t *testing.T) {
	repo := newMemoryRepo()
	repo.stores = []models.Store{
		{ID: 3, Name: "B", Type: models.StoreTypeBranch, CityID: 1, Latitude: 0, Longitude: 0},
		{ID: 7, Name: "C", Type: models.StoreTypeBranch, CityID: 1, Latitude: 0, Longitude: 0},
	}
	repo.addresses = []models.UserAddress{{ID: 1, UserID: 1, CityID: 1, Latitude: 0, Longitude: 0}}
	svc := NewService(repo, nil)

	addr := uint(1)
	view, err := svc.NearestStore(1, &addr)
	require.NoError(t, err)
	assert.Equal(t, uint(3), view.ID)
}

func TestDonorStoreNearestInCity(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(11, 1, 10)
	repo.setStock(12, 1, 10)
	origin, err := repo.StoreByID(10)
	require.NoError(t, err)

	donor, err := donorStore(repo, origin, 1, 3)
	require.NoError(t, err)
	require.NotNil(t, donor)
	assert.Equal(t, uint(11), donor.ID)
}

func TestDonorStoreSkipsUnderstockedAndOtherCities(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(11, 1, 2)  // below the needed quantity
	repo.setStock(20, 1, 50) // other city
	origin, err := repo.StoreByID(10)
	require.NoError(t, err)

	donor, err := donorStore(repo, origin, 1, 3)
	require.NoError(t, err)
	assert.Nil(t, donor)
}

func TestDonorStoreNeverReturnsOrigin(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(10, 1, 100)
	origin, err := repo.StoreByID(10)
	require.NoError(t, err)

	donor, err := donorStore(repo, origin, 1, 3)
	require.NoError(t, err)
	assert.Nil(t, donor)
}

func TestDonorStoreRejectsBadArguments(t *testing.T) {
	repo := fixtureRepo()
	origin, err := repo.StoreByID(10)
	require.NoError(t, err)

	_, err = donorStore(repo, nil, 1, 3)
	assert.Error(t, err)
	_, err = donorStore(repo, origin, 0, 3)
	assert.Error(t, err)
	_, err = donorStore(repo, origin, 1, 0)
	assert.Error(t, err)
}

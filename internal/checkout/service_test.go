package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshcart-backend/internal/models"
)

func storeID(id uint) *uint { return &id }

// fixtureRepo builds a city with an origin store (id 10), a nearby donor
// (id 11), a far donor (id 12) and an out-of-city store (id 20), plus the
// admin, expedition and customer address checkout needs.
func fixtureRepo() *memoryRepo {
	repo := newMemoryRepo()
	repo.stores = []models.Store{
		{ID: 1, Name: "Central", Type: models.StoreTypeCentral, CityID: 1, Latitude: -6.20, Longitude: 106.80},
		{ID: 10, Name: "Origin", Type: models.StoreTypeBranch, CityID: 2, Latitude: -6.90, Longitude: 107.60},
		{ID: 11, Name: "Near Donor", Type: models.StoreTypeBranch, CityID: 2, Latitude: -6.91, Longitude: 107.61},
		{ID: 12, Name: "Far Donor", Type: models.StoreTypeBranch, CityID: 2, Latitude: -7.20, Longitude: 107.90},
		{ID: 20, Name: "Other City", Type: models.StoreTypeBranch, CityID: 3, Latitude: -6.90, Longitude: 107.60},
	}
	repo.admins = []models.User{
		{ID: 100, Role: models.RoleStoreAdmin, StoreID: storeID(10)},
		{ID: 101, Role: models.RoleStoreAdmin, StoreID: storeID(1)},
	}
	repo.expeditions = []models.Expedition{
		{ID: 1, Name: "jne", DisplayName: "JNE Regular"},
	}
	repo.addresses = []models.UserAddress{
		{ID: 5, UserID: 1, CityID: 2, Latitude: -6.90, Longitude: 107.60},
	}
	return repo
}

func validInput(items ...CheckoutItem) CreateOrderInput {
	addr := uint(5)
	return CreateOrderInput{
		UserID:       1,
		Items:        items,
		AddressID:    &addr,
		StoreID:      10,
		Courier:      "jne",
		CourierPrice: 15000,
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewService(fixtureRepo(), nil)

	cases := []struct {
		name  string
		input CreateOrderInput
	}{
		{"no items", validInput()},
		{"zero quantity", validInput(CheckoutItem{ProductID: 1, Quantity: 0, Price: 100})},
		{"zero price", validInput(CheckoutItem{ProductID: 1, Quantity: 1, Price: 0})},
		{"missing product", validInput(CheckoutItem{Quantity: 1, Price: 100})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(tc.input)
			assert.Error(t, err)
			var verr validationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	input := validInput(CheckoutItem{ProductID: 1, Quantity: 1, Price: 100})
	input.Courier = ""
	_, err := svc.CreateOrder(input)
	assert.Error(t, err)

	input = validInput(CheckoutItem{ProductID: 1, Quantity: 1, Price: 100})
	input.CourierPrice = -1
	_, err = svc.CreateOrder(input)
	assert.Error(t, err)
}

func TestCreateOrderLocalStock(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(10, 1, 8)
	svc := NewService(repo, nil)

	order, err := svc.CreateOrder(validInput(CheckoutItem{ProductID: 1, Quantity: 3, Price: 25000}))
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, models.OrderStatusPendingPayment, order.Status)
	assert.NotEmpty(t, order.OrderUID)
	assert.Equal(t, uint(100), order.AdminID)
	assert.Equal(t, 5, repo.stockQty(10, 1))

	require.Len(t, order.Details, 1)
	assert.Equal(t, 75000.0, order.Details[0].SubTotal)
	// courier price is charged once at the order level
	assert.Equal(t, 90000.0, order.TotalPrice)

	require.Len(t, repo.adjustments, 1)
	adj := repo.adjustments[0]
	assert.Equal(t, uint(10), adj.StoreID)
	assert.Equal(t, -3, adj.QtyChange)
	assert.Equal(t, models.AdjustmentTypeCheckout, adj.Type)
	assert.Nil(t, adj.MutationType)
	require.NotNil(t, adj.OrderDetailID)
	assert.Equal(t, order.Details[0].ID, *adj.OrderDetailID)
}

func TestCreateOrderInvoiceFormat(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(10, 1, 100)
	repo.nextOrderID = 42
	svc := NewService(repo, nil)

	order, err := svc.CreateOrder(validInput(CheckoutItem{ProductID: 1, Quantity: 1, Price: 1000}))
	require.NoError(t, err)
	assert.Equal(t, "INV-0000042", order.Invoice)
	// the persisted row carries the same backfilled invoice
	assert.Equal(t, "INV-0000042", repo.orders[0].Invoice)
}

func TestCreateOrderShortfallCoveredByDonor(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(10, 1, 2)  // origin holds 2, order asks 5
	repo.setStock(11, 1, 10) // near donor can cover the shortfall of 3
	repo.setStock(12, 1, 10) // farther donor must not be picked
	svc := NewService(repo, nil)

	order, err := svc.CreateOrder(validInput(CheckoutItem{ProductID: 1, Quantity: 5, Price: 10000}))
	require.NoError(t, err)

	assert.Equal(t, 0, repo.stockQty(10, 1), "origin drained")
	assert.Equal(t, 7, repo.stockQty(11, 1), "donor decremented by shortfall")
	assert.Equal(t, 10, repo.stockQty(12, 1), "far donor untouched")

	require.Len(t, repo.adjustments, 2)

	origin := repo.adjustments[0]
	assert.Equal(t, uint(10), origin.StoreID)
	assert.Equal(t, -2, origin.QtyChange)
	assert.Nil(t, origin.MutationType)

	donor := repo.adjustments[1]
	assert.Equal(t, uint(11), donor.StoreID)
	assert.Equal(t, -3, donor.QtyChange)
	require.NotNil(t, donor.MutationType)
	assert.Equal(t, models.MutationPending, *donor.MutationType)
	require.NotNil(t, donor.FromStoreID)
	assert.Equal(t, uint(11), *donor.FromStoreID)
	require.NotNil(t, donor.DestinedStoreID)
	assert.Equal(t, uint(10), *donor.DestinedStoreID)
	require.NotNil(t, donor.OrderDetailID)
	assert.Equal(t, order.Details[0].ID, *donor.OrderDetailID)
}

func TestCreateOrderZeroLocalStockWritesNoOriginEntry(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(10, 1, 0) // origin has nothing, donor covers the full line
	repo.setStock(11, 1, 10)
	svc := NewService(repo, nil)

	order, err := svc.CreateOrder(validInput(CheckoutItem{ProductID: 1, Quantity: 4, Price: 10000}))
	require.NoError(t, err)

	assert.Equal(t, 0, repo.stockQty(10, 1))
	assert.Equal(t, 6, repo.stockQty(11, 1))

	// only the donor's pending entry, no zero-delta origin entry
	require.Len(t, repo.adjustments, 1)
	donor := repo.adjustments[0]
	assert.Equal(t, uint(11), donor.StoreID)
	assert.Equal(t, -4, donor.QtyChange)
	require.NotNil(t, donor.MutationType)
	assert.Equal(t, models.MutationPending, *donor.MutationType)
	require.NotNil(t, donor.OrderDetailID)
	assert.Equal(t, order.Details[0].ID, *donor.OrderDetailID)
}

func TestCreateOrderNoDonorRollsBack(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(10, 1, 2) // not enough, and nobody in the city can donate
	repo.setStock(11, 1, 1)
	repo.setStock(20, 1, 50) // plenty, but in another city
	svc := NewService(repo, nil)

	_, err := svc.CreateOrder(validInput(CheckoutItem{ProductID: 1, Quantity: 5, Price: 10000}))
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, uint(1), stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// nothing may survive the failed transaction
	assert.Equal(t, 2, repo.stockQty(10, 1))
	assert.Equal(t, 1, repo.stockQty(11, 1))
	assert.Empty(t, repo.orders)
	assert.Empty(t, repo.adjustments)
}

func TestCreateOrderSecondLineFailureRollsBackFirst(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(10, 1, 10) // line one succeeds locally
	repo.setStock(10, 2, 0)  // line two has no stock and no donor
	svc := NewService(repo, nil)

	_, err := svc.CreateOrder(validInput(
		CheckoutItem{ProductID: 1, Quantity: 4, Price: 5000},
		CheckoutItem{ProductID: 2, Quantity: 1, Price: 8000},
	))
	require.Error(t, err)

	assert.Equal(t, 10, repo.stockQty(10, 1), "first line decrement rolled back")
	assert.Empty(t, repo.orders)
	assert.Empty(t, repo.adjustments)
}

func TestCreateOrderTwoLinesMixedFulfillment(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(10, 1, 10) // covered locally
	repo.setStock(10, 2, 1)  // shortfall of 2
	repo.setStock(11, 2, 5)
	repo.carts[1] = []models.CartItem{{ID: 1, UserID: 1, ProductID: 1, Quantity: 4}}
	svc := NewService(repo, nil)

	order, err := svc.CreateOrder(validInput(
		CheckoutItem{ProductID: 1, Quantity: 4, Price: 5000},
		CheckoutItem{ProductID: 2, Quantity: 3, Price: 8000},
	))
	require.NoError(t, err)

	assert.Equal(t, 6, repo.stockQty(10, 1))
	assert.Equal(t, 0, repo.stockQty(10, 2))
	assert.Equal(t, 3, repo.stockQty(11, 2))

	// one local entry plus the origin/donor pair for the transfer line
	require.Len(t, repo.adjustments, 3)
	assert.Equal(t, 44000.0+15000.0, order.TotalPrice)

	assert.Empty(t, repo.carts[1], "cart cleared after checkout")
}

func TestCreateOrderResolutionErrors(t *testing.T) {
	repo := fixtureRepo()
	repo.setStock(10, 1, 10)
	svc := NewService(repo, nil)

	input := validInput(CheckoutItem{ProductID: 1, Quantity: 1, Price: 100})
	input.StoreID = 999
	_, err := svc.CreateOrder(input)
	assert.ErrorIs(t, err, ErrStoreNotFound)

	input = validInput(CheckoutItem{ProductID: 1, Quantity: 1, Price: 100})
	input.StoreID = 11 // no admin assigned to the near donor
	_, err = svc.CreateOrder(input)
	assert.ErrorIs(t, err, ErrNoStoreAdmin)

	input = validInput(CheckoutItem{ProductID: 1, Quantity: 1, Price: 100})
	input.Courier = "ghost-courier"
	_, err = svc.CreateOrder(input)
	assert.ErrorIs(t, err, ErrNoExpedition)

	input = validInput(CheckoutItem{ProductID: 1, Quantity: 1, Price: 100})
	other := uint(77)
	input.AddressID = &other
	_, err = svc.CreateOrder(input)
	assert.ErrorIs(t, err, ErrAddressInvalid)
}

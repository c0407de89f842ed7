package services_test

import (
	"testing"

	"surplussaver/internal/apperrors"
	"surplussaver/internal/models"
	"surplussaver/internal/repositories"
	"surplussaver/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBagFixture(t *testing.T) (*services.BagService, *repositories.MockUserRepository, *repositories.MockBagRepository) {
	t.Helper()
	users := repositories.NewMockUserRepository()
	bags := repositories.NewMockBagRepository(users)
	return services.NewBagService(bags, users), users, bags
}

func seedShop(t *testing.T, users *repositories.MockUserRepository, id string, approved bool, lat, lon float64) {
	t.Helper()
	require.NoError(t, users.Create(&models.User{
		ID:        id,
		Name:      "Shop " + id,
		Email:     id + "@example.com",
		Password:  "hashed",
		Role:      models.RoleShop,
		Approved:  approved,
		Latitude:  lat,
		Longitude: lon,
	}))
}

func TestBagService_CreateBag(t *testing.T) {
	service, users, _ := newBagFixture(t)
	seedShop(t, users, "shop-1", true, 0, 0)
	seedShop(t, users, "shop-2", false, 0, 0)

	bag := &models.Bag{
		Description: "Assorted pastries",
		Price:       4.5,
		Quantity:    3,
		PickupStart: "18:00",
		PickupEnd:   "20:00",
		Category:    "bakery",
	}

	// Approved shop can list a bag; status and ownership are set here
	err := service.CreateBag("shop-1", bag)
	assert.NoError(t, err)
	assert.Equal(t, "shop-1", bag.ShopID)
	assert.Equal(t, models.BagStatusAvailable, bag.Status)
	assert.NotEmpty(t, bag.ID)

	// Unapproved shop cannot list
	err = service.CreateBag("shop-2", &models.Bag{Description: "x", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Customers cannot list even through the service layer
	require.NoError(t, users.Create(&models.User{ID: "cust-1", Role: models.RoleCustomer, Email: "c@example.com"}))
	err = service.CreateBag("cust-1", &models.Bag{Description: "x", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Unknown shop
	err = service.CreateBag("missing", &models.Bag{Description: "x", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBagService_UpdateBag(t *testing.T) {
	service, users, bags := newBagFixture(t)
	seedShop(t, users, "shop-1", true, 0, 0)

	bag := &models.Bag{
		Description: "Soup of the day",
		Price:       3,
		Quantity:    2,
		PickupStart: "12:00",
		PickupEnd:   "14:00",
		Category:    "lunch",
	}
	require.NoError(t, service.CreateBag("shop-1", bag))

	// Full-field replace
	updated, err := service.UpdateBag("shop-1", bag.ID, &models.Bag{
		Description: "Soup and bread",
		Price:       3.5,
		Quantity:    5,
		PickupStart: "12:30",
		PickupEnd:   "14:30",
		Category:    "dinner",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Soup and bread", updated.Description)
	assert.Equal(t, 3.5, updated.Price)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "dinner", updated.Category)
	assert.Equal(t, models.BagStatusAvailable, updated.Status)

	// Somebody else's shop id does not see the bag
	_, err = service.UpdateBag("shop-2", bag.ID, &models.Bag{Description: "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Updating a sold bag is allowed; existence does not depend on status
	sold := *updated
	sold.Status = models.BagStatusSold
	sold.Quantity = 0
	require.NoError(t, bags.Update(&sold))
	_, err = service.UpdateBag("shop-1", bag.ID, &models.Bag{
		Description: "Restock", Price: 2, Quantity: 1, PickupStart: "a", PickupEnd: "b", Category: "misc",
	})
	assert.NoError(t, err)
}

func TestBagService_DeleteBag(t *testing.T) {
	service, users, bags := newBagFixture(t)
	seedShop(t, users, "shop-1", true, 0, 0)

	bag := &models.Bag{Description: "Box", Price: 2, Quantity: 1, PickupStart: "a", PickupEnd: "b", Category: "misc"}
	require.NoError(t, service.CreateBag("shop-1", bag))

	// Sold bags cannot be deleted
	sold := *bag
	sold.Status = models.BagStatusSold
	sold.Quantity = 0
	require.NoError(t, bags.Update(&sold))
	err := service.DeleteBag("shop-1", bag.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Available bags can
	sold.Status = models.BagStatusAvailable
	sold.Quantity = 1
	require.NoError(t, bags.Update(&sold))
	assert.NoError(t, service.DeleteBag("shop-1", bag.ID))

	// Gone now
	err = service.DeleteBag("shop-1", bag.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBagService_BrowseDistanceFilter(t *testing.T) {
	service, users, _ := newBagFixture(t)
	// Shop at the origin; caller one degree of longitude away (~111 km).
	seedShop(t, users, "shop-origin", true, 0, 0)

	bag := &models.Bag{Description: "A", Price: 5, Quantity: 1, PickupStart: "a", PickupEnd: "b", Category: "misc"}
	require.NoError(t, service.CreateBag("shop-origin", bag))

	lat, lon := 0.0, 1.0

	// radius=50 excludes the bag
	radius := 50.0
	results, err := service.Browse(services.BrowseParams{Latitude: &lat, Longitude: &lon, RadiusKm: &radius})
	assert.NoError(t, err)
	assert.Empty(t, results)

	// radius=200 includes it, with distance ~111 km
	radius = 200.0
	results, err = service.Browse(services.BrowseParams{Latitude: &lat, Longitude: &lon, RadiusKm: &radius})
	assert.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].DistanceKm)
	assert.InDelta(t, 111.19, *results[0].DistanceKm, 0.5)

	// Without caller coordinates the radius filter is inert
	results, err = service.Browse(services.BrowseParams{RadiusKm: &radius})
	assert.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].DistanceKm)
}

func TestBagService_BrowseSorting(t *testing.T) {
	service, users, _ := newBagFixture(t)
	seedShop(t, users, "shop-near", true, 0, 0.5)
	seedShop(t, users, "shop-far", true, 0, 3)
	seedShop(t, users, "shop-mid", true, 0, 1.5)

	for _, tc := range []struct {
		shop  string
		price float64
	}{
		{"shop-near", 5},
		{"shop-far", 2},
		{"shop-mid", 8},
	} {
		bag := &models.Bag{Description: tc.shop, Price: tc.price, Quantity: 1, PickupStart: "a", PickupEnd: "b", Category: "misc"}
		require.NoError(t, service.CreateBag(tc.shop, bag))
	}

	// Price sort ascending: [5,2,8] -> [2,5,8]
	results, err := service.Browse(services.BrowseParams{SortBy: services.SortByPrice})
	assert.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []float64{2, 5, 8}, []float64{results[0].Price, results[1].Price, results[2].Price})

	// Distance sort nearest-first from the origin
	lat, lon := 0.0, 0.0
	results, err = service.Browse(services.BrowseParams{Latitude: &lat, Longitude: &lon, SortBy: services.SortByDistance})
	assert.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "shop-near", results[0].ShopID)
	assert.Equal(t, "shop-mid", results[1].ShopID)
	assert.Equal(t, "shop-far", results[2].ShopID)

	// Distance sort without coordinates keeps the query order
	results, err = service.Browse(services.BrowseParams{SortBy: services.SortByDistance})
	assert.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "shop-near", results[0].ShopID)
}

func TestBagService_BrowseCategoryAndStatus(t *testing.T) {
	service, users, bags := newBagFixture(t)
	seedShop(t, users, "shop-1", true, 0, 0)

	bakery := &models.Bag{Description: "Bread", Price: 2, Quantity: 1, PickupStart: "a", PickupEnd: "b", Category: "bakery"}
	grocery := &models.Bag{Description: "Veg", Price: 3, Quantity: 1, PickupStart: "a", PickupEnd: "b", Category: "grocery"}
	require.NoError(t, service.CreateBag("shop-1", bakery))
	require.NoError(t, service.CreateBag("shop-1", grocery))

	results, err := service.Browse(services.BrowseParams{Category: "bakery"})
	assert.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bread", results[0].Description)

	// Sold bags never show up
	soldOut := *grocery
	soldOut.Status = models.BagStatusSold
	soldOut.Quantity = 0
	require.NoError(t, bags.Update(&soldOut))
	results, err = service.Browse(services.BrowseParams{})
	assert.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bread", results[0].Description)

	// Password hashes never leak through the preloaded shop
	require.NotNil(t, results[0].Shop)
	assert.Empty(t, results[0].Shop.Password)
}

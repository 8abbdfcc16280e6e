package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

func TestOrderCreateDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	buyer := createTestUser(t, db, "buyer@example.com", models.UserRoleFarmer)
	product := createTestProduct(t, db, farmer.ID, "Maize", "5", 10)

	orders := NewOrderService(db)
	products := NewProductService(db)

	order, err := orders.Create(buyer.ID, &models.OrderCreation{
		ProductID: product.ID,
		Quantity:  4,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.SupplyChainStatusProcessing, order.SupplyChain.Status)
	assert.Equal(t, "20", order.TotalPrice.String())

	updated, err := products.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)
}

func TestOrderCreateInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	buyer := createTestUser(t, db, "buyer@example.com", models.UserRoleFarmer)
	product := createTestProduct(t, db, farmer.ID, "Maize", "5", 6)

	orders := NewOrderService(db)

	_, err := orders.Create(buyer.ID, &models.OrderCreation{
		ProductID: product.ID,
		Quantity:  7,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))

	// Stock must be untouched after a rejected order.
	updated, err := NewProductService(db).GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)
}

func TestOrderCreateUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	buyer := createTestUser(t, db, "buyer@example.com", models.UserRoleFarmer)

	_, err := NewOrderService(db).Create(buyer.ID, &models.OrderCreation{
		ProductID: "missing",
		Quantity:  1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOrderCancelRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	buyer := createTestUser(t, db, "buyer@example.com", models.UserRoleFarmer)
	product := createTestProduct(t, db, farmer.ID, "Maize", "5", 10)

	orders := NewOrderService(db)
	order, err := orders.Create(buyer.ID, &models.OrderCreation{
		ProductID: product.ID,
		Quantity:  4,
	})
	require.NoError(t, err)

	require.NoError(t, orders.Cancel(order.ID))

	updated, err := NewProductService(db).GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity)

	// The order record is gone after cancellation.
	_, err = orders.GetByID(order.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOrderCancelNonPending(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	buyer := createTestUser(t, db, "buyer@example.com", models.UserRoleFarmer)
	product := createTestProduct(t, db, farmer.ID, "Maize", "5", 10)

	orders := NewOrderService(db)
	order, err := orders.Create(buyer.ID, &models.OrderCreation{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	_, err = orders.UpdateStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	err = orders.Cancel(order.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestOrderUpdateStatusRejectsUnknown(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	buyer := createTestUser(t, db, "buyer@example.com", models.UserRoleFarmer)
	product := createTestProduct(t, db, farmer.ID, "Maize", "5", 10)

	orders := NewOrderService(db)
	order, err := orders.Create(buyer.ID, &models.OrderCreation{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	_, err = orders.UpdateStatus(order.ID, "teleported")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestOrderListScopes(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	buyer := createTestUser(t, db, "buyer@example.com", models.UserRoleFarmer)
	other := createTestUser(t, db, "other@example.com", models.UserRoleFarmer)
	product := createTestProduct(t, db, farmer.ID, "Maize", "5", 10)

	orders := NewOrderService(db)
	order, err := orders.Create(buyer.ID, &models.OrderCreation{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	bought, err := orders.ListForBuyer(buyer.ID)
	require.NoError(t, err)
	require.Len(t, bought, 1)
	assert.Equal(t, order.ID, bought[0].ID)

	// The selling farmer is not a buyer and sees nothing here.
	none, err := orders.ListForBuyer(farmer.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	none, err = orders.ListForBuyer(other.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductDeleteBlockedByOrders(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	buyer := createTestUser(t, db, "buyer@example.com", models.UserRoleFarmer)
	product := createTestProduct(t, db, farmer.ID, "Maize", "5", 10)

	orders := NewOrderService(db)
	products := NewProductService(db)

	order, err := orders.Create(buyer.ID, &models.OrderCreation{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	err = products.Delete(product.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Once the order is gone the listing can be removed.
	require.NoError(t, orders.Cancel(order.ID))
	require.NoError(t, products.Delete(product.ID))
}

func TestOrderTotalPriceFixedAtCreation(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	buyer := createTestUser(t, db, "buyer@example.com", models.UserRoleFarmer)
	product := createTestProduct(t, db, farmer.ID, "Maize", "2.50", 10)

	orders := NewOrderService(db)
	order, err := orders.Create(buyer.ID, &models.OrderCreation{
		ProductID: product.ID,
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, "7.5", order.TotalPrice.String())

	// A later price change must not affect the stored total.
	newPrice := mustDecimal(t, "100")
	_, err = NewProductService(db).Update(product.ID, &models.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)

	fetched, err := orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "7.5", fetched.TotalPrice.String())
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

func TestInventoryCreateAcceptsZeroQuantity(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	inventory := NewInventoryService(db)

	item, err := inventory.Create(farmer.ID, &models.InventoryItemCreation{
		Name:     "DAP Fertilizer",
		Category: models.InventoryCategoryFertilizer,
		Quantity: 0,
		Unit:     "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)

	fetched, err := inventory.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.Quantity)
}

func TestInventoryCreateRejectsNegativeQuantity(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	inventory := NewInventoryService(db)

	_, err := inventory.Create(farmer.ID, &models.InventoryItemCreation{
		Name:     "Hoe",
		Quantity: -1,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestInventoryExpiryBeforeAcquiredRejected(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	inventory := NewInventoryService(db)

	acquired := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expired := acquired.AddDate(0, -1, 0)

	_, err := inventory.Create(farmer.ID, &models.InventoryItemCreation{
		Name:         "Maize Seed",
		Category:     models.InventoryCategorySeed,
		Quantity:     20,
		Unit:         "kg",
		AcquiredDate: &acquired,
		ExpiryDate:   &expired,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestInventoryUpdateKeepsDatesConsistent(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	inventory := NewInventoryService(db)

	acquired := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	expiry := acquired.AddDate(0, 6, 0)
	item, err := inventory.Create(farmer.ID, &models.InventoryItemCreation{
		Name:         "Maize Seed",
		Category:     models.InventoryCategorySeed,
		Quantity:     20,
		Unit:         "kg",
		AcquiredDate: &acquired,
		ExpiryDate:   &expiry,
	})
	require.NoError(t, err)

	// Moving the expiry before the stored acquisition date fails.
	badExpiry := acquired.AddDate(0, -1, 0)
	_, err = inventory.Update(item.ID, &models.InventoryItemUpdate{ExpiryDate: &badExpiry})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	// So does moving the acquisition date past the stored expiry.
	badAcquired := expiry.AddDate(0, 1, 0)
	_, err = inventory.Update(item.ID, &models.InventoryItemUpdate{AcquiredDate: &badAcquired})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	// A consistent pair still goes through.
	newExpiry := expiry.AddDate(0, 3, 0)
	updated, err := inventory.Update(item.ID, &models.InventoryItemUpdate{ExpiryDate: &newExpiry})
	require.NoError(t, err)
	require.NotNil(t, updated.ExpiryDate)
	assert.True(t, updated.ExpiryDate.Equal(newExpiry))
}

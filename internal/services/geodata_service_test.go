package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

func TestGeoDataRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	geoData := NewGeoDataService(db)

	record, err := geoData.Create(farmer.ID, &models.GeoDataCreation{
		FarmName:    "Green Acres",
		Latitude:    -1.2921,
		Longitude:   36.8219,
		SoilType:    models.SoilTypeLoamy,
		WaterSource: models.WaterSourceWell,
		Produce:     []string{"maize", "beans"},
	})
	require.NoError(t, err)

	fetched, err := geoData.GetByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Acres", fetched.FarmName)
	assert.Equal(t, []string{"maize", "beans"}, fetched.Produce)
	assert.Equal(t, models.SoilTypeLoamy, fetched.SoilType)
}

func TestGeoDataRejectsUnknownEnums(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	geoData := NewGeoDataService(db)

	_, err := geoData.Create(farmer.ID, &models.GeoDataCreation{
		FarmName:    "Bad Soil",
		SoilType:    "VOLCANIC",
		WaterSource: models.WaterSourceRiver,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	_, err = geoData.Create(farmer.ID, &models.GeoDataCreation{
		FarmName:    "Bad Water",
		SoilType:    models.SoilTypeClay,
		WaterSource: "OCEAN",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestGeoDataListScopes(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	other := createTestUser(t, db, "other@example.com", models.UserRoleFarmer)
	geoData := NewGeoDataService(db)

	_, err := geoData.Create(farmer.ID, &models.GeoDataCreation{
		FarmName:    "Mine",
		SoilType:    models.SoilTypeSandy,
		WaterSource: models.WaterSourceRainfed,
	})
	require.NoError(t, err)

	mine, err := geoData.ListByFarmer(farmer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := geoData.ListByFarmer(other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	all, err := geoData.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCropRecommendations(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	geoData := NewGeoDataService(db)

	_, err := geoData.Create(farmer.ID, &models.GeoDataCreation{
		FarmName:    "Irrigated Loam",
		SoilType:    models.SoilTypeLoamy,
		WaterSource: models.WaterSourceIrrigation,
	})
	require.NoError(t, err)
	_, err = geoData.Create(farmer.ID, &models.GeoDataCreation{
		FarmName:    "Rainfed Loam",
		SoilType:    models.SoilTypeLoamy,
		WaterSource: models.WaterSourceRainfed,
	})
	require.NoError(t, err)

	recs, err := NewRecommendationService(db, geoData).ForFarmer(farmer.ID)
	require.NoError(t, err)
	require.Len(t, recs.Crops, 2)

	byName := map[string][]string{}
	for _, rec := range recs.Crops {
		byName[rec.FarmName] = rec.Crops
	}

	assert.Contains(t, byName["Irrigated Loam"], "tomatoes")
	// Rainfed farms are steered to the drought tolerant subset.
	assert.NotContains(t, byName["Rainfed Loam"], "tomatoes")
	assert.Contains(t, byName["Rainfed Loam"], "beans")
}

func TestRecommendationTipsForInactiveFarmer(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)

	recs, err := NewRecommendationService(db, NewGeoDataService(db)).ForFarmer(farmer.ID)
	require.NoError(t, err)
	assert.Empty(t, recs.Crops)

	tips := strings.Join(recs.Tips, " ")
	assert.Contains(t, tips, "Register your farm")
	assert.Contains(t, tips, "sensor readings this week")
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrilink-backend/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestIrrigationAdviceThresholds(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	sensors := NewSensorService(db)

	cases := []struct {
		name     string
		moisture float64
		temp     float64
		humidity float64
		irrigate bool
	}{
		{"dry soil", 20, 25, 60, true},
		{"hot and dry air", 45, 35, 30, true},
		{"hot but humid", 45, 35, 70, false},
		{"comfortable", 50, 24, 55, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sensors.Record(farmer.ID, &models.SensorReadingCreation{
				SoilMoisture: floatPtr(tc.moisture),
				Temperature:  floatPtr(tc.temp),
				Humidity:     floatPtr(tc.humidity),
			})
			require.NoError(t, err)

			advice, err := sensors.Advice(farmer.ID)
			require.NoError(t, err)
			require.NotNil(t, advice.Latest)
			if tc.irrigate {
				assert.Contains(t, advice.Advice, "rrigat")
			} else {
				assert.NotContains(t, advice.Advice, "recommended")
			}
		})
	}
}

func TestIrrigationAdviceWithoutData(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)

	advice, err := NewSensorService(db).Advice(farmer.ID)
	require.NoError(t, err)
	assert.Nil(t, advice.Latest)
	assert.Contains(t, advice.Advice, "No sensor data")
}

func TestSensorReadingsScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	farmer := createTestUser(t, db, "farmer@example.com", models.UserRoleFarmer)
	other := createTestUser(t, db, "other@example.com", models.UserRoleFarmer)
	sensors := NewSensorService(db)

	_, err := sensors.Record(farmer.ID, &models.SensorReadingCreation{
		SoilMoisture: floatPtr(40),
		Temperature:  floatPtr(22),
		Humidity:     floatPtr(60),
	})
	require.NoError(t, err)

	mine, err := sensors.ListByOwner(farmer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := sensors.ListByOwner(other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

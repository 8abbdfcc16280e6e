package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/utils"
)

// Irrigation thresholds applied to the latest reading.
const (
	drySoilMoisture = 30.0
	hotTemperature  = 32.0
	dryAirHumidity  = 40.0
)

// SensorService stores field sensor readings and derives irrigation advice
type SensorService struct {
	db *sql.DB
}

func NewSensorService(db *sql.DB) *SensorService {
	return &SensorService{db: db}
}

// Record stores a new sensor reading for the caller
func (s *SensorService) Record(ownerID string, req *models.SensorReadingCreation) (*models.SensorReading, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}

	reading := &models.SensorReading{
		ID:           uuid.New().String(),
		SoilMoisture: *req.SoilMoisture,
		Temperature:  *req.Temperature,
		Humidity:     *req.Humidity,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CreatedBy:    ownerID,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO sensor_readings (id, soil_moisture, temperature, humidity, latitude, longitude, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reading.ID, reading.SoilMoisture, reading.Temperature, reading.Humidity,
		reading.Latitude, reading.Longitude, reading.CreatedBy, reading.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record reading: %w", err)
	}

	return reading, nil
}

// GetByID fetches a single reading
func (s *SensorService) GetByID(id string) (*models.SensorReading, error) {
	var r models.SensorReading
	err := s.db.QueryRow(`
		SELECT id, soil_moisture, temperature, humidity, latitude, longitude, created_by, created_at
		FROM sensor_readings WHERE id = ?`, id).
		Scan(&r.ID, &r.SoilMoisture, &r.Temperature, &r.Humidity,
			&r.Latitude, &r.Longitude, &r.CreatedBy, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("sensor reading not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reading: %w", err)
	}
	return &r, nil
}

// ListByOwner returns the caller's readings, newest first
func (s *SensorService) ListByOwner(ownerID string) ([]models.SensorReading, error) {
	rows, err := s.db.Query(`
		SELECT id, soil_moisture, temperature, humidity, latitude, longitude, created_by, created_at
		FROM sensor_readings WHERE created_by = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer rows.Close()

	readings := []models.SensorReading{}
	for rows.Next() {
		var r models.SensorReading
		if err := rows.Scan(&r.ID, &r.SoilMoisture, &r.Temperature, &r.Humidity,
			&r.Latitude, &r.Longitude, &r.CreatedBy, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// Delete removes a reading
func (s *SensorService) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM sensor_readings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete reading: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("sensor reading not found")
	}
	return nil
}

// Advice derives irrigation advice from the caller's latest reading.
// Irrigation is recommended when the soil is dry, or when heat and low
// humidity together suggest rapid evaporation.
func (s *SensorService) Advice(ownerID string) (*models.IrrigationAdvice, error) {
	readings, err := s.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return &models.IrrigationAdvice{Advice: "No sensor data available yet. Record a reading first."}, nil
	}

	latest := readings[0]
	advice := &models.IrrigationAdvice{Latest: &latest}

	switch {
	case latest.SoilMoisture < drySoilMoisture:
		advice.Advice = "Soil moisture is low. Irrigation is recommended."
	case latest.Temperature > hotTemperature && latest.Humidity < dryAirHumidity:
		advice.Advice = "High temperature and dry air detected. Consider irrigating to offset evaporation."
	default:
		advice.Advice = "Conditions look fine. No irrigation needed right now."
	}
	return advice, nil
}

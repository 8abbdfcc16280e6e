package models

import "time"

// SensorReading represents a field sensor measurement. Readings are immutable
// once recorded; the only mutation is deletion.
type SensorReading struct {
	ID           string    `json:"id" db:"id"`
	SoilMoisture float64   `json:"soilMoisture" db:"soil_moisture"`
	Temperature  float64   `json:"temperature" db:"temperature"`
	Humidity     float64   `json:"humidity" db:"humidity"`
	Latitude     float64   `json:"latitude" db:"latitude"`
	Longitude    float64   `json:"longitude" db:"longitude"`
	CreatedBy    string    `json:"createdBy" db:"created_by"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Joined data (populated when needed)
	Creator *User `json:"creator,omitempty"`
}

// SensorReadingCreation represents data for recording a reading
type SensorReadingCreation struct {
	SoilMoisture *float64 `json:"soilMoisture" validate:"required"`
	Temperature  *float64 `json:"temperature" validate:"required"`
	Humidity     *float64 `json:"humidity" validate:"required"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
}

// IrrigationAdvice is the decision derived from the latest reading
type IrrigationAdvice struct {
	Latest *SensorReading `json:"latest,omitempty"`
	Advice string         `json:"advice"`
}

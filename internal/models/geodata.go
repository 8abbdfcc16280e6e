package models

import "time"

// SoilType represents the soil classification of a farm
type SoilType string

const (
	SoilTypeClay   SoilType = "CLAY"
	SoilTypeSandy  SoilType = "SANDY"
	SoilTypeLoamy  SoilType = "LOAMY"
	SoilTypeSilty  SoilType = "SILTY"
	SoilTypePeaty  SoilType = "PEATY"
	SoilTypeChalky SoilType = "CHALKY"
)

func (t SoilType) IsValid() bool {
	switch t {
	case SoilTypeClay, SoilTypeSandy, SoilTypeLoamy, SoilTypeSilty, SoilTypePeaty, SoilTypeChalky:
		return true
	}
	return false
}

// WaterSource represents a farm's primary water source
type WaterSource string

const (
	WaterSourceRiver      WaterSource = "RIVER"
	WaterSourceWell       WaterSource = "WELL"
	WaterSourceRainfed    WaterSource = "RAINFED"
	WaterSourceIrrigation WaterSource = "IRRIGATION_SYSTEM"
)

func (w WaterSource) IsValid() bool {
	switch w {
	case WaterSourceRiver, WaterSourceWell, WaterSourceRainfed, WaterSourceIrrigation:
		return true
	}
	return false
}

// GeoData represents a farmer's farm record with location and soil details
type GeoData struct {
	ID          string      `json:"id" db:"id"`
	FarmerID    string      `json:"farmerId" db:"farmer_id"`
	FarmName    string      `json:"farmName" db:"farm_name"`
	Latitude    float64     `json:"latitude" db:"latitude"`
	Longitude   float64     `json:"longitude" db:"longitude"`
	SoilType    SoilType    `json:"soilType" db:"soil_type"`
	WaterSource WaterSource `json:"waterSource" db:"water_source"`
	Produce     []string    `json:"produce"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`

	// Joined data (populated when needed)
	Farmer *User `json:"farmer,omitempty"`
}

// GeoDataCreation represents data for registering a farm record
type GeoDataCreation struct {
	FarmName    string      `json:"farmName" validate:"required,max=200"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	SoilType    SoilType    `json:"soilType" validate:"required"`
	WaterSource WaterSource `json:"waterSource" validate:"required"`
	Produce     []string    `json:"produce"`
}

// GeoDataUpdate represents data for updating a farm record
type GeoDataUpdate struct {
	FarmName    *string      `json:"farmName,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	SoilType    *SoilType    `json:"soilType,omitempty"`
	WaterSource *WaterSource `json:"waterSource,omitempty"`
	Produce     []string     `json:"produce,omitempty"`
}

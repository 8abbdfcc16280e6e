package services

import (
	"database/sql"
	"fmt"
	"time"

	"agrilink-backend/internal/models"
)

// RecommendationService derives farming tips from a farmer's farm records,
// sensor activity and marketplace sales.
type RecommendationService struct {
	db      *sql.DB
	geoData *GeoDataService
}

// CropRecommendation pairs a farm with crops suited to its soil and water
type CropRecommendation struct {
	FarmID   string   `json:"farmId"`
	FarmName string   `json:"farmName"`
	Crops    []string `json:"crops"`
}

// Recommendations is the full advice bundle for a farmer
type Recommendations struct {
	Crops []CropRecommendation `json:"crops"`
	Tips  []string             `json:"tips"`
}

// Crop suitability by soil type. Rainfed-only farms are steered toward the
// hardier subset.
var cropsBySoil = map[models.SoilType][]string{
	models.SoilTypeClay:   {"rice", "cabbage", "broccoli"},
	models.SoilTypeSandy:  {"carrots", "potatoes", "groundnuts"},
	models.SoilTypeLoamy:  {"maize", "wheat", "tomatoes", "beans"},
	models.SoilTypeSilty:  {"vegetables", "sugarcane", "napier grass"},
	models.SoilTypePeaty:  {"onions", "lettuce", "celery"},
	models.SoilTypeChalky: {"barley", "spinach", "sweet corn"},
}

var droughtTolerant = map[string]bool{
	"groundnuts":   true,
	"sweet corn":   true,
	"barley":       true,
	"beans":        true,
	"napier grass": true,
	"potatoes":     true,
	"carrots":      true,
}

func NewRecommendationService(db *sql.DB, geoData *GeoDataService) *RecommendationService {
	return &RecommendationService{db: db, geoData: geoData}
}

// ForFarmer builds the farmer's recommendations: per-farm crop suggestions
// plus activity tips from the latest soil reading, the past week's reading
// count and recent sales.
func (s *RecommendationService) ForFarmer(farmerID string) (*Recommendations, error) {
	farms, err := s.geoData.ListByFarmer(farmerID)
	if err != nil {
		return nil, err
	}

	result := &Recommendations{
		Crops: make([]CropRecommendation, 0, len(farms)),
		Tips:  []string{},
	}
	for _, farm := range farms {
		result.Crops = append(result.Crops, CropRecommendation{
			FarmID:   farm.ID,
			FarmName: farm.FarmName,
			Crops:    cropsFor(farm),
		})
	}

	if len(farms) == 0 {
		result.Tips = append(result.Tips,
			"Register your farm location and soil type to unlock crop suggestions.")
	}

	var latestMoisture sql.NullFloat64
	err = s.db.QueryRow(`
		SELECT soil_moisture FROM sensor_readings
		WHERE created_by = ? ORDER BY created_at DESC LIMIT 1`, farmerID).
		Scan(&latestMoisture)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to fetch latest reading: %w", err)
	}
	if latestMoisture.Valid && latestMoisture.Float64 < drySoilMoisture {
		result.Tips = append(result.Tips,
			"Latest soil moisture reading is low. Schedule irrigation soon.")
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	var weeklyReadings int
	err = s.db.QueryRow(`
		SELECT COUNT(*) FROM sensor_readings
		WHERE created_by = ? AND created_at >= ?`, farmerID, weekAgo).
		Scan(&weeklyReadings)
	if err != nil {
		return nil, fmt.Errorf("failed to count readings: %w", err)
	}
	if weeklyReadings < 3 {
		result.Tips = append(result.Tips,
			"Fewer than three sensor readings this week. Record readings regularly for better advice.")
	}

	var openOrders int
	err = s.db.QueryRow(`
		SELECT COUNT(*) FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE p.created_by = ? AND o.status = 'pending'`, farmerID).
		Scan(&openOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if openOrders > 0 {
		result.Tips = append(result.Tips,
			fmt.Sprintf("You have %d pending order(s) awaiting confirmation.", openOrders))
	}

	return result, nil
}

func cropsFor(farm models.GeoData) []string {
	candidates := cropsBySoil[farm.SoilType]
	if farm.WaterSource != models.WaterSourceRainfed {
		return candidates
	}

	hardy := []string{}
	for _, crop := range candidates {
		if droughtTolerant[crop] {
			hardy = append(hardy, crop)
		}
	}
	if len(hardy) == 0 {
		return candidates
	}
	return hardy
}

package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/utils"
)

// GeoDataService manages farm location and soil records
type GeoDataService struct {
	db *sql.DB
}

func NewGeoDataService(db *sql.DB) *GeoDataService {
	return &GeoDataService{db: db}
}

// Create registers a farm record for the caller
func (s *GeoDataService) Create(farmerID string, req *models.GeoDataCreation) (*models.GeoData, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}
	if !req.SoilType.IsValid() {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid soil type: %s", req.SoilType))
	}
	if !req.WaterSource.IsValid() {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid water source: %s", req.WaterSource))
	}

	record := &models.GeoData{
		ID:          uuid.New().String(),
		FarmerID:    farmerID,
		FarmName:    utils.SanitizeString(req.FarmName),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		SoilType:    req.SoilType,
		WaterSource: req.WaterSource,
		Produce:     req.Produce,
		CreatedAt:   time.Now().UTC(),
	}
	if record.Produce == nil {
		record.Produce = []string{}
	}

	produceJSON, err := json.Marshal(record.Produce)
	if err != nil {
		return nil, fmt.Errorf("failed to encode produce list: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO geo_data (id, farmer_id, farm_name, latitude, longitude, soil_type, water_source, produce, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.FarmerID, record.FarmName, record.Latitude, record.Longitude,
		record.SoilType, record.WaterSource, string(produceJSON), record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create farm record: %w", err)
	}

	return record, nil
}

// GetByID fetches a farm record
func (s *GeoDataService) GetByID(id string) (*models.GeoData, error) {
	row := s.db.QueryRow(geoDataSelect+" WHERE g.id = ?", id)
	record, err := scanGeoData(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("farm record not found")
	}
	return record, err
}

// ListAll returns every farm record
func (s *GeoDataService) ListAll() ([]models.GeoData, error) {
	return s.list(geoDataSelect + " ORDER BY g.created_at DESC")
}

// ListByFarmer returns the caller's own farm records
func (s *GeoDataService) ListByFarmer(farmerID string) ([]models.GeoData, error) {
	return s.list(geoDataSelect+" WHERE g.farmer_id = ? ORDER BY g.created_at DESC", farmerID)
}

func (s *GeoDataService) list(query string, args ...interface{}) ([]models.GeoData, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list farm records: %w", err)
	}
	defer rows.Close()

	records := []models.GeoData{}
	for rows.Next() {
		record, err := scanGeoData(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// Update applies the provided fields to a farm record
func (s *GeoDataService) Update(id string, req *models.GeoDataUpdate) (*models.GeoData, error) {
	setClauses := []string{}
	args := []interface{}{}

	if req.FarmName != nil {
		setClauses = append(setClauses, "farm_name = ?")
		args = append(args, utils.SanitizeString(*req.FarmName))
	}
	if req.Latitude != nil {
		setClauses = append(setClauses, "latitude = ?")
		args = append(args, *req.Latitude)
	}
	if req.Longitude != nil {
		setClauses = append(setClauses, "longitude = ?")
		args = append(args, *req.Longitude)
	}
	if req.SoilType != nil {
		if !req.SoilType.IsValid() {
			return nil, apperr.InvalidInput(fmt.Sprintf("invalid soil type: %s", *req.SoilType))
		}
		setClauses = append(setClauses, "soil_type = ?")
		args = append(args, *req.SoilType)
	}
	if req.WaterSource != nil {
		if !req.WaterSource.IsValid() {
			return nil, apperr.InvalidInput(fmt.Sprintf("invalid water source: %s", *req.WaterSource))
		}
		setClauses = append(setClauses, "water_source = ?")
		args = append(args, *req.WaterSource)
	}
	if req.Produce != nil {
		produceJSON, err := json.Marshal(req.Produce)
		if err != nil {
			return nil, fmt.Errorf("failed to encode produce list: %w", err)
		}
		setClauses = append(setClauses, "produce = ?")
		args = append(args, string(produceJSON))
	}

	if len(setClauses) == 0 {
		return s.GetByID(id)
	}

	args = append(args, id)
	result, err := s.db.Exec(
		"UPDATE geo_data SET "+strings.Join(setClauses, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update farm record: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("farm record not found")
	}

	return s.GetByID(id)
}

// Delete removes a farm record
func (s *GeoDataService) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM geo_data WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete farm record: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("farm record not found")
	}
	return nil
}

const geoDataSelect = `
	SELECT g.id, g.farmer_id, g.farm_name, g.latitude, g.longitude,
	       g.soil_type, g.water_source, g.produce, g.created_at,
	       u.name, u.email
	FROM geo_data g
	JOIN users u ON u.id = g.farmer_id`

func scanGeoData(row rowScanner) (*models.GeoData, error) {
	var g models.GeoData
	var produceJSON string
	var name, email string
	err := row.Scan(&g.ID, &g.FarmerID, &g.FarmName, &g.Latitude, &g.Longitude,
		&g.SoilType, &g.WaterSource, &produceJSON, &g.CreatedAt, &name, &email)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan farm record: %w", err)
	}
	if err := json.Unmarshal([]byte(produceJSON), &g.Produce); err != nil {
		g.Produce = []string{}
	}
	g.Farmer = &models.User{ID: g.FarmerID, Name: name, Email: email}
	return &g, nil
}

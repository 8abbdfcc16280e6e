package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
	"agrilink-backend/internal/utils"
)

// InventoryService manages a farmer's private supply inventory
type InventoryService struct {
	db *sql.DB
}

func NewInventoryService(db *sql.DB) *InventoryService {
	return &InventoryService{db: db}
}

// Create adds an inventory item owned by the caller
func (s *InventoryService) Create(ownerID string, req *models.InventoryItemCreation) (*models.InventoryItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}

	category := req.Category
	if category == "" {
		category = models.InventoryCategoryOther
	}
	if !category.IsValid() {
		return nil, apperr.InvalidInput(fmt.Sprintf("invalid inventory category: %s", category))
	}

	now := time.Now().UTC()
	acquired := now
	if req.AcquiredDate != nil {
		acquired = *req.AcquiredDate
	}
	if req.ExpiryDate != nil && req.ExpiryDate.Before(acquired) {
		return nil, apperr.InvalidInput("expiryDate cannot be before acquiredDate")
	}

	item := &models.InventoryItem{
		ID:           uuid.New().String(),
		Name:         utils.SanitizeString(req.Name),
		Category:     category,
		Quantity:     req.Quantity,
		Unit:         utils.SanitizeString(req.Unit),
		AcquiredDate: acquired,
		ExpiryDate:   req.ExpiryDate,
		CreatedBy:    ownerID,
		CreatedAt:    now,
	}

	_, err := s.db.Exec(`
		INSERT INTO inventory_items (id, name, category, quantity, unit, acquired_date, expiry_date, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Category, item.Quantity, item.Unit,
		item.AcquiredDate, item.ExpiryDate, item.CreatedBy, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

// GetByID fetches an inventory item
func (s *InventoryService) GetByID(id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	var expiry sql.NullTime
	err := s.db.QueryRow(`
		SELECT id, name, category, quantity, unit, acquired_date, expiry_date, created_by, created_at
		FROM inventory_items WHERE id = ?`, id).
		Scan(&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Unit,
			&item.AcquiredDate, &expiry, &item.CreatedBy, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("inventory item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inventory item: %w", err)
	}
	if expiry.Valid {
		item.ExpiryDate = &expiry.Time
	}
	return &item, nil
}

// ListByOwner returns the caller's inventory
func (s *InventoryService) ListByOwner(ownerID string) ([]models.InventoryItem, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, quantity, unit, acquired_date, expiry_date, created_by, created_at
		FROM inventory_items WHERE created_by = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		var item models.InventoryItem
		var expiry sql.NullTime
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Unit,
			&item.AcquiredDate, &expiry, &item.CreatedBy, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		if expiry.Valid {
			item.ExpiryDate = &expiry.Time
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update applies the provided fields to an inventory item
func (s *InventoryService) Update(id string, req *models.InventoryItemUpdate) (*models.InventoryItem, error) {
	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	acquired := current.AcquiredDate
	if req.AcquiredDate != nil {
		acquired = *req.AcquiredDate
	}
	expiry := current.ExpiryDate
	if req.ExpiryDate != nil {
		expiry = req.ExpiryDate
	}
	if expiry != nil && expiry.Before(acquired) {
		return nil, apperr.InvalidInput("expiryDate cannot be before acquiredDate")
	}

	setClauses := []string{}
	args := []interface{}{}

	if req.Name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, utils.SanitizeString(*req.Name))
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, apperr.InvalidInput(fmt.Sprintf("invalid inventory category: %s", *req.Category))
		}
		setClauses = append(setClauses, "category = ?")
		args = append(args, *req.Category)
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, apperr.InvalidInput("quantity cannot be negative")
		}
		setClauses = append(setClauses, "quantity = ?")
		args = append(args, *req.Quantity)
	}
	if req.Unit != nil {
		setClauses = append(setClauses, "unit = ?")
		args = append(args, utils.SanitizeString(*req.Unit))
	}
	if req.AcquiredDate != nil {
		setClauses = append(setClauses, "acquired_date = ?")
		args = append(args, *req.AcquiredDate)
	}
	if req.ExpiryDate != nil {
		setClauses = append(setClauses, "expiry_date = ?")
		args = append(args, *req.ExpiryDate)
	}

	if len(setClauses) == 0 {
		return current, nil
	}

	args = append(args, id)
	if _, err := s.db.Exec(
		"UPDATE inventory_items SET "+strings.Join(setClauses, ", ")+" WHERE id = ?", args...); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	return s.GetByID(id)
}

// Delete removes an inventory item
func (s *InventoryService) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM inventory_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("inventory item not found")
	}
	return nil
}

package models

import "time"

// InventoryCategory represents inventory item categories
type InventoryCategory string

const (
	InventoryCategorySeed       InventoryCategory = "SEED"
	InventoryCategoryFertilizer InventoryCategory = "FERTILIZER"
	InventoryCategoryTool       InventoryCategory = "TOOL"
	InventoryCategoryEquipment  InventoryCategory = "EQUIPMENT"
	InventoryCategoryOther      InventoryCategory = "OTHER"
)

func (c InventoryCategory) IsValid() bool {
	switch c {
	case InventoryCategorySeed, InventoryCategoryFertilizer, InventoryCategoryTool,
		InventoryCategoryEquipment, InventoryCategoryOther:
		return true
	}
	return false
}

// InventoryItem represents a farm supply item tracked by a farmer
type InventoryItem struct {
	ID           string            `json:"id" db:"id"`
	Name         string            `json:"name" db:"name"`
	Category     InventoryCategory `json:"category" db:"category"`
	Quantity     int               `json:"quantity" db:"quantity"`
	Unit         string            `json:"unit" db:"unit"`
	AcquiredDate time.Time         `json:"acquiredDate" db:"acquired_date"`
	ExpiryDate   *time.Time        `json:"expiryDate,omitempty" db:"expiry_date"`
	CreatedBy    string            `json:"createdBy" db:"created_by"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at"`

	// Joined data (populated when needed)
	Creator *User `json:"creator,omitempty"`
}

// InventoryItemCreation represents data for adding an inventory item
type InventoryItemCreation struct {
	Name         string            `json:"name" validate:"required,max=200"`
	Category     InventoryCategory `json:"category"`
	Quantity     int               `json:"quantity" validate:"min=0"`
	Unit         string            `json:"unit"`
	AcquiredDate *time.Time        `json:"acquiredDate,omitempty"`
	ExpiryDate   *time.Time        `json:"expiryDate,omitempty"`
}

// InventoryItemUpdate represents data for updating an inventory item
type InventoryItemUpdate struct {
	Name         *string            `json:"name,omitempty"`
	Category     *InventoryCategory `json:"category,omitempty"`
	Quantity     *int               `json:"quantity,omitempty"`
	Unit         *string            `json:"unit,omitempty"`
	AcquiredDate *time.Time         `json:"acquiredDate,omitempty"`
	ExpiryDate   *time.Time         `json:"expiryDate,omitempty"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product listed on the marketplace
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Category    string          `json:"category" db:"category"`
	Image       string          `json:"image" db:"image"`
	CreatedBy   string          `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`

	// Joined data (populated when needed)
	Creator *User `json:"creator,omitempty"`
}

// InStock reports whether the requested quantity can be served.
func (p *Product) InStock(quantity int) bool {
	return quantity > 0 && quantity <= p.Quantity
}

// ProductCreation represents data for creating a new product
type ProductCreation struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// ProductUpdate represents data for updating a product
type ProductUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Image       *string          `json:"image,omitempty"`
}
